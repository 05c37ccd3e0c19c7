package exception

var (
	ErrMissingToken = define(ErrUnauthorized, "auth: missing token")
	ErrInvalidToken = define(ErrUnauthorized, "auth: invalid token")
)
