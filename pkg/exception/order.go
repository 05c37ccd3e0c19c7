package exception

// Request validation
var (
	ErrInvalidQuantity  = define(ErrValidation, "order: quantity must be an integer >= 1")
	ErrUnknownOrderType = define(ErrValidation, "order: unknown order type")
	ErrMissingField     = define(ErrValidation, "missing field")
	ErrInvalidStock     = define(ErrValidation, "stock: invalid definition")
	ErrInvalidUsername  = define(ErrValidation, "identity: invalid username")
	ErrMalformedPayload = define(ErrValidation, "request: malformed payload")
)

// Settlement business rules
var (
	ErrInsufficientFunds     = define(ErrBusinessRule, "order: insufficient funds")
	ErrInsufficientInventory = define(ErrBusinessRule, "order: insufficient inventory")
	ErrInsufficientShares    = define(ErrBusinessRule, "order: insufficient shares")
	ErrOrderLimit            = define(ErrBusinessRule, "order: order limit exceeded")
	ErrDuplicateRecord       = define(ErrBusinessRule, "record already exists")
)
