package exception

var ErrUnsupportedDriver = define(ErrValidation, "conn: unsupported driver")
