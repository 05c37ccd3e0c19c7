package exception

import "github.com/yanun0323/errors"

var (
	ErrUnknownStock  = define(ErrNotFound, "stock: not found")
	ErrUnknownTrader = define(ErrNotFound, "trader: not found")
	ErrUnknownUser   = define(ErrNotFound, "user: not found")
	ErrUnknownOrder  = define(ErrNotFound, "order: not found")
)

type storageError struct {
	err error
}

func (e *storageError) Error() string { return e.err.Error() }

func (e *storageError) Unwrap() []error { return []error{ErrStorage, e.err} }

// Storage marks err as a persistence failure of the named operation. It keeps
// the original error reachable through errors.Is / errors.As.
func Storage(err error, op string) error {
	if err == nil {
		return nil
	}
	return &storageError{err: errors.Wrap(err, op)}
}
