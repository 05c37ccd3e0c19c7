package exception

import "github.com/yanun0323/errors"

// Error kinds. Every sentinel in this package belongs to exactly one of them,
// so callers can branch on the kind with errors.Is.
var (
	ErrValidation   = newKind("validation error")
	ErrBusinessRule = newKind("business rule violation")
	ErrNotFound     = newKind("not found")
	ErrUnauthorized = newKind("unauthorized")
	ErrStorage      = newKind("storage error")
)

// General errors
var (
	ErrNilInstance = errors.New("nil instance")
)

var kinds = []error{ErrValidation, ErrBusinessRule, ErrNotFound, ErrUnauthorized, ErrStorage}

// kindError reports its kind through Is instead of Unwrap. errors.Wrap steps
// over a cause that unwraps, which would hide the sentinel behind its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

func newKind(msg string) error {
	return &kindError{msg: msg}
}

func define(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// KindOf returns the kind sentinel err belongs to, or nil when err carries none.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// KindName returns a short machine readable name of the error kind.
func KindName(err error) string {
	switch KindOf(err) {
	case ErrValidation:
		return "validation_error"
	case ErrBusinessRule:
		return "business_rule_violation"
	case ErrNotFound:
		return "not_found"
	case ErrUnauthorized:
		return "unauthorized"
	case ErrStorage:
		return "storage_error"
	default:
		return "internal_error"
	}
}
