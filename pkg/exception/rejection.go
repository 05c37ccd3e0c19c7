package exception

import "fmt"

// Rejection is returned when an order is refused. Err is one of the sentinels
// above and Available holds the limiting value (balance, stock quantity or
// owned shares) so the caller can correct and resubmit.
type Rejection struct {
	Err       error
	Reason    string
	Available string
}

// Reject builds a Rejection for sentinel err.
func Reject(err error, available any, format string, args ...any) *Rejection {
	r := &Rejection{
		Err:    err,
		Reason: fmt.Sprintf(format, args...),
	}
	if available != nil {
		r.Available = fmt.Sprint(available)
	}
	return r
}

func (r *Rejection) Error() string {
	if r.Reason == "" {
		return r.Err.Error()
	}
	return r.Reason
}

func (r *Rejection) Unwrap() error { return r.Err }
