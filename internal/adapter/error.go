package adapter

import (
	"github.com/yanun0323/errors"

	"tradingapp/pkg/exception"
)

// ErrorView is the body of every failed request.
type ErrorView struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Available string `json:"available,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func NewErrorView(err error, requestID string) ErrorView {
	view := ErrorView{
		Error:     err.Error(),
		Kind:      exception.KindName(err),
		RequestID: requestID,
	}
	var rejection *exception.Rejection
	if errors.As(err, &rejection) {
		view.Available = rejection.Available
	}
	if exception.KindOf(err) == exception.ErrStorage || exception.KindOf(err) == nil {
		view.Error = "internal error"
	}
	return view
}
