package settlement

import (
	"strings"

	"github.com/yanun0323/errors"

	"tradingapp/internal/model"
	"tradingapp/internal/model/enum"
	"tradingapp/pkg/exception"
)

// Request is a validated order request. Build it with NewRequest.
type Request struct {
	TraderID  uint64
	Stock     string
	OrderType enum.OrderType
	Quantity  int64
}

// NewRequest validates the raw order fields once.
func NewRequest(traderID uint64, stock string, orderType string, quantity int64) (Request, error) {
	stock = strings.TrimSpace(stock)
	if stock == "" {
		return Request{}, errors.Wrap(exception.ErrMissingField, "stock")
	}
	if len(stock) > model.StockNameMaxLen {
		return Request{}, errors.Wrapf(exception.ErrInvalidStock, "name %q is longer than %d", stock, model.StockNameMaxLen)
	}
	if strings.TrimSpace(orderType) == "" {
		return Request{}, errors.Wrap(exception.ErrMissingField, "order_type")
	}
	typ, err := enum.ParseOrderType(orderType)
	if err != nil {
		return Request{}, err
	}
	if quantity < 1 {
		return Request{}, exception.ErrInvalidQuantity
	}
	return Request{
		TraderID:  traderID,
		Stock:     stock,
		OrderType: typ,
		Quantity:  quantity,
	}, nil
}

func (r Request) validate() error {
	if !r.OrderType.IsAvailable() {
		return exception.ErrUnknownOrderType
	}
	if r.Quantity < 1 {
		return exception.ErrInvalidQuantity
	}
	if r.Stock == "" {
		return errors.Wrap(exception.ErrMissingField, "stock")
	}
	return nil
}
