package enum

import (
	"database/sql/driver"
	"strings"

	"github.com/yanun0323/errors"

	"tradingapp/pkg/exception"
)

// OrderType is the direction of an order.
type OrderType uint8

const (
	_orderType_beg OrderType = iota
	OrderTypeBuy
	OrderTypeSell
	_orderType_end
)

func (t OrderType) IsAvailable() bool {
	return t > _orderType_beg && t < _orderType_end
}

func (t OrderType) String() string {
	switch t {
	case OrderTypeBuy:
		return "buy"
	case OrderTypeSell:
		return "sell"
	default:
		return ""
	}
}

// ParseOrderType accepts "buy" and "sell", case insensitive.
func ParseOrderType(s string) (OrderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return OrderTypeBuy, nil
	case "sell":
		return OrderTypeSell, nil
	default:
		return _orderType_beg, exception.ErrUnknownOrderType
	}
}

func (t OrderType) MarshalText() ([]byte, error) {
	if !t.IsAvailable() {
		return nil, exception.ErrUnknownOrderType
	}
	return []byte(t.String()), nil
}

func (t *OrderType) UnmarshalText(text []byte) error {
	parsed, err := ParseOrderType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores the order type as its text form.
func (t OrderType) Value() (driver.Value, error) {
	if !t.IsAvailable() {
		return nil, exception.ErrUnknownOrderType
	}
	return t.String(), nil
}

func (t *OrderType) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return t.UnmarshalText([]byte(v))
	case []byte:
		return t.UnmarshalText(v)
	default:
		return errors.Errorf("scan order type from %T", src)
	}
}
