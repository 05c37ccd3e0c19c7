package model

import (
	"time"

	"github.com/shopspring/decimal"

	"tradingapp/internal/model/enum"
)

// Order is the record of one settled buy or sell. Amount is the price at
// execution times Quantity and is never recomputed.
type Order struct {
	ID        uint64          `gorm:"primaryKey"`
	OrderType enum.OrderType  `gorm:"type:varchar(4);not null"`
	TraderID  uint64          `gorm:"not null;index:idx_orders_trader_stock"`
	StockName string          `gorm:"size:10;not null;index:idx_orders_trader_stock"`
	Quantity  int64           `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Status    string          `gorm:"size:10"`
	Remarks   *string
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// PricePerShare is the execution price of the order.
func (o Order) PricePerShare() decimal.Decimal {
	if o.Quantity == 0 {
		return decimal.Zero
	}
	return o.Amount.Div(decimal.NewFromInt(o.Quantity))
}

// CurrentAmount values the order quantity at price.
func (o Order) CurrentAmount(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(o.Quantity))
}

// ProjectedGain is the unrealized gain of a buy order at the current price.
// Sell orders have none.
func (o Order) ProjectedGain(price decimal.Decimal) *decimal.Decimal {
	if o.OrderType != enum.OrderTypeBuy {
		return nil
	}
	gain := o.CurrentAmount(price).Sub(o.Amount)
	return &gain
}

// OrderFilter selects orders. Zero fields match everything.
type OrderFilter struct {
	TraderID  uint64
	StockName string
	OrderType enum.OrderType
}

func (f OrderFilter) Match(o Order) bool {
	if f.TraderID != 0 && o.TraderID != f.TraderID {
		return false
	}
	if f.StockName != "" && o.StockName != f.StockName {
		return false
	}
	if f.OrderType.IsAvailable() && o.OrderType != f.OrderType {
		return false
	}
	return true
}
