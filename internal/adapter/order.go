package adapter

import (
	"time"

	"github.com/shopspring/decimal"

	"tradingapp/internal/model"
	"tradingapp/internal/model/enum"
)

// OrderPayload is the body of a create order request.
type OrderPayload struct {
	OrderType string `json:"order_type"`
	Stock     string `json:"stock"`
	Quantity  *int64 `json:"quantity"`
}

// RemarksPayload is the body of an order update request.
type RemarksPayload struct {
	Remarks *string `json:"remarks"`
}

// OrderView is the representation of an order. The current values follow
// the live stock price, Amount stays the execution value.
type OrderView struct {
	ID            uint64           `json:"id"`
	OrderType     enum.OrderType   `json:"order_type"`
	Trader        uint64           `json:"trader"`
	Stock         string           `json:"stock"`
	Quantity      int64            `json:"quantity"`
	Amount        decimal.Decimal  `json:"amount"`
	PricePerShare decimal.Decimal  `json:"price_per_share"`
	CurrentAmount decimal.Decimal  `json:"current_amount"`
	ProjectedGain *decimal.Decimal `json:"projected_gain"`
	Status        string           `json:"status"`
	Remarks       *string          `json:"remarks"`
	CreatedAt     time.Time        `json:"created_at"`
}

// NewOrderView renders order at the current stock price.
func NewOrderView(order model.Order, price decimal.Decimal) OrderView {
	return OrderView{
		ID:            order.ID,
		OrderType:     order.OrderType,
		Trader:        order.TraderID,
		Stock:         order.StockName,
		Quantity:      order.Quantity,
		Amount:        order.Amount,
		PricePerShare: order.PricePerShare(),
		CurrentAmount: order.CurrentAmount(price),
		ProjectedGain: order.ProjectedGain(price),
		Status:        order.Status,
		Remarks:       order.Remarks,
		CreatedAt:     order.CreatedAt,
	}
}

// NewOrderViews renders orders with the prices of prices. Orders of stocks
// missing from prices are valued at their execution price.
func NewOrderViews(orders []model.Order, prices map[string]decimal.Decimal) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		price, ok := prices[order.StockName]
		if !ok {
			price = order.PricePerShare()
		}
		views = append(views, NewOrderView(order, price))
	}
	return views
}
