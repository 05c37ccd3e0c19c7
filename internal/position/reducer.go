package position

import (
	"sort"

	"github.com/shopspring/decimal"

	"tradingapp/internal/model"
	"tradingapp/internal/model/enum"
)

type legs struct {
	buy     model.PositionLeg
	sell    model.PositionLeg
	hasBuy  bool
	hasSell bool
}

// Reducer folds a trader's orders into per-stock positions.
type Reducer struct {
	stocks map[string]*legs
}

// NewReducer creates an empty reducer.
func NewReducer() *Reducer {
	return &Reducer{stocks: make(map[string]*legs)}
}

// Reduce folds orders and returns the reducer.
func Reduce(orders []model.Order) *Reducer {
	r := NewReducer()
	for _, order := range orders {
		r.Apply(order)
	}
	return r
}

// Apply adds one order to the position of its stock.
func (r *Reducer) Apply(order model.Order) {
	l, ok := r.stocks[order.StockName]
	if !ok {
		l = &legs{
			buy:  model.PositionLeg{Amount: decimal.Zero},
			sell: model.PositionLeg{Amount: decimal.Zero},
		}
		r.stocks[order.StockName] = l
	}

	switch order.OrderType {
	case enum.OrderTypeBuy:
		l.buy.Amount = l.buy.Amount.Add(order.Amount)
		l.buy.Shares += order.Quantity
		l.hasBuy = true
	case enum.OrderTypeSell:
		l.sell.Amount = l.sell.Amount.Add(order.Amount)
		l.sell.Shares += order.Quantity
		l.hasSell = true
	}
}

// Position returns the position of stock, or nil when no buy order was applied.
func (r *Reducer) Position(stock string) *model.Position {
	l, ok := r.stocks[stock]
	if !ok || !l.hasBuy {
		return nil
	}
	return &model.Position{
		StockName:   stock,
		Buy:         l.buy,
		Sell:        l.sell,
		NetInvested: l.buy.Amount.Sub(l.sell.Amount),
		NetShares:   l.buy.Shares - l.sell.Shares,
	}
}

// OwnedShares returns the net shares of stock and whether any buy exists.
func (r *Reducer) OwnedShares(stock string) (int64, bool) {
	l, ok := r.stocks[stock]
	if !ok || !l.hasBuy {
		return 0, false
	}
	return l.buy.Shares - l.sell.Shares, true
}

// Positions returns every position with at least one buy, ordered by stock name.
func (r *Reducer) Positions() []model.Position {
	out := make([]model.Position, 0, len(r.stocks))
	for stock := range r.stocks {
		if p := r.Position(stock); p != nil {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StockName < out[j].StockName
	})
	return out
}

// Count returns the number of tracked stocks.
func (r *Reducer) Count() int {
	return len(r.stocks)
}
