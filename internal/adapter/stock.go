package adapter

import (
	"github.com/shopspring/decimal"

	"tradingapp/internal/model"
)

type PositionLegView struct {
	Amount decimal.Decimal `json:"amount"`
	Shares int64           `json:"shares"`
}

// PositionView is the aggregated position of a trader on a stock.
type PositionView struct {
	Buy         PositionLegView `json:"buy"`
	Sell        PositionLegView `json:"sell"`
	NetInvested decimal.Decimal `json:"net_invested"`
	NetShares   int64           `json:"net_shares"`
}

// NewPositionView returns nil for a nil position.
func NewPositionView(p *model.Position) *PositionView {
	if p == nil {
		return nil
	}
	return &PositionView{
		Buy:         PositionLegView{Amount: p.Buy.Amount, Shares: p.Buy.Shares},
		Sell:        PositionLegView{Amount: p.Sell.Amount, Shares: p.Sell.Shares},
		NetInvested: p.NetInvested,
		NetShares:   p.NetShares,
	}
}

// StockView is a stock with the caller's position on it.
type StockView struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	IsAvailable bool            `json:"is_available"`
	Invested    *PositionView   `json:"invested"`
}

func NewStockView(stock model.Stock, position *model.Position) StockView {
	return StockView{
		Name:        stock.Name,
		Price:       stock.Price,
		Quantity:    stock.Quantity,
		IsAvailable: stock.IsAvailable(),
		Invested:    NewPositionView(position),
	}
}
