package model

import "github.com/shopspring/decimal"

// PositionLeg sums one side of a trader's orders on a stock.
type PositionLeg struct {
	Amount decimal.Decimal
	Shares int64
}

// Position is a trader's aggregated investment in one stock.
type Position struct {
	StockName   string
	Buy         PositionLeg
	Sell        PositionLeg
	NetInvested decimal.Decimal
	NetShares   int64
}
