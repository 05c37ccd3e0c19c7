package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the identity a trader authenticates as.
type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Username  string `gorm:"size:150;uniqueIndex;not null"`
	Token     string `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time
}

// Trader is the trading account of a user. It holds the cash balance.
type Trader struct {
	ID        uint64          `gorm:"primaryKey"`
	UserID    uint64          `gorm:"uniqueIndex;not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stock is a tradeable instrument. Price is set externally, Quantity is the
// inventory still available for purchase.
type Stock struct {
	Name      string          `gorm:"primaryKey;size:10"`
	Price     decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Quantity  int64           `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Stock) IsAvailable() bool {
	return s.Quantity != 0
}

// StockNameMaxLen is the longest accepted stock name.
const StockNameMaxLen = 10
