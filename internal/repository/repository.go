// Package repository declares the persistence handles injected into the
// settlement, identity and catalog services.
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"tradingapp/internal/model"
)

// Repository groups the record stores. Transaction runs fn against handles
// bound to a single transaction: all writes inside fn are applied together or
// not at all.
type Repository interface {
	Users() UserRepository
	Traders() TraderRepository
	Stocks() StockRepository
	Orders() OrderRepository

	Transaction(ctx context.Context, fn func(tx Repository) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uint64) (model.User, error)
	GetByToken(ctx context.Context, token string) (model.User, error)
}

type TraderRepository interface {
	Create(ctx context.Context, trader *model.Trader) error
	Get(ctx context.Context, id uint64) (model.Trader, error)
	GetByUserID(ctx context.Context, userID uint64) (model.Trader, error)
	// GetForUpdate reads the trader and holds its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id uint64) (model.Trader, error)
	UpdateBalance(ctx context.Context, id uint64, balance decimal.Decimal) error
}

type StockRepository interface {
	Create(ctx context.Context, stock *model.Stock) error
	Get(ctx context.Context, name string) (model.Stock, error)
	GetForUpdate(ctx context.Context, name string) (model.Stock, error)
	List(ctx context.Context) ([]model.Stock, error)
	UpdateQuantity(ctx context.Context, name string, quantity int64) error
	UpdatePrice(ctx context.Context, name string, price decimal.Decimal) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id uint64) (model.Order, error)
	// Filter returns matching orders, newest first.
	Filter(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	UpdateRemarks(ctx context.Context, id uint64, remarks string) error
}
