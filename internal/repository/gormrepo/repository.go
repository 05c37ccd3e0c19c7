// Package gormrepo implements the repository interfaces on gorm.
package gormrepo

import (
	"context"

	"github.com/yanun0323/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradingapp/internal/model"
	"tradingapp/internal/repository"
	"tradingapp/pkg/exception"
)

var _ repository.Repository = (*Repository)(nil)

// Repository is a gorm backed repository.Repository.
type Repository struct {
	db *gorm.DB
}

// New wraps db. db may be a transaction handle.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tables of all records.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Trader{}, &model.Stock{}, &model.Order{}); err != nil {
		return exception.Storage(err, "auto migrate")
	}
	return nil
}

func (r *Repository) Users() repository.UserRepository     { return userRepo{db: r.db} }
func (r *Repository) Traders() repository.TraderRepository { return traderRepo{db: r.db} }
func (r *Repository) Stocks() repository.StockRepository   { return stockRepo{db: r.db} }
func (r *Repository) Orders() repository.OrderRepository   { return orderRepo{db: r.db} }

func (r *Repository) Transaction(ctx context.Context, fn func(tx repository.Repository) error) error {
	var fnErr error
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(New(tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return exception.Storage(err, "transaction")
}

// forUpdate adds a row lock when the dialect supports one. sqlite locks the
// whole database for writers, so it gets no clause.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func translate(err error, notFound error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return exception.ErrDuplicateRecord
	default:
		return exception.Storage(err, op)
	}
}

func checkAffected(result *gorm.DB, notFound error, op string) error {
	if result.Error != nil {
		return exception.Storage(result.Error, op)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
