package gormrepo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradingapp/internal/model"
	"tradingapp/pkg/exception"
)

type stockRepo struct {
	db *gorm.DB
}

func (r stockRepo) Create(ctx context.Context, stock *model.Stock) error {
	return translate(r.db.WithContext(ctx).Create(stock).Error, exception.ErrUnknownStock, "create stock")
}

func (r stockRepo) Get(ctx context.Context, name string) (model.Stock, error) {
	var stock model.Stock
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&stock).Error
	return stock, translate(err, exception.ErrUnknownStock, "get stock")
}

func (r stockRepo) GetForUpdate(ctx context.Context, name string) (model.Stock, error) {
	var stock model.Stock
	err := forUpdate(r.db.WithContext(ctx)).Where("name = ?", name).First(&stock).Error
	return stock, translate(err, exception.ErrUnknownStock, "lock stock")
}

func (r stockRepo) List(ctx context.Context) ([]model.Stock, error) {
	var stocks []model.Stock
	if err := r.db.WithContext(ctx).Order("name").Find(&stocks).Error; err != nil {
		return nil, exception.Storage(err, "list stocks")
	}
	return stocks, nil
}

func (r stockRepo) UpdateQuantity(ctx context.Context, name string, quantity int64) error {
	result := r.db.WithContext(ctx).Model(&model.Stock{}).Where("name = ?", name).Update("quantity", quantity)
	return checkAffected(result, exception.ErrUnknownStock, "update stock quantity")
}

func (r stockRepo) UpdatePrice(ctx context.Context, name string, price decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&model.Stock{}).Where("name = ?", name).Update("price", price)
	return checkAffected(result, exception.ErrUnknownStock, "update stock price")
}
