package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"tradingapp/internal/model"
	"tradingapp/pkg/exception"
)

type orderRepo struct {
	db *gorm.DB
}

func (r orderRepo) Create(ctx context.Context, order *model.Order) error {
	return translate(r.db.WithContext(ctx).Create(order).Error, exception.ErrUnknownOrder, "create order")
}

func (r orderRepo) Get(ctx context.Context, id uint64) (model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	return order, translate(err, exception.ErrUnknownOrder, "get order")
}

func (r orderRepo) Filter(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if filter.TraderID != 0 {
		q = q.Where("trader_id = ?", filter.TraderID)
	}
	if filter.StockName != "" {
		q = q.Where("stock_name = ?", filter.StockName)
	}
	if filter.OrderType.IsAvailable() {
		q = q.Where("order_type = ?", filter.OrderType)
	}

	var orders []model.Order
	if err := q.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, exception.Storage(err, "filter orders")
	}
	return orders, nil
}

func (r orderRepo) UpdateRemarks(ctx context.Context, id uint64, remarks string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("remarks", remarks)
	return checkAffected(result, exception.ErrUnknownOrder, "update order remarks")
}
