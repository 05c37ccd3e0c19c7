package gormrepo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradingapp/internal/model"
	"tradingapp/pkg/exception"
)

type traderRepo struct {
	db *gorm.DB
}

func (r traderRepo) Create(ctx context.Context, trader *model.Trader) error {
	return translate(r.db.WithContext(ctx).Create(trader).Error, exception.ErrUnknownTrader, "create trader")
}

func (r traderRepo) Get(ctx context.Context, id uint64) (model.Trader, error) {
	var trader model.Trader
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&trader).Error
	return trader, translate(err, exception.ErrUnknownTrader, "get trader")
}

func (r traderRepo) GetByUserID(ctx context.Context, userID uint64) (model.Trader, error) {
	var trader model.Trader
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&trader).Error
	return trader, translate(err, exception.ErrUnknownTrader, "get trader by user")
}

func (r traderRepo) GetForUpdate(ctx context.Context, id uint64) (model.Trader, error) {
	var trader model.Trader
	err := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&trader).Error
	return trader, translate(err, exception.ErrUnknownTrader, "lock trader")
}

func (r traderRepo) UpdateBalance(ctx context.Context, id uint64, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&model.Trader{}).Where("id = ?", id).Update("balance", balance)
	return checkAffected(result, exception.ErrUnknownTrader, "update trader balance")
}
