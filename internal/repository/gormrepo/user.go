package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"tradingapp/internal/model"
	"tradingapp/pkg/exception"
)

type userRepo struct {
	db *gorm.DB
}

func (r userRepo) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, exception.ErrUnknownUser, "create user")
}

func (r userRepo) Get(ctx context.Context, id uint64) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return user, translate(err, exception.ErrUnknownUser, "get user")
}

func (r userRepo) GetByToken(ctx context.Context, token string) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&user).Error
	return user, translate(err, exception.ErrUnknownUser, "get user by token")
}
