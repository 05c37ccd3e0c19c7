// Package catalog provisions stocks and applies external price updates.
package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"tradingapp/internal/model"
	"tradingapp/internal/repository"
	"tradingapp/pkg/exception"
)

// DefaultQuantity is the inventory of a stock created without one.
const DefaultQuantity int64 = 100

type Catalog struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Catalog {
	return &Catalog{repo: repo}
}

// CreateStock adds a stock. A nil quantity uses DefaultQuantity.
func (c *Catalog) CreateStock(ctx context.Context, name string, price decimal.Decimal, quantity *int64) (model.Stock, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return model.Stock{}, err
	}
	qty := DefaultQuantity
	if quantity != nil {
		qty = *quantity
	}
	if qty < 0 {
		return model.Stock{}, errors.Wrapf(exception.ErrInvalidStock, "quantity %d is negative", qty)
	}

	stock := model.Stock{Name: name, Price: price, Quantity: qty}
	if err := c.repo.Stocks().Create(ctx, &stock); err != nil {
		return model.Stock{}, err
	}
	return stock, nil
}

// UpdatePrice sets the price of an existing stock. Prices have no lower bound.
func (c *Catalog) UpdatePrice(ctx context.Context, name string, price decimal.Decimal) (model.Stock, error) {
	var stock model.Stock
	err := c.repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.Stocks().UpdatePrice(ctx, name, price); err != nil {
			return err
		}
		var err error
		stock, err = tx.Stocks().Get(ctx, name)
		return err
	})
	if err != nil {
		return model.Stock{}, err
	}
	return stock, nil
}

func (c *Catalog) Get(ctx context.Context, name string) (model.Stock, error) {
	return c.repo.Stocks().Get(ctx, name)
}

// List returns every stock ordered by name.
func (c *Catalog) List(ctx context.Context) ([]model.Stock, error) {
	return c.repo.Stocks().List(ctx)
}

func validateName(name string) error {
	if name == "" {
		return errors.Wrap(exception.ErrMissingField, "stock name")
	}
	if len(name) > model.StockNameMaxLen {
		return errors.Wrapf(exception.ErrInvalidStock, "name %q is longer than %d", name, model.StockNameMaxLen)
	}
	return nil
}
