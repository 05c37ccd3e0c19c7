package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tradingapp/internal/model"
	"tradingapp/pkg/exception"
)

type userRepo struct{ r *Repository }

func (u userRepo) Create(_ context.Context, user *model.User) error {
	return u.r.write("users.create", func(d *data) error {
		for _, existing := range d.users {
			if existing.Username == user.Username || existing.Token == user.Token {
				return exception.ErrDuplicateRecord
			}
		}
		d.userSeq++
		user.ID = d.userSeq
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now().UTC()
		}
		d.users[user.ID] = *user
		return nil
	})
}

func (u userRepo) Get(_ context.Context, id uint64) (model.User, error) {
	var user model.User
	err := u.r.read("users.get", func(d *data) error {
		found, ok := d.users[id]
		if !ok {
			return exception.ErrUnknownUser
		}
		user = found
		return nil
	})
	return user, err
}

func (u userRepo) GetByToken(_ context.Context, token string) (model.User, error) {
	var user model.User
	err := u.r.read("users.get", func(d *data) error {
		for _, found := range d.users {
			if found.Token == token {
				user = found
				return nil
			}
		}
		return exception.ErrUnknownUser
	})
	return user, err
}

type traderRepo struct{ r *Repository }

func (t traderRepo) Create(_ context.Context, trader *model.Trader) error {
	return t.r.write("traders.create", func(d *data) error {
		for _, existing := range d.traders {
			if existing.UserID == trader.UserID {
				return exception.ErrDuplicateRecord
			}
		}
		d.traderSq++
		trader.ID = d.traderSq
		now := time.Now().UTC()
		if trader.CreatedAt.IsZero() {
			trader.CreatedAt = now
		}
		trader.UpdatedAt = now
		d.traders[trader.ID] = *trader
		return nil
	})
}

func (t traderRepo) Get(_ context.Context, id uint64) (model.Trader, error) {
	var trader model.Trader
	err := t.r.read("traders.get", func(d *data) error {
		found, ok := d.traders[id]
		if !ok {
			return exception.ErrUnknownTrader
		}
		trader = found
		return nil
	})
	return trader, err
}

func (t traderRepo) GetByUserID(_ context.Context, userID uint64) (model.Trader, error) {
	var trader model.Trader
	err := t.r.read("traders.get", func(d *data) error {
		for _, found := range d.traders {
			if found.UserID == userID {
				trader = found
				return nil
			}
		}
		return exception.ErrUnknownTrader
	})
	return trader, err
}

func (t traderRepo) GetForUpdate(ctx context.Context, id uint64) (model.Trader, error) {
	return t.Get(ctx, id)
}

func (t traderRepo) UpdateBalance(_ context.Context, id uint64, balance decimal.Decimal) error {
	return t.r.write("traders.update", func(d *data) error {
		trader, ok := d.traders[id]
		if !ok {
			return exception.ErrUnknownTrader
		}
		trader.Balance = balance
		trader.UpdatedAt = time.Now().UTC()
		d.traders[id] = trader
		return nil
	})
}

type stockRepo struct{ r *Repository }

func (s stockRepo) Create(_ context.Context, stock *model.Stock) error {
	return s.r.write("stocks.create", func(d *data) error {
		if _, ok := d.stocks[stock.Name]; ok {
			return exception.ErrDuplicateRecord
		}
		now := time.Now().UTC()
		if stock.CreatedAt.IsZero() {
			stock.CreatedAt = now
		}
		stock.UpdatedAt = now
		d.stocks[stock.Name] = *stock
		return nil
	})
}

func (s stockRepo) Get(_ context.Context, name string) (model.Stock, error) {
	var stock model.Stock
	err := s.r.read("stocks.get", func(d *data) error {
		found, ok := d.stocks[name]
		if !ok {
			return exception.ErrUnknownStock
		}
		stock = found
		return nil
	})
	return stock, err
}

func (s stockRepo) GetForUpdate(ctx context.Context, name string) (model.Stock, error) {
	return s.Get(ctx, name)
}

func (s stockRepo) List(_ context.Context) ([]model.Stock, error) {
	var stocks []model.Stock
	err := s.r.read("stocks.list", func(d *data) error {
		stocks = make([]model.Stock, 0, len(d.stocks))
		for _, stock := range d.stocks {
			stocks = append(stocks, stock)
		}
		return nil
	})
	sort.Slice(stocks, func(i, j int) bool {
		return stocks[i].Name < stocks[j].Name
	})
	return stocks, err
}

func (s stockRepo) update(name string, apply func(*model.Stock)) error {
	return s.r.write("stocks.update", func(d *data) error {
		stock, ok := d.stocks[name]
		if !ok {
			return exception.ErrUnknownStock
		}
		apply(&stock)
		stock.UpdatedAt = time.Now().UTC()
		d.stocks[name] = stock
		return nil
	})
}

func (s stockRepo) UpdateQuantity(_ context.Context, name string, quantity int64) error {
	return s.update(name, func(stock *model.Stock) { stock.Quantity = quantity })
}

func (s stockRepo) UpdatePrice(_ context.Context, name string, price decimal.Decimal) error {
	return s.update(name, func(stock *model.Stock) { stock.Price = price })
}

type orderRepo struct{ r *Repository }

func (o orderRepo) Create(_ context.Context, order *model.Order) error {
	return o.r.write("orders.create", func(d *data) error {
		d.orderSeq++
		order.ID = d.orderSeq
		now := time.Now().UTC()
		if order.CreatedAt.IsZero() {
			order.CreatedAt = now
		}
		order.UpdatedAt = now
		d.orders[order.ID] = *order
		return nil
	})
}

func (o orderRepo) Get(_ context.Context, id uint64) (model.Order, error) {
	var order model.Order
	err := o.r.read("orders.get", func(d *data) error {
		found, ok := d.orders[id]
		if !ok {
			return exception.ErrUnknownOrder
		}
		order = found
		return nil
	})
	return order, err
}

func (o orderRepo) Filter(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var orders []model.Order
	err := o.r.read("orders.filter", func(d *data) error {
		for _, order := range d.orders {
			if filter.Match(order) {
				orders = append(orders, order)
			}
		}
		return nil
	})
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	return orders, err
}

func (o orderRepo) UpdateRemarks(_ context.Context, id uint64, remarks string) error {
	return o.r.write("orders.update", func(d *data) error {
		order, ok := d.orders[id]
		if !ok {
			return exception.ErrUnknownOrder
		}
		order.Remarks = &remarks
		order.UpdatedAt = time.Now().UTC()
		d.orders[id] = order
		return nil
	})
}
