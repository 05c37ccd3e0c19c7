// Package settlement validates and applies buy/sell orders against the trader
// ledger and the stock inventory.
package settlement

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"tradingapp/internal/model"
	"tradingapp/internal/model/enum"
	"tradingapp/internal/obs"
	"tradingapp/internal/position"
	"tradingapp/internal/repository"
	"tradingapp/internal/risk"
	"tradingapp/pkg/exception"
)

// Service settles orders and answers position queries.
type Service struct {
	repo    repository.Repository
	risk    *risk.Engine
	metrics *obs.Metrics
	now     func() time.Time
	locks   *locker

	clockMu sync.Mutex
	last    time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRisk enables order limits checked before settlement.
func WithRisk(engine *risk.Engine) Option {
	return func(s *Service) { s.risk = engine }
}

// WithMetrics records settlement outcomes and latency.
func WithMetrics(metrics *obs.Metrics) Option {
	return func(s *Service) { s.metrics = metrics }
}

// WithClock replaces the wall clock used for order timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a settlement service on repo.
func NewService(repo repository.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		now:   time.Now,
		locks: newLocker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settle executes req at the current stock price. Either the balance, the
// stock inventory and the new order are all persisted or nothing is.
func (s *Service) Settle(ctx context.Context, req Request) (order model.Order, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveSettlement(err, time.Since(start))
	}()

	if err := req.validate(); err != nil {
		return model.Order{}, err
	}

	unlock := s.locks.lockOrder(req.TraderID, req.Stock)
	defer unlock()

	at := s.now()
	err = s.repo.Transaction(ctx, func(tx repository.Repository) error {
		trader, err := tx.Traders().GetForUpdate(ctx, req.TraderID)
		if err != nil {
			return err
		}
		stock, err := tx.Stocks().GetForUpdate(ctx, req.Stock)
		if err != nil {
			return err
		}

		amount := stock.Price.Mul(decimal.NewFromInt(req.Quantity))
		if err := s.risk.Check(risk.Intent{
			TraderID: req.TraderID,
			Quantity: req.Quantity,
			Amount:   amount,
			Now:      at,
		}); err != nil {
			return err
		}

		balance, inventory := trader.Balance, stock.Quantity
		switch req.OrderType {
		case enum.OrderTypeBuy:
			if amount.GreaterThan(trader.Balance) {
				return exception.Reject(exception.ErrInsufficientFunds, trader.Balance, "Not enough balance")
			}
			if req.Quantity > stock.Quantity {
				return exception.Reject(exception.ErrInsufficientInventory, stock.Quantity,
					"Not enough stock! Available: %d", stock.Quantity)
			}
			balance = balance.Sub(amount)
			inventory -= req.Quantity
		case enum.OrderTypeSell:
			orders, err := tx.Orders().Filter(ctx, model.OrderFilter{TraderID: req.TraderID, StockName: req.Stock})
			if err != nil {
				return err
			}
			owned, ok := position.Reduce(orders).OwnedShares(req.Stock)
			if !ok {
				return exception.Reject(exception.ErrInsufficientShares, 0, "You don't have any shares to sell.")
			}
			if req.Quantity > owned {
				return exception.Reject(exception.ErrInsufficientShares, owned,
					"Not enough stocks to sell. Available %s shares: %d", req.Stock, owned)
			}
			balance = balance.Add(amount)
			inventory += req.Quantity
		default:
			return exception.ErrUnknownOrderType
		}

		// A non-positive price turns a sell into a debit.
		if balance.IsNegative() {
			return exception.Reject(exception.ErrInsufficientFunds, trader.Balance, "Not enough balance")
		}

		if err := tx.Traders().UpdateBalance(ctx, trader.ID, balance); err != nil {
			return err
		}
		if err := tx.Stocks().UpdateQuantity(ctx, stock.Name, inventory); err != nil {
			return err
		}

		order = model.Order{
			OrderType: req.OrderType,
			TraderID:  trader.ID,
			StockName: stock.Name,
			Quantity:  req.Quantity,
			Amount:    amount,
			Status:    enum.OrderStatusSuccess,
			CreatedAt: s.timestamp(),
		}
		return tx.Orders().Create(ctx, &order)
	})
	if err != nil {
		return model.Order{}, err
	}
	s.risk.Record(req.TraderID, at)
	return order, nil
}

// timestamp returns a strictly increasing creation time. Postgres keeps
// microseconds, so the step and the truncation use that unit.
func (s *Service) timestamp() time.Time {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	now := s.now().UTC().Truncate(time.Microsecond)
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

// Position returns the trader's position on stock, or nil when the trader
// never bought it.
func (s *Service) Position(ctx context.Context, traderID uint64, stock string) (*model.Position, error) {
	orders, err := s.repo.Orders().Filter(ctx, model.OrderFilter{TraderID: traderID, StockName: stock})
	if err != nil {
		return nil, err
	}
	return position.Reduce(orders).Position(stock), nil
}

// Positions returns a reducer over every order of the trader.
func (s *Service) Positions(ctx context.Context, traderID uint64) (*position.Reducer, error) {
	orders, err := s.repo.Orders().Filter(ctx, model.OrderFilter{TraderID: traderID})
	if err != nil {
		return nil, err
	}
	return position.Reduce(orders), nil
}

// StockPosition is a stock together with the caller's position on it.
type StockPosition struct {
	Stock    model.Stock
	Position *model.Position
}

// Stock returns the named stock with the trader's position.
func (s *Service) Stock(ctx context.Context, traderID uint64, name string) (StockPosition, error) {
	stock, err := s.repo.Stocks().Get(ctx, name)
	if err != nil {
		return StockPosition{}, err
	}
	pos, err := s.Position(ctx, traderID, name)
	if err != nil {
		return StockPosition{}, err
	}
	return StockPosition{Stock: stock, Position: pos}, nil
}

// Stocks returns every stock with the trader's positions.
func (s *Service) Stocks(ctx context.Context, traderID uint64) ([]StockPosition, error) {
	stocks, err := s.repo.Stocks().List(ctx)
	if err != nil {
		return nil, err
	}
	reducer, err := s.Positions(ctx, traderID)
	if err != nil {
		return nil, err
	}
	out := make([]StockPosition, 0, len(stocks))
	for _, stock := range stocks {
		out = append(out, StockPosition{Stock: stock, Position: reducer.Position(stock.Name)})
	}
	return out, nil
}

// Orders returns the trader's orders, newest first.
func (s *Service) Orders(ctx context.Context, traderID uint64) ([]model.Order, error) {
	return s.repo.Orders().Filter(ctx, model.OrderFilter{TraderID: traderID})
}

// Order returns one of the trader's orders. Orders of other traders are
// reported as not found.
func (s *Service) Order(ctx context.Context, traderID, id uint64) (model.Order, error) {
	order, err := s.repo.Orders().Get(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if order.TraderID != traderID {
		return model.Order{}, exception.ErrUnknownOrder
	}
	return order, nil
}

// Remark sets the remarks of one of the trader's orders.
func (s *Service) Remark(ctx context.Context, traderID, id uint64, remarks string) (model.Order, error) {
	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		return model.Order{}, errors.Wrap(exception.ErrMissingField, "remarks")
	}

	var order model.Order
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		found, err := tx.Orders().Get(ctx, id)
		if err != nil {
			return err
		}
		if found.TraderID != traderID {
			return exception.ErrUnknownOrder
		}
		if err := tx.Orders().UpdateRemarks(ctx, id, remarks); err != nil {
			return err
		}
		order, err = tx.Orders().Get(ctx, id)
		return err
	})
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}
