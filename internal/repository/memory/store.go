// Package memory is an in-process repository.Repository. Transactions work on
// a copy of the data which replaces the live data on success.
package memory

import (
	"context"
	"sync"

	"tradingapp/internal/model"
	"tradingapp/internal/repository"
)

var _ repository.Repository = (*Repository)(nil)

// Store owns the data shared by every Repository handle created from it.
type Store struct {
	txMu sync.Mutex // serialises writers
	mu   sync.RWMutex
	data *data

	faultMu sync.Mutex
	faults  map[string]error
}

type data struct {
	users    map[uint64]model.User
	traders  map[uint64]model.Trader
	stocks   map[string]model.Stock
	orders   map[uint64]model.Order
	userSeq  uint64
	traderSq uint64
	orderSeq uint64
}

func newData() *data {
	return &data{
		users:   make(map[uint64]model.User),
		traders: make(map[uint64]model.Trader),
		stocks:  make(map[string]model.Stock),
		orders:  make(map[uint64]model.Order),
	}
}

func (d *data) clone() *data {
	c := &data{
		users:    make(map[uint64]model.User, len(d.users)),
		traders:  make(map[uint64]model.Trader, len(d.traders)),
		stocks:   make(map[string]model.Stock, len(d.stocks)),
		orders:   make(map[uint64]model.Order, len(d.orders)),
		userSeq:  d.userSeq,
		traderSq: d.traderSq,
		orderSeq: d.orderSeq,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.traders {
		c.traders[k] = v
	}
	for k, v := range d.stocks {
		c.stocks[k] = v
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	return c
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newData(), faults: make(map[string]error)}
}

// Repository returns a handle on the live data.
func (s *Store) Repository() *Repository {
	return &Repository{store: s}
}

// InjectFault makes the named operation (e.g. "orders.create") fail with err
// until cleared with a nil err.
func (s *Store) InjectFault(op string, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	return s.faults[op]
}

// Repository is a handle on a Store, optionally bound to a transaction copy.
type Repository struct {
	store *Store
	tx    *data
}

func (r *Repository) Users() repository.UserRepository     { return userRepo{r} }
func (r *Repository) Traders() repository.TraderRepository { return traderRepo{r} }
func (r *Repository) Stocks() repository.StockRepository   { return stockRepo{r} }
func (r *Repository) Orders() repository.OrderRepository   { return orderRepo{r} }

func (r *Repository) Transaction(ctx context.Context, fn func(tx repository.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.tx != nil {
		return fn(r)
	}

	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.RLock()
	work := r.store.data.clone()
	r.store.mu.RUnlock()

	if err := fn(&Repository{store: r.store, tx: work}); err != nil {
		return err
	}

	r.store.mu.Lock()
	r.store.data = work
	r.store.mu.Unlock()
	return nil
}

func (r *Repository) read(op string, fn func(d *data) error) error {
	if err := r.store.fault(op); err != nil {
		return err
	}
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return fn(r.store.data)
}

func (r *Repository) write(op string, fn func(d *data) error) error {
	if err := r.store.fault(op); err != nil {
		return err
	}
	if r.tx != nil {
		return fn(r.tx)
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.data)
}
