package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradingapp/internal/model"
	"tradingapp/internal/model/enum"
	"tradingapp/internal/repository"
	"tradingapp/pkg/exception"
)

func TestTransactionCommitAndRollback(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Repository()

	stock := model.Stock{Name: "StockA", Price: decimal.RequireFromString("9.5"), Quantity: 100}
	require.NoError(t, repo.Stocks().Create(ctx, &stock))

	errAbort := errors.New("abort")
	err := repo.Transaction(ctx, func(tx repository.Repository) error {
		require.NoError(t, tx.Stocks().UpdateQuantity(ctx, "StockA", 10))
		inside, err := tx.Stocks().Get(ctx, "StockA")
		require.NoError(t, err)
		assert.Equal(t, int64(10), inside.Quantity)
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	got, err := repo.Stocks().Get(ctx, "StockA")
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Quantity)

	require.NoError(t, repo.Transaction(ctx, func(tx repository.Repository) error {
		return tx.Stocks().UpdateQuantity(ctx, "StockA", 10)
	}))
	got, err = repo.Stocks().Get(ctx, "StockA")
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Quantity)
}

func TestInjectFault(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.Repository()

	errDown := exception.Storage(errors.New("disk full"), "create order")
	store.InjectFault("orders.create", errDown)

	order := model.Order{OrderType: enum.OrderTypeBuy, TraderID: 1, StockName: "StockA", Quantity: 1}
	assert.ErrorIs(t, repo.Orders().Create(ctx, &order), exception.ErrStorage)

	store.InjectFault("orders.create", nil)
	assert.NoError(t, repo.Orders().Create(ctx, &order))
}

func TestDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Repository()

	user := model.User{Username: "a", Token: "t1"}
	require.NoError(t, repo.Users().Create(ctx, &user))
	dup := model.User{Username: "a", Token: "t2"}
	assert.ErrorIs(t, repo.Users().Create(ctx, &dup), exception.ErrDuplicateRecord)

	stock := model.Stock{Name: "StockA"}
	require.NoError(t, repo.Stocks().Create(ctx, &stock))
	assert.ErrorIs(t, repo.Stocks().Create(ctx, &stock), exception.ErrDuplicateRecord)
}

func TestFilterOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Repository()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, qty := range []int64{10, 20, 30} {
		order := model.Order{
			OrderType: enum.OrderTypeBuy,
			TraderID:  1,
			StockName: "StockA",
			Quantity:  qty,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Orders().Create(ctx, &order))
	}

	orders, err := repo.Orders().Filter(ctx, model.OrderFilter{TraderID: 1})
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, int64(30), orders[0].Quantity)
	assert.Equal(t, int64(10), orders[2].Quantity)

	none, err := repo.Orders().Filter(ctx, model.OrderFilter{TraderID: 2})
	require.NoError(t, err)
	assert.Empty(t, none)
}
