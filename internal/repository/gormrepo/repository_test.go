package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradingapp/internal/model"
	"tradingapp/internal/model/enum"
	"tradingapp/internal/repository"
	"tradingapp/pkg/conn"
	"tradingapp/pkg/exception"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	client, err := conn.New(conn.Option{
		Driver:       conn.DriverSQLite,
		Database:     "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, Migrate(client.DB()))
	return New(client.DB())
}

func TestUserAndTrader(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	user := model.User{Username: "test_user_a", Token: "token-a"}
	require.NoError(t, repo.Users().Create(ctx, &user))
	require.NotZero(t, user.ID)

	trader := model.Trader{UserID: user.ID, Balance: decimal.NewFromInt(1000)}
	require.NoError(t, repo.Traders().Create(ctx, &trader))

	found, err := repo.Users().GetByToken(ctx, "token-a")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	got, err := repo.Traders().GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(got.Balance))

	require.NoError(t, repo.Traders().UpdateBalance(ctx, trader.ID, decimal.RequireFromString("905")))
	got, err = repo.Traders().Get(ctx, trader.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("905").Equal(got.Balance), "balance: %s", got.Balance)

	_, err = repo.Users().GetByToken(ctx, "missing")
	assert.ErrorIs(t, err, exception.ErrUnknownUser)
	assert.ErrorIs(t, repo.Traders().UpdateBalance(ctx, 999, decimal.Zero), exception.ErrUnknownTrader)
}

func TestStock(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for _, stock := range []model.Stock{
		{Name: "StockB", Price: decimal.RequireFromString("5.7"), Quantity: 70},
		{Name: "StockA", Price: decimal.RequireFromString("9.5"), Quantity: 100},
	} {
		require.NoError(t, repo.Stocks().Create(ctx, &stock))
	}

	stocks, err := repo.Stocks().List(ctx)
	require.NoError(t, err)
	require.Len(t, stocks, 2)
	assert.Equal(t, "StockA", stocks[0].Name)

	require.NoError(t, repo.Stocks().UpdateQuantity(ctx, "StockA", 90))
	require.NoError(t, repo.Stocks().UpdatePrice(ctx, "StockA", decimal.RequireFromString("14.3")))

	stock, err := repo.Stocks().GetForUpdate(ctx, "StockA")
	require.NoError(t, err)
	assert.Equal(t, int64(90), stock.Quantity)
	assert.True(t, decimal.RequireFromString("14.3").Equal(stock.Price))

	_, err = repo.Stocks().Get(ctx, "StockZ")
	assert.ErrorIs(t, err, exception.ErrUnknownStock)
	assert.ErrorIs(t, err, exception.ErrNotFound)
}

func TestOrderFilter(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{OrderType: enum.OrderTypeBuy, TraderID: 1, StockName: "StockA", Quantity: 50, Amount: decimal.NewFromInt(475), CreatedAt: base},
		{OrderType: enum.OrderTypeSell, TraderID: 1, StockName: "StockA", Quantity: 20, Amount: decimal.NewFromInt(190), CreatedAt: base.Add(time.Second)},
		{OrderType: enum.OrderTypeBuy, TraderID: 1, StockName: "StockB", Quantity: 1, Amount: decimal.RequireFromString("5.7"), CreatedAt: base.Add(2 * time.Second)},
		{OrderType: enum.OrderTypeBuy, TraderID: 2, StockName: "StockA", Quantity: 5, Amount: decimal.RequireFromString("47.5"), CreatedAt: base.Add(3 * time.Second)},
	}
	for i := range orders {
		orders[i].Status = enum.OrderStatusSuccess
		require.NoError(t, repo.Orders().Create(ctx, &orders[i]))
	}

	got, err := repo.Orders().Filter(ctx, model.OrderFilter{TraderID: 1, StockName: "StockA"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, enum.OrderTypeSell, got[0].OrderType, "newest first")
	assert.Equal(t, enum.OrderTypeBuy, got[1].OrderType)

	buys, err := repo.Orders().Filter(ctx, model.OrderFilter{TraderID: 1, OrderType: enum.OrderTypeBuy})
	require.NoError(t, err)
	assert.Len(t, buys, 2)

	require.NoError(t, repo.Orders().UpdateRemarks(ctx, orders[0].ID, "long term"))
	order, err := repo.Orders().Get(ctx, orders[0].ID)
	require.NoError(t, err)
	require.NotNil(t, order.Remarks)
	assert.Equal(t, "long term", *order.Remarks)
	assert.Equal(t, int64(50), order.Quantity)
	assert.True(t, decimal.NewFromInt(475).Equal(order.Amount))
}

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	stock := model.Stock{Name: "StockA", Price: decimal.RequireFromString("9.5"), Quantity: 100}
	require.NoError(t, repo.Stocks().Create(ctx, &stock))

	errAbort := errors.New("abort")
	err := repo.Transaction(ctx, func(tx repository.Repository) error {
		if err := tx.Stocks().UpdateQuantity(ctx, "StockA", 10); err != nil {
			return err
		}
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
