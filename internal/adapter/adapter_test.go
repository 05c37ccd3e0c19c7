package adapter

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradingapp/internal/model"
	"tradingapp/internal/model/enum"
	"tradingapp/pkg/exception"
)

func TestNewOrderView(t *testing.T) {
	order := model.Order{
		ID:        3,
		OrderType: enum.OrderTypeBuy,
		TraderID:  1,
		StockName: "StockA",
		Quantity:  10,
		Amount:    decimal.RequireFromString("95"),
		Status:    enum.OrderStatusSuccess,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	view := NewOrderView(order, decimal.NewFromInt(12))
	assert.Equal(t, "9.5", view.PricePerShare.String())
	assert.Equal(t, "120", view.CurrentAmount.String())
	require.NotNil(t, view.ProjectedGain)
	assert.Equal(t, "25", view.ProjectedGain.String())

	data, err := json.Marshal(view)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "buy", body["order_type"])
	assert.Equal(t, "95", body["amount"])
	assert.Equal(t, "StockA", body["stock"])

	order.OrderType = enum.OrderTypeSell
	assert.Nil(t, NewOrderView(order, decimal.NewFromInt(12)).ProjectedGain)
}

func TestNewOrderViewsFallbackPrice(t *testing.T) {
	orders := []model.Order{{OrderType: enum.OrderTypeBuy, StockName: "Gone", Quantity: 2, Amount: decimal.NewFromInt(10)}}
	views := NewOrderViews(orders, nil)
	require.Len(t, views, 1)
	assert.True(t, views[0].ProjectedGain.IsZero())
}

func TestNewStockView(t *testing.T) {
	stock := model.Stock{Name: "StockA", Price: decimal.NewFromInt(10), Quantity: 0}
	view := NewStockView(stock, nil)
	assert.False(t, view.IsAvailable)
	assert.Nil(t, view.Invested)

	view = NewStockView(stock, &model.Position{
		StockName:   "StockA",
		Buy:         model.PositionLeg{Amount: decimal.NewFromInt(500), Shares: 50},
		Sell:        model.PositionLeg{Amount: decimal.NewFromInt(200), Shares: 20},
		NetInvested: decimal.NewFromInt(300),
		NetShares:   30,
	})
	require.NotNil(t, view.Invested)
	assert.Equal(t, int64(30), view.Invested.NetShares)
	assert.Equal(t, int64(20), view.Invested.Sell.Shares)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$905.00", FormatMoney(decimal.RequireFromString("905"), "USD"))
	assert.Equal(t, "$9.50", FormatMoney(decimal.RequireFromString("9.5"), "USD"))
	assert.Equal(t, "1.5 XXXX", FormatMoney(decimal.RequireFromString("1.5"), "XXXX"))
}

func TestNewErrorView(t *testing.T) {
	view := NewErrorView(exception.Reject(exception.ErrInsufficientFunds, "500", "Not enough balance"), "req-1")
	assert.Equal(t, "Not enough balance", view.Error)
	assert.Equal(t, "business_rule_violation", view.Kind)
	assert.Equal(t, "500", view.Available)
	assert.Equal(t, "req-1", view.RequestID)

	view = NewErrorView(exception.Storage(errors.New("dial tcp: refused"), "get trader"), "")
	assert.Equal(t, "internal error", view.Error)
	assert.Equal(t, "storage_error", view.Kind)
}
