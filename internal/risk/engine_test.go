package risk

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tradingapp/pkg/exception"
)

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		desc     string
		cfg      Config
		intent   Intent
		expected Reason
	}{
		{"no limits", Config{}, Intent{Quantity: 1000, Amount: decimal.NewFromInt(1e6)}, ReasonNone},
		{"kill switch", Config{KillSwitch: true}, Intent{Quantity: 1}, ReasonKillSwitch},
		{"max quantity", Config{MaxOrderQuantity: 10}, Intent{Quantity: 11}, ReasonMaxQuantity},
		{"max quantity edge", Config{MaxOrderQuantity: 10}, Intent{Quantity: 10}, ReasonNone},
		{"max amount", Config{MaxOrderAmount: decimal.NewFromInt(100)}, Intent{Quantity: 1, Amount: decimal.RequireFromString("100.01")}, ReasonMaxAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, NewEngine(tc.cfg).Evaluate(tc.intent))
		})
	}
}

func TestRateLimitPerTrader(t *testing.T) {
	e := NewEngine(Config{OrderRateLimit: 2, OrderRateWindow: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, ReasonNone, e.Evaluate(Intent{TraderID: 1, Now: now}))
	e.Record(1, now)
	assert.Equal(t, ReasonNone, e.Evaluate(Intent{TraderID: 1, Now: now.Add(time.Second)}))
	e.Record(1, now.Add(time.Second))
	assert.Equal(t, ReasonRateLimit, e.Evaluate(Intent{TraderID: 1, Now: now.Add(2 * time.Second)}))
	assert.Equal(t, ReasonNone, e.Evaluate(Intent{TraderID: 2, Now: now.Add(2 * time.Second)}))
	assert.Equal(t, ReasonNone, e.Evaluate(Intent{TraderID: 1, Now: now.Add(time.Minute)}))
}

func TestRateLimitIgnoresUnrecordedAttempts(t *testing.T) {
	e := NewEngine(Config{OrderRateLimit: 1, OrderRateWindow: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		assert.Equal(t, ReasonNone, e.Evaluate(Intent{TraderID: 1, Now: now.Add(time.Duration(i) * time.Second)}))
	}

	e.Record(1, now)
	assert.Equal(t, ReasonRateLimit, e.Evaluate(Intent{TraderID: 1, Now: now.Add(10 * time.Second)}))

	var nilEngine *Engine
	nilEngine.Record(1, now)
}

func TestCheckRejection(t *testing.T) {
	err := NewEngine(Config{MaxOrderQuantity: 5}).Check(Intent{Quantity: 6})
	assert.ErrorIs(t, err, exception.ErrOrderLimit)
	assert.ErrorIs(t, err, exception.ErrBusinessRule)

	var nilEngine *Engine
	assert.NoError(t, nilEngine.Check(Intent{Quantity: 6}))
}
