package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"tradingapp/internal/model"
	"tradingapp/pkg/exception"
)

// TestSettleLedgerProperties runs random order sequences and checks the ledger
// deltas of every settlement against the state before it. Prices may drop to
// zero or below.
func TestSettleLedgerProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		balance := rapid.IntRange(0, 2000).Draw(rt, "balance")
		price := rapid.IntRange(-5, 50).Draw(rt, "price")
		inventory := rapid.Int64Range(0, 200).Draw(rt, "inventory")

		f := newFixture(rt, decimal.NewFromInt(int64(balance)).String(), decimal.NewFromInt(int64(price)).String(), inventory)
		ctx := context.Background()
		var owned int64

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			typ := rapid.SampledFrom([]string{"buy", "sell"}).Draw(rt, "type")
			quantity := rapid.Int64Range(1, 60).Draw(rt, "quantity")
			if rapid.Bool().Draw(rt, "reprice") {
				newPrice := rapid.IntRange(-5, 50).Draw(rt, "newPrice")
				require.NoError(rt, f.repo.Stocks().UpdatePrice(ctx, "StockA", decimal.NewFromInt(int64(newPrice))))
			}

			balanceBefore, quantityBefore := f.ledgers(rt)
			stock, err := f.repo.Stocks().Get(ctx, "StockA")
			require.NoError(rt, err)
			amount := stock.Price.Mul(decimal.NewFromInt(quantity))

			order, err := f.settle(rt, typ, quantity)
			balanceAfter, quantityAfter := f.ledgers(rt)

			if err != nil {
				require.True(rt, errors.Is(err, exception.ErrBusinessRule), "unexpected error %v", err)
				require.True(rt, balanceBefore.Equal(balanceAfter))
				require.Equal(rt, quantityBefore, quantityAfter)

				_, again := f.settle(rt, typ, quantity)
				require.Error(rt, again)
				require.Equal(rt, err.Error(), again.Error())
				continue
			}

			require.True(rt, order.Amount.Equal(amount))
			switch typ {
			case "buy":
				require.True(rt, balanceAfter.Equal(balanceBefore.Sub(amount)))
				require.Equal(rt, quantityBefore-quantity, quantityAfter)
				owned += quantity
			case "sell":
				require.LessOrEqual(rt, quantity, owned)
				require.True(rt, balanceAfter.Equal(balanceBefore.Add(amount)))
				require.Equal(rt, quantityBefore+quantity, quantityAfter)
				owned -= quantity
			}
			require.False(rt, balanceAfter.IsNegative())
			require.GreaterOrEqual(rt, quantityAfter, int64(0))
		}

		pos, err := f.service.Position(ctx, f.trader.ID, "StockA")
		require.NoError(rt, err)
		if pos != nil {
			require.Equal(rt, owned, pos.NetShares)
		}
	})
}

// TestOversellAlwaysRejected checks that selling more than the net owned
// shares fails whatever the balance and inventory.
func TestOversellAlwaysRejected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		bought := rapid.Int64Range(1, 50).Draw(rt, "bought")
		extra := rapid.Int64Range(1, 50).Draw(rt, "extra")

		f := newFixture(rt, "1000000", "1", 1000)
		_, err := f.settle(rt, "buy", bought)
		require.NoError(rt, err)

		_, err = f.settle(rt, "sell", bought+extra)
		require.True(rt, errors.Is(err, exception.ErrInsufficientShares))

		var owned model.Order
		owned, err = f.settle(rt, "sell", bought)
		require.NoError(rt, err)
		require.Equal(rt, bought, owned.Quantity)
	})
}
