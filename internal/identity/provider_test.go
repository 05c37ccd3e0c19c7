package identity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradingapp/internal/repository/memory"
	"tradingapp/pkg/exception"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Repository()
	p := NewProvider(repo, Config{})

	user, trader, err := p.Register(ctx, " alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Len(t, user.Token, 32)
	assert.Equal(t, user.ID, trader.UserID)
	assert.True(t, trader.Balance.Equal(DefaultSignupBalance))

	_, _, err = p.Register(ctx, "alice")
	assert.ErrorIs(t, err, exception.ErrDuplicateRecord)

	_, _, err = p.Register(ctx, "")
	assert.ErrorIs(t, err, exception.ErrMissingField)

	_, _, err = p.Register(ctx, strings.Repeat("a", usernameMaxLen+1))
	assert.ErrorIs(t, err, exception.ErrInvalidUsername)
}

func TestRegisterCustomBalance(t *testing.T) {
	balance := decimal.NewFromInt(1000)
	p := NewProvider(memory.NewStore().Repository(), Config{SignupBalance: &balance})
	_, trader, err := p.Register(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "1000", trader.Balance.String())
}

func TestRegisterIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := store.Repository()
	p := NewProvider(repo, Config{})

	store.InjectFault("traders.create", exception.Storage(errors.New("down"), "create trader"))
	user, _, err := p.Register(ctx, "carol")
	require.ErrorIs(t, err, exception.ErrStorage)
	assert.Zero(t, user.ID)

	store.InjectFault("traders.create", nil)
	_, _, err = p.Register(ctx, "carol")
	require.NoError(t, err)
}

func TestCurrentTrader(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(memory.NewStore().Repository(), Config{})
	user, trader, err := p.Register(ctx, "dave")
	require.NoError(t, err)

	got, err := p.CurrentTrader(ctx, user.Token)
	require.NoError(t, err)
	assert.Equal(t, trader.ID, got.ID)

	_, err = p.CurrentTrader(ctx, "")
	assert.ErrorIs(t, err, exception.ErrMissingToken)

	_, err = p.CurrentTrader(ctx, "nope")
	assert.ErrorIs(t, err, exception.ErrInvalidToken)
	assert.ErrorIs(t, err, exception.ErrUnauthorized)
}

func TestTokenFromHeader(t *testing.T) {
	testCases := []struct {
		header string
		token  string
		err    error
	}{
		{header: "Token abc", token: "abc"},
		{header: "Bearer  abc ", token: "abc"},
		{header: "token abc", token: "abc"},
		{header: "", err: exception.ErrMissingToken},
		{header: "abc", err: exception.ErrInvalidToken},
		{header: "Basic abc", err: exception.ErrInvalidToken},
	}
	for _, tc := range testCases {
		t.Run(tc.header, func(t *testing.T) {
			token, err := TokenFromHeader(tc.header)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.token, token)
		})
	}
}
