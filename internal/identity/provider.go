// Package identity registers users and resolves API tokens to traders.
package identity

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yanun0323/errors"

	"tradingapp/internal/model"
	"tradingapp/internal/repository"
	"tradingapp/pkg/exception"
)

// DefaultSignupBalance is credited to every new trader.
var DefaultSignupBalance = decimal.NewFromInt(100)

const usernameMaxLen = 150

// Config holds the identity settings.
type Config struct {
	SignupBalance *decimal.Decimal `json:"signupBalance"`
}

// Provider owns users and their trader accounts.
type Provider struct {
	repo          repository.Repository
	signupBalance decimal.Decimal
	newToken      func() string
}

// NewProvider creates a provider. A nil signup balance falls back to
// DefaultSignupBalance.
func NewProvider(repo repository.Repository, cfg Config) *Provider {
	balance := DefaultSignupBalance
	if cfg.SignupBalance != nil {
		balance = *cfg.SignupBalance
	}
	return &Provider{
		repo:          repo,
		signupBalance: balance,
		newToken: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
	}
}

// Register creates a user and its trader in one transaction.
func (p *Provider) Register(ctx context.Context, username string) (model.User, model.Trader, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.User{}, model.Trader{}, errors.Wrap(exception.ErrMissingField, "username")
	}
	if utf8.RuneCountInString(username) > usernameMaxLen {
		return model.User{}, model.Trader{}, errors.Wrapf(exception.ErrInvalidUsername, "longer than %d", usernameMaxLen)
	}

	var (
		user   model.User
		trader model.Trader
	)
	err := p.repo.Transaction(ctx, func(tx repository.Repository) error {
		user = model.User{Username: username, Token: p.newToken()}
		if err := tx.Users().Create(ctx, &user); err != nil {
			return err
		}
		trader = model.Trader{UserID: user.ID, Balance: p.signupBalance}
		return tx.Traders().Create(ctx, &trader)
	})
	if err != nil {
		return model.User{}, model.Trader{}, err
	}
	return user, trader, nil
}

// Authenticate resolves a token to its user and trader.
func (p *Provider) Authenticate(ctx context.Context, token string) (model.User, model.Trader, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.User{}, model.Trader{}, exception.ErrMissingToken
	}
	user, err := p.repo.Users().GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, exception.ErrUnknownUser) {
			return model.User{}, model.Trader{}, exception.ErrInvalidToken
		}
		return model.User{}, model.Trader{}, err
	}
	trader, err := p.repo.Traders().GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, exception.ErrUnknownTrader) {
			return model.User{}, model.Trader{}, exception.ErrInvalidToken
		}
		return model.User{}, model.Trader{}, err
	}
	return user, trader, nil
}

// CurrentTrader returns the trader authenticated by token.
func (p *Provider) CurrentTrader(ctx context.Context, token string) (model.Trader, error) {
	_, trader, err := p.Authenticate(ctx, token)
	return trader, err
}

// TokenFromHeader extracts the key of an "Authorization: Token <key>" or
// "Bearer <key>" header value.
func TokenFromHeader(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", exception.ErrMissingToken
	}
	scheme, key, ok := strings.Cut(header, " ")
	if !ok {
		return "", exception.ErrInvalidToken
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
	default:
		return "", exception.ErrInvalidToken
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", exception.ErrMissingToken
	}
	return key, nil
}
