package adapter

import (
	"github.com/shopspring/decimal"

	"tradingapp/internal/model"
)

type RegisterPayload struct {
	Username string `json:"username"`
}

// ProfileView is the caller's identity and balance.
type ProfileView struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Balance  decimal.Decimal `json:"balance"`
	Display  string          `json:"balance_display"`
	Token    string          `json:"token,omitempty"`
}

// NewProfileView renders a trader. The token is only set on registration.
func NewProfileView(user model.User, trader model.Trader, currency string, withToken bool) ProfileView {
	view := ProfileView{
		ID:       trader.ID,
		Username: user.Username,
		Balance:  trader.Balance,
		Display:  FormatMoney(trader.Balance, currency),
	}
	if withToken {
		view.Token = user.Token
	}
	return view
}
