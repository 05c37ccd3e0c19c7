package risk

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"tradingapp/pkg/exception"
)

// Config defines per-order limits applied before settlement. Zero values
// disable the matching check.
type Config struct {
	KillSwitch       bool            `json:"killSwitch"`
	MaxOrderQuantity int64           `json:"maxOrderQuantity"`
	MaxOrderAmount   decimal.Decimal `json:"maxOrderAmount"`
	OrderRateLimit   int             `json:"orderRateLimit"`
	OrderRateWindow  time.Duration   `json:"orderRateWindow"`
}

// Reason explains a denial.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonKillSwitch
	ReasonRateLimit
	ReasonMaxQuantity
	ReasonMaxAmount
)

func (r Reason) String() string {
	switch r {
	case ReasonKillSwitch:
		return "kill_switch"
	case ReasonRateLimit:
		return "rate_limit"
	case ReasonMaxQuantity:
		return "max_quantity"
	case ReasonMaxAmount:
		return "max_amount"
	default:
		return "none"
	}
}

// Intent is the order about to be settled.
type Intent struct {
	TraderID uint64
	Quantity int64
	Amount   decimal.Decimal
	Now      time.Time
}

type window struct {
	start time.Time
	count int
}

// Engine evaluates order limits. It is safe for concurrent use.
type Engine struct {
	cfg Config

	mu      sync.Mutex
	windows map[uint64]*window
}

// NewEngine creates a risk engine with static limits.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg, windows: make(map[uint64]*window)}
}

// Evaluate returns ReasonNone when the intent passes every limit.
func (e *Engine) Evaluate(intent Intent) Reason {
	if e == nil {
		return ReasonNone
	}
	if e.cfg.KillSwitch {
		return ReasonKillSwitch
	}

	if e.cfg.OrderRateLimit > 0 && e.cfg.OrderRateWindow > 0 {
		now := intent.Now
		if now.IsZero() {
			now = time.Now().UTC()
		}
		e.mu.Lock()
		w, ok := e.windows[intent.TraderID]
		exceeded := ok && now.Sub(w.start) < e.cfg.OrderRateWindow && w.count >= e.cfg.OrderRateLimit
		e.mu.Unlock()
		if exceeded {
			return ReasonRateLimit
		}
	}

	if e.cfg.MaxOrderQuantity > 0 && intent.Quantity > e.cfg.MaxOrderQuantity {
		return ReasonMaxQuantity
	}

	if e.cfg.MaxOrderAmount.IsPositive() && intent.Amount.GreaterThan(e.cfg.MaxOrderAmount) {
		return ReasonMaxAmount
	}

	return ReasonNone
}

// Record counts one settled order of trader towards the rate window. Only
// settled orders count, so a rejected order can be resent unchanged.
func (e *Engine) Record(traderID uint64, now time.Time) {
	if e == nil || e.cfg.OrderRateLimit <= 0 || e.cfg.OrderRateWindow <= 0 {
		return
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	w, ok := e.windows[traderID]
	if !ok || now.Sub(w.start) >= e.cfg.OrderRateWindow {
		w = &window{start: now}
		e.windows[traderID] = w
	}
	w.count++
}

// Check evaluates intent and turns a denial into an order limit rejection.
func (e *Engine) Check(intent Intent) error {
	switch reason := e.Evaluate(intent); reason {
	case ReasonNone:
		return nil
	case ReasonKillSwitch:
		return exception.Reject(exception.ErrOrderLimit, nil, "Trading is halted")
	case ReasonRateLimit:
		return exception.Reject(exception.ErrOrderLimit, e.cfg.OrderRateLimit,
			"Too many orders. Limit: %d per %s", e.cfg.OrderRateLimit, e.cfg.OrderRateWindow)
	case ReasonMaxQuantity:
		return exception.Reject(exception.ErrOrderLimit, e.cfg.MaxOrderQuantity,
			"Order quantity exceeds limit: %d", e.cfg.MaxOrderQuantity)
	default:
		return exception.Reject(exception.ErrOrderLimit, e.cfg.MaxOrderAmount,
			"Order amount exceeds limit: %s", e.cfg.MaxOrderAmount)
	}
}
