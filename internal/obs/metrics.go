package obs

import (
	"sync/atomic"
	"time"

	"github.com/yanun0323/errors"

	"tradingapp/pkg/exception"
)

// Outcome classifies the result of one settlement call.
type Outcome uint8

const (
	OutcomeSettled Outcome = iota
	OutcomeInsufficientFunds
	OutcomeInsufficientInventory
	OutcomeInsufficientShares
	OutcomeOrderLimit
	OutcomeValidation
	OutcomeNotFound
	OutcomeStorage
	OutcomeOther
	maxOutcome = OutcomeOther
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSettled:
		return "settled"
	case OutcomeInsufficientFunds:
		return "insufficient_funds"
	case OutcomeInsufficientInventory:
		return "insufficient_inventory"
	case OutcomeInsufficientShares:
		return "insufficient_shares"
	case OutcomeOrderLimit:
		return "order_limit"
	case OutcomeValidation:
		return "validation"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeStorage:
		return "storage"
	default:
		return "other"
	}
}

// OutcomeOf maps a settlement error to its outcome.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSettled
	case errors.Is(err, exception.ErrInsufficientFunds):
		return OutcomeInsufficientFunds
	case errors.Is(err, exception.ErrInsufficientInventory):
		return OutcomeInsufficientInventory
	case errors.Is(err, exception.ErrInsufficientShares):
		return OutcomeInsufficientShares
	case errors.Is(err, exception.ErrOrderLimit):
		return OutcomeOrderLimit
	case errors.Is(err, exception.ErrValidation):
		return OutcomeValidation
	case errors.Is(err, exception.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, exception.ErrStorage):
		return OutcomeStorage
	default:
		return OutcomeOther
	}
}

// Metrics collects lightweight counters and latency stats.
type Metrics struct {
	outcomeCounts [maxOutcome + 1]uint64
	requests      uint64
	serverErrors  uint64

	settleLatency  LatencyStats
	requestLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64        `json:"count"`
	Min   time.Duration `json:"min"`
	Max   time.Duration `json:"max"`
	Avg   time.Duration `json:"avg"`
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	Outcomes       map[string]uint64 `json:"outcomes"`
	Requests       uint64            `json:"requests"`
	ServerErrors   uint64            `json:"serverErrors"`
	SettleLatency  LatencySnapshot   `json:"settleLatency"`
	RequestLatency LatencySnapshot   `json:"requestLatency"`
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// ObserveSettlement counts the outcome of err and records the call latency.
func (m *Metrics) ObserveSettlement(err error, d time.Duration) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.outcomeCounts[OutcomeOf(err)], 1)
	m.settleLatency.Observe(d)
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(status int, d time.Duration) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.requests, 1)
	if status >= 500 {
		atomic.AddUint64(&m.serverErrors, 1)
	}
	m.requestLatency.Observe(d)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	outcomes := make(map[string]uint64)
	for i := range m.outcomeCounts {
		if v := atomic.LoadUint64(&m.outcomeCounts[i]); v > 0 {
			outcomes[Outcome(i).String()] = v
		}
	}
	return Snapshot{
		Outcomes:       outcomes,
		Requests:       atomic.LoadUint64(&m.requests),
		ServerErrors:   atomic.LoadUint64(&m.serverErrors),
		SettleLatency:  m.settleLatency.Snapshot(),
		RequestLatency: m.requestLatency.Snapshot(),
	}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&l.sum)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(atomic.LoadUint64(&l.min)),
		Max:   time.Duration(atomic.LoadUint64(&l.max)),
		Avg:   time.Duration(sum / count),
	}
}
