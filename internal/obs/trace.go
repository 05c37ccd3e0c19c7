package obs

import (
	"strconv"
	"sync/atomic"
	"time"
)

// TraceGenerator creates monotonically increasing request ids.
type TraceGenerator struct {
	prefix string
	next   uint64
}

// NewTraceGenerator returns a generator seeded with the given value. A zero
// seed starts from the current time.
func NewTraceGenerator(prefix string, seed uint64) *TraceGenerator {
	if seed == 0 {
		seed = uint64(time.Now().UTC().UnixNano())
	}
	return &TraceGenerator{prefix: prefix, next: seed}
}

// Next returns the next id.
func (g *TraceGenerator) Next() string {
	if g == nil {
		return ""
	}
	return g.prefix + strconv.FormatUint(atomic.AddUint64(&g.next, 1), 36)
}
