package metrics

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// Basic is an in-memory Provider backed by striped counters, cheap enough to
// sit on the engine's hot paths. Instruments are created on demand by name
// and shared for the same name.
type Basic struct {
	mu       sync.Mutex
	counters map[string]*xsync.Counter
	gauges   map[string]*xsync.Counter
}

// NewBasic constructs an empty Basic provider.
func NewBasic() *Basic {
	return &Basic{
		counters: make(map[string]*xsync.Counter),
		gauges:   make(map[string]*xsync.Counter),
	}
}

// Counter returns the monotonic counter registered under name.
func (b *Basic) Counter(name string) Counter {
	return b.instrument(b.counters, name)
}

// Gauge returns the up/down instrument registered under name.
func (b *Basic) Gauge(name string) Gauge {
	return b.instrument(b.gauges, name)
}

func (b *Basic) instrument(set map[string]*xsync.Counter, name string) *xsync.Counter {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := set[name]; ok {
		return c
	}
	c := xsync.NewCounter()
	set[name] = c
	return c
}

// CounterValue reads the current value of a counter, zero if it was never
// requested.
func (b *Basic) CounterValue(name string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.counters[name]; ok {
		return c.Value()
	}
	return 0
}

// GaugeValue reads the current value of a gauge, zero if it was never
// requested.
func (b *Basic) GaugeValue(name string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.gauges[name]; ok {
		return c.Value()
	}
	return 0
}
