package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasic_Counter(t *testing.T) {
	p := NewBasic()

	c := p.Counter("spawned")
	c.Add(2)
	c.Add(3)
	require.EqualValues(t, 5, p.CounterValue("spawned"))

	// same name returns the same instrument
	p.Counter("spawned").Add(1)
	require.EqualValues(t, 6, p.CounterValue("spawned"))

	require.EqualValues(t, 0, p.CounterValue("unknown"))
}

func TestBasic_Gauge(t *testing.T) {
	p := NewBasic()

	g := p.Gauge("live")
	g.Add(3)
	g.Add(-2)
	require.EqualValues(t, 1, p.GaugeValue("live"))

	// counters and gauges are separate namespaces
	p.Counter("live").Add(10)
	require.EqualValues(t, 1, p.GaugeValue("live"))
	require.EqualValues(t, 10, p.CounterValue("live"))
}

func TestBasic_ConcurrentAdds(t *testing.T) {
	p := NewBasic()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := p.Counter("hits")
			for j := 0; j < 1000; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 16000, p.CounterValue("hits"))
}

func TestNop(t *testing.T) {
	p := Nop()
	// must be callable and inert
	p.Counter("x").Add(5)
	p.Gauge("y").Add(-5)
}
