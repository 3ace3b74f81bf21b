package tasktree

import (
	"context"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/rizo/tasktree/credit"
	"github.com/rizo/tasktree/metrics"
)

// tree is the state shared by every branch of one evaluation: configuration,
// logger, instruments, the kill registry, and the root sink. Aside from the
// channels it is the only cross-worker surface, and every field of it is
// safe for concurrent use.
type tree[T any] struct {
	cfg   Config
	log   zerolog.Logger
	ins   instruments
	kills *xsync.MapOf[uuid.UUID, context.CancelFunc]
	sink  func([]T)
}

func newTree[T any](cfg Config, sink func([]T)) *tree[T] {
	return &tree[T]{
		cfg:   cfg,
		log:   cfg.Logger,
		ins:   newInstruments(cfg.Metrics),
		kills: xsync.NewMapOf[uuid.UUID, context.CancelFunc](),
		sink:  sink,
	}
}

// deliver hands leaf values to the evaluator sink. Only the root goroutine
// reaches it: root-level forwarding and in-line execution both happen there.
func (t *tree[T]) deliver(values []T) {
	t.ins.emitted.Add(int64(len(values)))
	t.sink(values)
}

type instruments struct {
	spawned  metrics.Counter
	inline   metrics.Counter
	waits    metrics.Counter
	failures metrics.Counter
	emitted  metrics.Counter
	live     metrics.Gauge
}

func newInstruments(p metrics.Provider) instruments {
	return instruments{
		spawned:  p.Counter("branches_spawned"),
		inline:   p.Counter("branches_inline"),
		waits:    p.Counter("credit_waits"),
		failures: p.Counter("branch_failures"),
		emitted:  p.Counter("results_emitted"),
		live:     p.Gauge("branches_live"),
	}
}

// Run evaluates fn as the root of a task tree and returns the multiset of
// leaf values together with the first error the root observed. The order of
// values from concurrent branches is unspecified; with zero credit execution
// is fully in-line and the order follows the producers.
func Run[T any](ctx context.Context, fn Func[T], opts ...Option) ([]T, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrNilComputation
	}

	var collected []T
	t := newTree(cfg, func(values []T) { collected = append(collected, values...) })
	root := newFlow(ctx, t, fn, nil, credit.New(cfg.Credit), locWorker)

	if out := root.execute(); out.err != nil {
		return collected, out.err
	}
	return collected, nil
}

// Stream evaluates fn and returns channels delivering leaf values as they
// reach the root. Both channels are closed once the tree has quiesced; at
// most one error is delivered. Cancel ctx to end an infinite stream, then
// drain the results channel until it closes.
//
//nolint:gocritic // ignore unnamed results.
func Stream[T any](ctx context.Context, fn Func[T], opts ...Option) (<-chan T, <-chan error, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	if fn == nil {
		return nil, nil, ErrNilComputation
	}

	results := make(chan T, cfg.ResultsBuffer)
	errs := make(chan error, cfg.ErrorsBuffer)

	t := newTree(cfg, func(values []T) {
		for _, v := range values {
			results <- v
		}
	})
	root := newFlow(ctx, t, fn, nil, credit.New(cfg.Credit), locWorker)

	go func() {
		defer close(errs)
		defer close(results)
		if out := root.execute(); out.err != nil {
			errs <- out.err
		}
	}()

	return results, errs, nil
}
