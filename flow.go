package tasktree

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rizo/tasktree/credit"
)

// location tracks what a branch is currently doing. A producer that has
// delegated its downstream work to children waits on them; inside Sync the
// branch refuses to delegate at all.
type location uint8

const (
	locWorker location = iota
	locWaiting
	locRemote
)

// Func is a branch computation. The engine resumes a forked branch by
// re-entering its Func with the mailbox resolved, so a Func should invoke at
// most one generator; code before the generator call runs again in every
// resumed branch.
type Func[T any] func(*Flow[T]) error

// outcome is the result of a finished branch: a bag of leaf values or an
// error, never both.
type outcome[T any] struct {
	values []T
	err    error
}

// cekind discriminates childEvent variants.
type cekind uint8

const (
	evChildDone cekind = iota
	evPassOn
)

// childEvent travels on a child→parent channel. A ChildDone is the single
// completion notice every spawned worker owes its parent; a PassOnResult
// carries leaf values (or a forwarded failure) toward the root.
type childEvent[T any] struct {
	kind   cekind
	worker uuid.UUID
	out    outcome[T]
}

// Flow is the state carried along one branch of the task tree: the saved
// continuation, the mailbox slot, the parent outbox and child inbox, the
// pending-children set, the shared credit handle, and the accumulated leaf
// values. A Flow is owned by the worker executing it; other workers reach it
// only through its channels.
type Flow[T any] struct {
	id       uuid.UUID
	ctx      context.Context
	cancel   context.CancelFunc
	cont     Func[T]
	mail     mail[T]
	parent   chan<- childEvent[T] // nil at the root
	children chan childEvent[T]
	pending  map[uuid.UUID]struct{}
	credit   *credit.Pool
	accum    []T
	loc      location
	tree     *tree[T]
	log      zerolog.Logger
}

func newFlow[T any](
	ctx context.Context, t *tree[T], cont Func[T], parent chan<- childEvent[T], pool *credit.Pool, loc location,
) *Flow[T] {
	id := uuid.New()
	cctx, cancel := context.WithCancel(ctx)
	f := &Flow[T]{
		id:       id,
		ctx:      cctx,
		cancel:   cancel,
		cont:     cont,
		parent:   parent,
		children: make(chan childEvent[T], t.cfg.ChildBuffer),
		pending:  make(map[uuid.UUID]struct{}),
		credit:   pool,
		loc:      loc,
		tree:     t,
		log:      t.log.With().Stringer("branch", id).Logger(),
	}
	f.mail = suspendedMail(f)
	return f
}

// child derives the branch a fork hands off: fresh pending set and inbox, the
// outbox pointing at this branch's inbox, the same credit handle, an empty
// accumulator. A child born inside Sync inherits RemoteNode so it cannot
// delegate either.
func (f *Flow[T]) child(cont Func[T]) *Flow[T] {
	loc := locWorker
	if f.loc == locRemote {
		loc = locRemote
	}
	return newFlow(f.ctx, f.tree, cont, f.children, f.credit, loc)
}

// ID returns the branch identity used in pending sets and error tags.
func (f *Flow[T]) ID() uuid.UUID { return f.id }

// Context returns the branch's cancellation context. User actions should
// respect it; a branch whose context is cancelled cannot otherwise be
// reclaimed.
func (f *Flow[T]) Context() context.Context { return f.ctx }

// Yield records v as a leaf value of this branch. Leaf values reach the root
// as an unordered multiset once the branch completes.
func (f *Flow[T]) Yield(v T) { f.accum = append(f.accum, v) }

// takeMail empties the mailbox slot, leaving the branch suspended again.
func (f *Flow[T]) takeMail() mail[T] {
	m := f.mail
	f.mail = suspendedMail(f)
	return m
}

// emit moves leaf values one hop toward the root: onto the parent outbox, or
// into the evaluator sink at the root.
func (f *Flow[T]) emit(values []T) {
	if f.parent == nil {
		f.tree.deliver(values)
		return
	}
	f.parent <- childEvent[T]{kind: evPassOn, out: outcome[T]{values: values}}
}
