package tasktree

import (
	"errors"
	"time"
)

// Child-event reaper. Every rule here runs on the goroutine that owns the
// Flow; the channels are the only cross-worker surface.
//
// Error policy: the first failure observed during a drain is recorded and
// every still-pending sibling is cancelled; later events are consumed for
// their pending-set bookkeeping and their payloads dropped.

// process applies the single reaper rule to one child event and returns the
// accumulated exception.
func (f *Flow[T]) process(ev childEvent[T], exc error) error {
	switch ev.kind {
	case evChildDone:
		delete(f.pending, ev.worker)
		f.tree.kills.Delete(ev.worker)
		if ev.out.err != nil {
			return f.record(ev.out.err, exc)
		}
		if exc != nil {
			return exc
		}
		if len(ev.out.values) > 0 {
			f.emit(ev.out.values)
		}
	case evPassOn:
		if ev.out.err != nil {
			return f.record(ev.out.err, exc)
		}
		if exc != nil {
			return exc
		}
		f.emit(ev.out.values)
	}
	return exc
}

// record notes a child failure. Only the first failure is kept; recording it
// cancels every still-pending sibling.
func (f *Flow[T]) record(err, exc error) error {
	if exc != nil {
		return exc
	}
	f.log.Debug().Err(err).Msg("child failed, cancelling siblings")
	f.killPending()
	return err
}

// killPending cancels every still-pending child. Each child's own frame
// recursively cancels its subtree and still reports exactly one ChildDone,
// so the pending set is reconciled by a later drain, not here.
func (f *Flow[T]) killPending() {
	for id := range f.pending {
		if cancel, ok := f.tree.kills.LoadAndDelete(id); ok {
			cancel()
		}
	}
}

// tryReclaim drains buffered child events without blocking, keeping the
// pending set and inbox from growing while a producer forks. The first
// failure observed is re-raised on the current worker.
func (f *Flow[T]) tryReclaim() {
	var exc error
	for {
		select {
		case ev := <-f.children:
			if exc = f.process(ev, exc); exc != nil {
				f.throw(exc)
			}
		default:
			return
		}
	}
}

// waitOne blocks until one child event arrives and processes it, re-raising
// on failure. Cancelling the branch unblocks the wait.
func (f *Flow[T]) waitOne() {
	select {
	case ev := <-f.children:
		if exc := f.process(ev, nil); exc != nil {
			f.throw(exc)
		}
	case <-f.ctx.Done():
		f.throw(f.ctx.Err())
	}
}

// drainAll blocks until every pending child has reported, folding failures
// into exc, then flushes anything queued behind the final completion. Inner
// branches wait indefinitely so a subtree is always quiesced before its own
// completion is published; the root honors the configured shutdown timeout.
func (f *Flow[T]) drainAll(exc error) error {
	var deadline <-chan time.Time
	if f.parent == nil && f.tree.cfg.ShutdownTimeout > 0 {
		timer := time.NewTimer(f.tree.cfg.ShutdownTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for len(f.pending) > 0 {
		select {
		case ev := <-f.children:
			exc = f.process(ev, exc)
		case <-deadline:
			f.log.Warn().Int("pending", len(f.pending)).Msg("root drain timed out")
			return errors.Join(exc, ErrShutdownTimeout)
		}
	}

	for {
		select {
		case ev := <-f.children:
			exc = f.process(ev, exc)
		default:
			return exc
		}
	}
}
