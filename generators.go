package tasktree

import (
	"fmt"
	"time"

	"github.com/rizo/tasktree/credit"
)

// Parallel drives action as a stream, one child branch per event. Every More
// event resumes the branch continuation in a new child, on a fresh worker
// when credit allows and in-line otherwise; a Last or Fail event resumes the
// final child in-line; Done ends the stream with no child.
//
// On the producer branch Parallel returns ok == false once the stream ends.
// In each resumed child it returns that child's event with ok == true; a
// Fail event carries Err() != nil and the downstream code decides whether to
// surface or swallow it.
func (f *Flow[T]) Parallel(action Action[T]) (Event[T], bool) {
	if m := f.takeMail(); m.resumed {
		return m.event, true
	}

	for {
		ev := f.step(action)
		if ev.kind == evDone {
			break
		}
		child := f.child(f.cont)
		child.mail = resumedMail(ev)
		if ev.Terminal() {
			f.runInline(child)
			break
		}
		f.fork(child)
	}

	f.delegated()
	var zero Event[T]
	return zero, false
}

// WaitEvents streams io forever, one child branch per produced value. An io
// error becomes the branch error of the child that carries it.
func (f *Flow[T]) WaitEvents(io IO[T]) (T, bool) {
	ev, ok := f.Parallel(moreOf(io))
	return f.unwrap(ev, ok)
}

// Async defers io into a single child branch producing exactly one value.
func (f *Flow[T]) Async(io IO[T]) (T, bool) {
	ev, ok := f.Parallel(lastOf(io))
	return f.unwrap(ev, ok)
}

// Sample emits the first value io produces immediately, then polls at the
// given spacing and emits only values that differ from the previous one.
// The stream is infinite; it ends with the branch's context.
//
// Sample is package-level because the change filter needs a comparable
// element type, which a method cannot require.
func Sample[T comparable](f *Flow[T], io IO[T], interval time.Duration) (T, bool) {
	if m := f.takeMail(); m.resumed {
		return f.unwrap(m.event, true)
	}

	ev := f.step(moreOf(io))
	terminal := ev.Terminal()
	prev := ev.Value()
	f.resume(ev)

	if !terminal {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for !terminal {
			select {
			case <-f.ctx.Done():
				f.throw(f.ctx.Err())
			case <-ticker.C:
			}
			f.tryReclaim()
			ev = f.step(moreOf(io))
			terminal = ev.Terminal()
			if terminal || ev.Value() != prev {
				prev = ev.Value()
				f.resume(ev)
			}
		}
	}

	f.delegated()
	var zero T
	return zero, false
}

// Sync runs x on the current worker. While it executes every fork stays
// in-line regardless of credit, so no part of x can delegate to a new
// worker. The previous location is restored on exit.
func (f *Flow[T]) Sync(x Func[T]) error {
	prev := f.loc
	f.loc = locRemote
	defer func() { f.loc = prev }()
	return x(f)
}

// Threads bounds the number of extra workers available within x to n,
// restoring the enclosing credit pool on both normal and failing exits.
// n == 0 forces every fork inside x onto the sync fallback.
func (f *Flow[T]) Threads(n uint, x Func[T]) error {
	prev := f.credit
	f.credit = credit.New(n)
	defer func() { f.credit = prev }()
	return x(f)
}

// Alt merges independent computations: each fn becomes its own branch of the
// calling flow and their emissions interleave toward the root. Use it at the
// top of a computation; its branches are producers, not resumable children.
func Alt[T any](fns ...Func[T]) Func[T] {
	return func(f *Flow[T]) error {
		if m := f.takeMail(); m.resumed {
			return nil
		}
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			f.fork(f.child(fn))
		}
		f.delegated()
		return nil
	}
}

// resume forks one child carrying ev, in-line when the event is terminal.
func (f *Flow[T]) resume(ev Event[T]) {
	child := f.child(f.cont)
	child.mail = resumedMail(ev)
	if ev.Terminal() {
		f.runInline(child)
		return
	}
	f.fork(child)
}

// delegated marks a producer that handed its downstream work to children.
func (f *Flow[T]) delegated() {
	if f.loc != locRemote {
		f.loc = locWaiting
	}
}

// step invokes the user action, converting returned errors and panics into a
// terminal Fail event. A cancelled branch stops producing immediately.
func (f *Flow[T]) step(action Action[T]) (ev Event[T]) {
	if err := f.ctx.Err(); err != nil {
		f.throw(err)
	}
	defer func() {
		if r := recover(); r != nil {
			if bf, ok := r.(branchFailure); ok {
				panic(bf)
			}
			ev = Fail[T](fmt.Errorf("%w: %v", ErrBranchPanicked, r))
		}
	}()
	ev, err := action(f.ctx)
	if err != nil {
		return Fail[T](err)
	}
	return ev
}

// unwrap adapts a Parallel result for the typed generators: producers report
// no local value, error events propagate as the branch error.
func (f *Flow[T]) unwrap(ev Event[T], ok bool) (T, bool) {
	var zero T
	if !ok {
		return zero, false
	}
	if err := ev.Err(); err != nil {
		f.throw(err)
	}
	return ev.Value(), true
}
