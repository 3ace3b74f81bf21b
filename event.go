package tasktree

import "context"

// evkind discriminates Event variants.
type evkind uint8

const (
	evMore evkind = iota
	evLast
	evDone
	evFail
)

// Event is one element of a generator stream. More carries a value and keeps
// the stream going; Last carries the final value; Done ends the stream with
// no value; Fail ends it with an error.
type Event[T any] struct {
	kind  evkind
	value T
	err   error
}

// More returns a non-terminal event carrying v.
func More[T any](v T) Event[T] { return Event[T]{kind: evMore, value: v} }

// Last returns a terminal event carrying the final value v.
func Last[T any](v T) Event[T] { return Event[T]{kind: evLast, value: v} }

// Done returns a terminal event carrying no value.
func Done[T any]() Event[T] { return Event[T]{kind: evDone} }

// Fail returns a terminal event carrying err.
func Fail[T any](err error) Event[T] { return Event[T]{kind: evFail, err: err} }

// Value returns the event payload. It is the zero value for Done and Fail.
func (e Event[T]) Value() T { return e.value }

// Err returns the error carried by a Fail event, nil otherwise.
func (e Event[T]) Err() error { return e.err }

// Terminal reports whether the event ends its stream.
func (e Event[T]) Terminal() bool { return e.kind != evMore }

// HasValue reports whether the event carries a payload.
func (e Event[T]) HasValue() bool { return e.kind == evMore || e.kind == evLast }

// Action produces the next stream event. A returned error is equivalent to
// returning a Fail event.
type Action[T any] func(context.Context) (Event[T], error)

// IO is a plain value-producing action used by the typed generators.
type IO[T any] func(context.Context) (T, error)

func moreOf[T any](io IO[T]) Action[T] {
	return func(ctx context.Context) (Event[T], error) {
		v, err := io(ctx)
		if err != nil {
			return Event[T]{}, err
		}
		return More(v), nil
	}
}

func lastOf[T any](io IO[T]) Action[T] {
	return func(ctx context.Context) (Event[T], error) {
		v, err := io(ctx)
		if err != nil {
			return Event[T]{}, err
		}
		return Last(v), nil
	}
}
