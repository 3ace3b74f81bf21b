package tasktree

// mail is the one-slot hand-off between a generator and the continuation it
// resumes. Until a generator takes the slot it holds the suspended branch
// itself; in a forked child it holds the event the continuation is resumed
// with. A generator that finds the branch suspended becomes the producer; one
// that finds an event returns it downstream.
type mail[T any] struct {
	flow    *Flow[T]
	event   Event[T]
	resumed bool
}

func suspendedMail[T any](f *Flow[T]) mail[T] { return mail[T]{flow: f} }

func resumedMail[T any](ev Event[T]) mail[T] { return mail[T]{event: ev, resumed: true} }
