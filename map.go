package tasktree

import "context"

// Map fans items out through fn as sibling branches of one task tree and
// returns the results in completion order. The first error cancels the
// remaining branches and is returned; values collected before it are
// returned alongside. Concurrency follows the credit option.
func Map[T, R any](
	ctx context.Context,
	items []T,
	fn func(context.Context, T) (R, error),
	opts ...Option,
) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	fns := make([]Func[R], 0, len(items))
	for i := range items {
		item := items[i] // capture
		fns = append(fns, func(f *Flow[R]) error {
			r, err := fn(f.Context(), item)
			if err != nil {
				return err
			}
			f.Yield(r)
			return nil
		})
	}
	return Run(ctx, Alt(fns...), opts...)
}

// ForEach applies fn to every item concurrently and returns the first error,
// or nil when all succeed. The first failure cancels the remaining branches.
func ForEach[T any](ctx context.Context, items []T, fn func(context.Context, T) error, opts ...Option) error {
	if len(items) == 0 {
		return nil
	}
	fns := make([]Func[struct{}], 0, len(items))
	for i := range items {
		item := items[i] // capture
		fns = append(fns, func(f *Flow[struct{}]) error {
			return fn(f.Context(), item)
		})
	}
	_, err := Run(ctx, Alt(fns...), opts...)
	return err
}
