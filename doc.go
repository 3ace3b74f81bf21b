// Package tasktree turns an otherwise sequential computation into a tree of
// concurrently executing branches. Internal nodes fork their continuation
// into child branches, children run on independent workers or fall back to
// in-line execution under resource pressure, and leaf values stream back
// toward the root. The first failure cancels its subtree and then the
// remaining siblings.
//
// # Branches and continuations
//
// A computation is a Func[T] operating on a Flow[T], the state carried along
// one branch. Generators fork the branch: a forked child is resumed by
// re-entering its Func with the mailbox resolved, so the generator call
// returns the child's event where the producer saw none. Because resumption
// re-enters the Func from the top, a Func should invoke at most one
// generator, and code before the generator call runs again in every resumed
// branch. Independent computations compose with Alt.
//
//	values, err := tasktree.Run(ctx, func(f *tasktree.Flow[int]) error {
//		v, ok := f.WaitEvents(nextMeasurement)
//		if !ok {
//			return nil // producer branch: work delegated to children
//		}
//		f.Yield(v * v)
//		return nil
//	}, tasktree.WithCredit(8))
//
// # Credit
//
// A shared credit pool bounds the number of extra workers. Forking takes a
// credit when one is free; otherwise the fork waits for a running child or,
// with nothing pending, runs the child in-line so progress degrades to
// sequential execution instead of deadlocking. Threads scopes a fresh pool;
// Sync pins a sub-computation to the current worker entirely.
//
// # Results and errors
//
// Leaf values recorded with Yield reach the root as an unordered multiset;
// Run collects them, Stream delivers them as they arrive. A branch failure —
// an error returned by its Func, a failing action, or a panic — cancels the
// branch's children, is reported exactly once to its parent, and surfaces at
// the root tagged with the failing branch id (see BranchError). Cancellation
// is best-effort: user code that ignores its Context cannot be reclaimed,
// which is what WithShutdownTimeout is for.
package tasktree
