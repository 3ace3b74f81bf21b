package tasktree

// Credit-governed fork: the admission-control gate deciding whether a child
// branch gets its own worker or runs in-line.
//
// With no credit and no outstanding children, blocking on the inbox would
// deadlock, so the gate degrades to sequential execution instead.

// fork admits child: on a free credit it spawns a worker; with credit
// exhausted it waits for a pending child to finish and retries, or, with
// nothing pending, runs the child in-line. Inside Sync the gate always runs
// in-line.
func (f *Flow[T]) fork(child *Flow[T]) {
	if f.loc == locRemote {
		f.runInline(child)
		return
	}
	for {
		if child.credit.TryAcquire() {
			f.spawn(child)
			return
		}
		if len(f.pending) == 0 {
			f.runInline(child)
			return
		}
		f.tree.ins.waits.Add(1)
		f.waitOne()
	}
}

// spawn hands child to a new worker. The id enters the pending set and the
// kill registry before the worker starts, so even a child that exits
// immediately is reaped as a known worker. The worker releases its credit
// before publishing its single ChildDone.
func (f *Flow[T]) spawn(child *Flow[T]) {
	f.pending[child.id] = struct{}{}
	f.tree.kills.Store(child.id, child.cancel)
	f.tree.ins.spawned.Add(1)
	f.tree.ins.live.Add(1)
	child.log.Debug().Msg("branch spawned")

	go func() {
		out := child.execute()
		f.tree.ins.live.Add(-1)
		child.credit.Release()
		child.parent <- childEvent[T]{kind: evChildDone, worker: child.id, out: out}
	}()

	f.tryReclaim()
}
