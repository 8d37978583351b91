package ksync

import "mos/kernel/port"

// Barrier is a reusable rendezvous point for a fixed number of tasks (spec
// §4.3 "Barrier"). A monotonically increasing generation counter is the
// predicate Wait retests, which is what lets the barrier be reused
// immediately without dropping a straggler that has not yet observed the
// previous generation's broadcast (spec §9 supplemented feature, grounded
// in _examples/original_source/kernel/sync.hpp's Barrier_t, whose
// equivalent has_waiters()-gated reset this generation counter replaces).
type Barrier struct {
	mtx        PriorityMutex
	cv         CondVar
	total      int32
	count      int32
	generation uint64
}

// NewBarrier creates a barrier that releases every `total` callers of Wait.
func NewBarrier(total int32) *Barrier {
	return &Barrier{mtx: PriorityMutex{cnt: 1}, total: total}
}

// Generation returns the number of completed rendezvous (diagnostics/tests).
func (b *Barrier) Generation() uint64 {
	guard := port.EnterGuard()
	defer guard.Exit()
	return b.generation
}

// Wait blocks until `total` tasks have called Wait on this barrier, then
// releases all of them together and advances the generation. The barrier
// is immediately reusable by the same or different callers.
func (b *Barrier) Wait() {
	b.mtx.Acquire()
	gen := b.generation
	b.count++
	if b.count == b.total {
		b.count = 0
		b.generation++
		b.mtx.Release()
		b.cv.NotifyAll()
		return
	}
	b.cv.Wait(&b.mtx, func() bool { return b.generation != gen })
	b.mtx.Release()
}
