package ksync

import (
	"mos/kernel/kerrors"
	"mos/kernel/port"
	"mos/kernel/task"
)

// PriorityMutex is a recursive mutex with single ownership and priority
// inheritance (spec §4.3 "Priority-inheritance mutex"). This port
// implements the pairwise-boost variant the spec mandates ("the pairwise
// variant is preferred for simplicity and is what this specification
// mandates"), not the ceiling-tracking variant _examples/original_source
// also shows (see DESIGN.md Open Questions).
type PriorityMutex struct {
	waiting   task.List
	cnt       int32
	owner     *task.TCB
	recursion int32
}

// NewPriorityMutex creates an unheld priority-inheritance mutex.
func NewPriorityMutex() *PriorityMutex {
	return &PriorityMutex{cnt: 1}
}

// Owner returns the current owner, or nil if unheld (diagnostics only).
func (m *PriorityMutex) Owner() *task.TCB {
	guard := port.EnterGuard()
	defer guard.Exit()
	return m.owner
}

// Acquire locks the mutex. A recursive acquire by the current owner just
// increments the recursion count. A contended acquire by a higher-priority
// caller boosts the current owner's current priority to the caller's
// before blocking, bounding the priority inversion the owner can impose.
func (m *PriorityMutex) Acquire() {
	kerrors.Assert(port.IRQEnabled(), "mutex acquire: interrupts already disabled")
	guard := port.EnterGuard()
	cur := task.Current()

	if m.owner == cur {
		m.recursion++
		guard.Exit()
		return
	}

	if m.owner != nil && cur.Priority() < m.owner.Priority() {
		m.owner.StorePriority(cur.Priority())
	}

	m.cnt--
	if m.cnt < 0 {
		task.BlockToLocked(cur, &m.waiting)
		guard.Exit()
		task.Yield()
		return
	}

	m.owner = cur
	m.recursion = 1
	guard.Exit()
}

// Release unlocks one recursion level. At recursion zero it restores the
// owner's static priority, transfers ownership directly to the
// highest-priority waiter (so no third task can steal the lock between
// release and the waiter actually running), and yields if a higher-priority
// task is now ready.
func (m *PriorityMutex) Release() {
	kerrors.Assert(port.IRQEnabled(), "mutex release: interrupts already disabled")
	guard := port.EnterGuard()
	cur := task.Current()
	kerrors.Assert(m.owner == cur, "mutex release attempted by non-owner %s", cur.Name())

	m.recursion--
	if m.recursion > 0 {
		guard.Exit()
		return
	}

	cur.RestorePriority()

	next := task.ResumeFrontLocked(&m.waiting)
	m.cnt++
	if next != nil {
		m.owner = next
		m.recursion = 1
	} else {
		m.owner = nil
	}

	higher := task.AnyHigherLocked(cur)
	guard.Exit()
	if higher {
		task.Yield()
	}
}

// Guard is a scoped acquisition: Lock acquires on construction, Unlock
// releases. Application code should pair Lock with a deferred Unlock, the
// Go rendering of the original's constructor/destructor MutexGuard_t (spec
// §4.3 "Guard object").
type Guard struct {
	m *PriorityMutex
}

// Lock acquires m and returns a Guard whose Unlock releases it. Intended
// use is `defer mtx.Lock().Unlock()`.
func (m *PriorityMutex) Lock() *Guard {
	m.Acquire()
	return &Guard{m: m}
}

// Unlock releases the mutex the guard was constructed from.
func (g *Guard) Unlock() {
	g.m.Release()
}

// ValueMutex wraps a raw value of type T behind a PriorityMutex, handing
// back access only while held (spec §9 supplemented feature, ported from
// _examples/original_source/kernel/sync.hpp's Mutex_t<T> / MutexGuard_t).
type ValueMutex[T any] struct {
	mu  PriorityMutex
	raw T
}

// NewValueMutex wraps v behind a fresh, unheld mutex.
func NewValueMutex[T any](v T) *ValueMutex[T] {
	return &ValueMutex[T]{mu: PriorityMutex{cnt: 1}, raw: v}
}

// ValueGuard is the scoped accessor returned by ValueMutex.Lock.
type ValueGuard[T any] struct {
	m *ValueMutex[T]
}

// Lock acquires the mutex and returns a guard exposing Get/Set.
func (vm *ValueMutex[T]) Lock() *ValueGuard[T] {
	vm.mu.Acquire()
	return &ValueGuard[T]{m: vm}
}

// Get returns the protected value. Must only be called while held.
func (g *ValueGuard[T]) Get() T { return g.m.raw }

// Set replaces the protected value. Must only be called while held.
func (g *ValueGuard[T]) Set(v T) { g.m.raw = v }

// Unlock releases the mutex.
func (g *ValueGuard[T]) Unlock() { g.m.mu.Release() }
