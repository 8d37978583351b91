// Package ksync implements the kernel's synchronization primitives (spec
// §4.3): a counting semaphore, a non-recursive lock, a priority-inheritance
// mutex with its scoped guard, a condition variable and a reusable barrier.
// All of them are layered on kernel/task's block/resume primitives, and
// every internal field is mutated only under kernel/port's IRQGuard — this
// package never imports sync, matching the teacher's IrqGuard_t discipline
// in _examples/original_source/kernel/sync.hpp.
package ksync

import (
	"mos/kernel/kerrors"
	"mos/kernel/port"
	"mos/kernel/task"
)

// Semaphore is a counting semaphore (spec §4.3 "Semaphore"). A negative
// count records the number of tasks currently blocked in Down.
type Semaphore struct {
	waiting task.List
	cnt     int32
}

// NewSemaphore creates a semaphore with the given initial count.
func NewSemaphore(initial int32) *Semaphore {
	return &Semaphore{cnt: initial}
}

// Count returns the current count (for diagnostics/tests only).
func (s *Semaphore) Count() int32 {
	guard := port.EnterGuard()
	defer guard.Exit()
	return s.cnt
}

// Down is the `P` operation: decrement count; if now negative, block the
// caller onto the wait list and yield.
func (s *Semaphore) Down() {
	kerrors.Assert(port.IRQEnabled(), "semaphore down: interrupts already disabled")
	guard := port.EnterGuard()
	s.cnt--
	if s.cnt < 0 {
		task.BlockToLocked(task.Current(), &s.waiting)
		guard.Exit()
		task.Yield()
		return
	}
	guard.Exit()
}

// Up is the `V` operation: if count was negative, move the highest-priority
// waiter to ready; increment count; yield if a higher-priority task is now
// ready.
func (s *Semaphore) Up() {
	kerrors.Assert(port.IRQEnabled(), "semaphore up: interrupts already disabled")
	guard := port.EnterGuard()
	s.upLocked()
	higher := task.AnyHigherLocked(task.Current())
	guard.Exit()
	if higher {
		task.Yield()
	}
}

// UpFromISR is Up without the trailing yield: the deferred-switch interrupt
// is raised by the tick path instead, so an ISR caller never yields
// directly (spec §4.3 "up_from_isr").
func (s *Semaphore) UpFromISR() {
	guard := port.EnterGuard()
	s.upLocked()
	guard.Exit()
}

func (s *Semaphore) upLocked() {
	if s.cnt < 0 {
		task.ResumeFrontLocked(&s.waiting)
	}
	s.cnt++
}
