package ksync

import (
	"mos/kernel/port"
	"mos/kernel/task"
)

// CondVar is a condition variable used together with a PriorityMutex (spec
// §4.3 "Condition variable"). There is an unavoidable small window between
// Release and the caller actually blocking where a concurrent Notify could
// be missed; applications must retest their predicate on return, which is
// exactly what Wait's loop does.
type CondVar struct {
	waiting task.List
}

// HasWaiters reports whether any task is currently blocked in Wait.
func (c *CondVar) HasWaiters() bool {
	guard := port.EnterGuard()
	defer guard.Exit()
	return !c.waiting.Empty()
}

// Wait releases mtx, blocks until pred reports true (retesting on every
// wakeup to guard against the notify/block race), then reacquires mtx
// before returning.
func (c *CondVar) Wait(mtx *PriorityMutex, pred func() bool) {
	mtx.Release()
	for !pred() {
		c.blockSelf()
	}
	mtx.Acquire()
}

func (c *CondVar) blockSelf() {
	guard := port.EnterGuard()
	task.BlockToLocked(task.Current(), &c.waiting)
	guard.Exit()
	task.Yield()
}

// Notify wakes the highest-priority waiter, if any, then yields.
func (c *CondVar) Notify() {
	guard := port.EnterGuard()
	if !c.waiting.Empty() {
		task.ResumeFrontLocked(&c.waiting)
	}
	guard.Exit()
	task.Yield()
}

// NotifyAll wakes every waiter, highest priority first, then yields once.
func (c *CondVar) NotifyAll() {
	guard := port.EnterGuard()
	for !c.waiting.Empty() {
		task.ResumeFrontLocked(&c.waiting)
	}
	guard.Exit()
	task.Yield()
}
