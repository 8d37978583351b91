package ksync

import (
	"mos/kernel/kerrors"
	"mos/kernel/task"
)

// Lock is a thin non-recursive wrapper around a binary semaphore with an
// owner field (spec §4.3 "Lock"). Unlike PriorityMutex it never boosts
// priorities and never supports recursive acquisition.
type Lock struct {
	sema  Semaphore
	owner *task.TCB
}

// NewLock creates an unheld lock.
func NewLock() *Lock {
	return &Lock{sema: Semaphore{cnt: 1}}
}

// Acquire asserts the caller does not already hold the lock, then performs
// Down and records the caller as owner.
func (l *Lock) Acquire() {
	cur := task.Current()
	kerrors.Assert(l.owner != cur, "lock: %s attempted a recursive acquire of a non-recursive lock", cur.Name())
	l.sema.Down()
	l.owner = cur
}

// Release asserts the caller is the owner, clears the owner field, then
// performs Up. Clearing owner before Up ensures a newly woken waiter can
// never observe the lock as held by someone else.
func (l *Lock) Release() {
	cur := task.Current()
	kerrors.Assert(l.owner == cur, "lock: release attempted by non-owner %s", cur.Name())
	l.owner = nil
	l.sema.Up()
}
