// Package task implements the TCB data type, task lifecycle, the
// priority-preemptive scheduler with round-robin fallback, and the
// intrusive ready/blocked/sleeping lists shared across the kernel (spec §2
// items 2-3, §3, §4.2).
package task

import "mos/config"

// Status is one of the four lifecycle states a TCB can be in (spec §3).
type Status uint8

const (
	Ready Status = iota
	Running
	Blocked
	Terminated
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Blocked:
		return "BLOCKED"
	case Terminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Priority ranges 0 (highest) to config.PriMin (lowest), per spec §3.
type Priority int8

// EntryFunc is a task's top-level function, given the user argument it was
// created with.
type EntryFunc func(arg any)

// TCB is the kernel's per-task control block (spec §3). Unlike the original
// C++ implementation, which places the TCB inside the same raw memory page
// as its stack and marks a free page via a self-referential link trick, this
// port follows spec §9's suggested re-architecture: TCBs live in a
// fixed-capacity pool indexed by handle, and freedom is tracked by an
// explicit bitmap (see pool.go) rather than by inspecting link pointers.
// The stack page is still reserved per task (Page) to preserve the "a task
// owns exactly one pool slot" accounting the spec describes, even though a
// hosted Go task body runs on a goroutine's own (Go-managed) stack rather
// than executing out of Page directly.
type TCB struct {
	// sp is the field the port layer's assembly reads/writes on real
	// hardware (spec: "the sole field the port layer reads/writes at a
	// fixed offset"). It is unused on the host backend, which hands off
	// between goroutines instead of switching stack pointers; see
	// SPEC_FULL.md "Simulation model".
	sp uintptr

	page *Page

	name  [config.NameSize]byte
	entry EntryFunc
	arg   any

	staticPri Priority
	curPri    Priority

	status Status

	slice    int32  // remaining time-slice ticks
	wakeTick uint32 // valid only while a member of the sleeping list

	prev, next *TCB // intrusive list links; nil when not a member of any list
	list       *List // the List t currently belongs to, or nil

	id int // pool index, stable for the TCB's lifetime

	resumeCh chan struct{} // host backend: signalled to hand this TCB the baton
	done     chan struct{} // host backend: closed once the task body returns
}

// ID returns the TCB's stable pool handle.
func (t *TCB) ID() int { return t.id }

// Name returns the task's name as a string (trimmed at the first NUL).
func (t *TCB) Name() string {
	for i, b := range t.name {
		if b == 0 {
			return string(t.name[:i])
		}
	}
	return string(t.name[:])
}

func (t *TCB) setName(name string) {
	n := copy(t.name[:], name)
	for i := n; i < len(t.name); i++ {
		t.name[i] = 0
	}
}

// StaticPriority returns the task's original, un-boosted priority.
func (t *TCB) StaticPriority() Priority { return t.staticPri }

// Priority returns the task's current priority, possibly boosted by
// priority inheritance.
func (t *TCB) Priority() Priority { return t.curPri }

// StorePriority boosts (or restores) the task's current priority and, unless
// t is on the sleeping list, re-sorts t within the priority-ordered list it
// belongs to. Used by the priority-inheritance mutex, which holds the
// IRQGuard; exported for ksync.
func (t *TCB) StorePriority(p Priority) {
	t.curPri = p
	if l := t.list; l != nil && l != &sleepList {
		l.Remove(t)
		l.InsertByPriority(t)
	}
}

// RestorePriority resets the current priority back to the static one. It
// does not re-sort t within its list.
func (t *TCB) RestorePriority() { t.curPri = t.staticPri }

// Status returns the task's lifecycle status.
func (t *TCB) Status() Status { return t.status }
