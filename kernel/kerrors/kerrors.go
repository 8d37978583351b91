// Package kerrors renders the error kinds of spec §7 as typed values and
// implements the kernel's single assertion mechanism: a process-wide,
// replaceable fatal handler, in the style of the teacher's
// sparkos/kernel/panic.go (PanicInfo, SetPanicHandler, panicOnce).
package kerrors

import (
	"fmt"
	"sync/atomic"
)

// Kind identifies one of the error kinds the core recognises.
type Kind int

const (
	// PoolExhausted: no free stack page. Recovered locally (returns nil).
	PoolExhausted Kind = iota
	// TooManyTasks: the live task count already equals the configured max.
	// Recovered locally (returns nil).
	TooManyTasks
	// QueueFull: an async ready buffer or sleeper heap is saturated. Fatal.
	QueueFull
	// FrameTooLarge: a coroutine frame exceeds the configured block size. Fatal.
	FrameTooLarge
	// BadCaller: release by non-owner, recursive acquire of a non-recursive
	// lock, or yield with interrupts disabled. Fatal.
	BadCaller
	// NotFound: a task name lookup found no match.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case PoolExhausted:
		return "pool exhausted"
	case TooManyTasks:
		return "too many tasks"
	case QueueFull:
		return "queue full"
	case FrameTooLarge:
		return "frame too large"
	case BadCaller:
		return "bad caller"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Error is the kernel's error type: a Kind plus a human-readable detail.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

// New builds an *Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// fatalHandler, when set, is invoked on every fatal error; unlike panicOnce
// in the teacher's panic.go, nothing limits it to the first one. The
// default halts execution via panic, as §7 requires; a release build may
// install a handler that only logs, downgrading the abort.
var fatalHandler atomic.Value // func(*Error)

// SetFatalHandler installs a process-wide handler for fatal kernel errors
// (QueueFull, FrameTooLarge, BadCaller). It must not itself panic or block.
// Installing nil restores the default (panicking) behaviour.
func SetFatalHandler(fn func(*Error)) {
	if fn == nil {
		fatalHandler.Store((func(*Error))(nil))
		return
	}
	fatalHandler.Store(fn)
}

// Fatal raises a fatal kernel error: PoolExhausted and TooManyTasks must
// never be passed here — those are recovered locally by the caller.
func Fatal(kind Kind, format string, args ...any) {
	err := New(kind, format, args...)
	if v := fatalHandler.Load(); v != nil {
		if fn, ok := v.(func(*Error)); ok && fn != nil {
			fn(err)
			return
		}
	}
	panic(err)
}

// Assert raises a BadCaller fatal error if cond is false. This is the
// kernel's one invariant-checking primitive (e.g. "yielding with interrupts
// disabled").
func Assert(cond bool, format string, args ...any) {
	if !cond {
		Fatal(BadCaller, format, args...)
	}
}
