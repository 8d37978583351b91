// Package async is the cooperative scheduling layer built on top of tasks
// (spec §4.4): a single low-priority task drains a ready double-buffer and
// a min-heap of timed sleepers, and a lazy Future/Promise-style machinery
// lets application code chain deferred callbacks without allocating a full
// task stack per continuation.
//
// Go has no compiler-supplied stackless coroutine frame and no portable way
// to suspend an arbitrary function mid-instruction (spec §9: "Map to the
// target language's equivalent... Where the language lacks such support,
// express the same behaviour as explicit state-machine objects with
// poll/resume methods"). Every construct in this package is therefore an
// explicit continuation object built from ordinary closures, grounded in
// _examples/other_examples/b97tsk-async__coroutine.go's task/resume idiom.
package async

// Lambda is a fixed-size, type-erased callable (spec §3 "Executor state",
// §4.4 "Lambda type"). The original template enforces at compile time that
// the captured object fits config.AsyncLambdaSize bytes inline; Go's func
// values are always a single word plus a heap-allocated closure, so there
// is no inline buffer to size here — config.AsyncLambdaSize remains the
// documented capture budget a caller should respect; nothing in this
// package checks it.
type Lambda struct {
	fn func()
}

// NewLambda wraps fn as a Lambda.
func NewLambda(fn func()) Lambda {
	return Lambda{fn: fn}
}

// Invoke calls the wrapped function exactly once. Invoking a zero-value
// Lambda (never constructed, or already invoked and discarded) is a no-op.
func (l Lambda) Invoke() {
	if l.fn != nil {
		l.fn()
	}
}

// IsZero reports whether l holds no callable.
func (l Lambda) IsZero() bool { return l.fn == nil }
