package async

import (
	"unsafe"

	"mos/config"
)

// Future is a lazy computation that eventually produces a value of type T
// (spec §4.4 "Coroutine machinery"). Nothing runs until Run is called —
// the rendering of "Coroutines are lazy: they suspend on entry" — and a
// Future's internal continuation plays the role of the original's promise
// successor handle, without a real suspended call stack to resume.
type Future[T any] struct {
	start func(resume func(T))
}

// NewFuture wraps a raw start function — invoked once with the resolver
// that must eventually be called with the computed value — as a Future.
// This is the Go rendering of spec §4.4's callback awaiter: "its suspend
// operation invokes a user-supplied function with a resumer; when the
// resumer is called, the awaiter stores the value and resumes the
// coroutine."
func NewFuture[T any](start func(resume func(T))) Future[T] {
	if !config.AsyncUsePool {
		return Future[T]{start: start}
	}
	// The pooled path reserves one Frame to hold the promise's value slot
	// (spec §3 "a storage slot for the returned value") for the lifetime of
	// the suspension; a resolved type too large to fit a Frame is the exact
	// FrameTooLarge condition spec §7 makes fatal, so check it up front
	// rather than discovering it only once Alloc's own capacity check fires.
	var zero T
	CheckFrameSize(int(unsafe.Sizeof(zero)))
	return Future[T]{start: func(resume func(T)) {
		idx := framePool.Alloc()
		start(func(v T) {
			framePool.Release(idx)
			resume(v)
		})
	}}
}

// Value returns an already-resolved Future: the rendering of a coroutine
// whose initial suspension point is also its final one.
func Value[T any](v T) Future[T] {
	return NewFuture(func(resume func(T)) { resume(v) })
}

// Run begins f's work, eventually invoking resume with the computed value.
// A Future is meant to run at most once, exactly like resuming a
// std::coroutine_handle past its final suspension is undefined.
func (f Future[T]) Run(resume func(T)) {
	f.start(resume)
}

// Detach begins f's work without a caller waiting on the result (spec
// §4.4: "Detaching a coroutine resumes it once and releases ownership so
// destruction will not free it while a callback still holds it") — here,
// simply discarding the resolved value.
func (f Future[T]) Detach() {
	f.Run(func(T) {})
}

// AndThen chains f's result through k, producing a Future of k's result
// type. This is the Go rendering of "Awaiting a coroutine handle H within
// another coroutine C links H's successor to C": k's continuation, not an
// explicit handle, is the successor link.
func AndThen[T, U any](f Future[T], k func(T) Future[U]) Future[U] {
	return NewFuture(func(resume func(U)) {
		f.Run(func(v T) {
			k(v).Run(resume)
		})
	})
}

// Delay returns a Future that resolves after at least ticks ticks have
// elapsed, built from the executor's sleeper heap and a callback awaiter
// (spec §4.4: "The primitive delay(ticks) is built from this awaiter and
// delay_ms").
func Delay(ticks uint32) Future[struct{}] {
	return NewFuture(func(resume func(struct{})) {
		DelayMs(ticks, func() { resume(struct{}{}) })
	})
}
