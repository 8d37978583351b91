package async

import (
	"mos/config"
	"mos/kernel/kerrors"
	"mos/kernel/port"
)

// Frame is one fixed-size block of the optional coroutine-frame pool (spec
// §4.4 "Optional coroutine-frame pool"). Go's garbage-collected closures
// don't literally live inside a Frame the way a C++ coroutine frame would
// (see the package doc); FramePool is wired in as grounded
// capacity-accounting infrastructure instead: with config.AsyncUsePool set,
// every Future charges one frame when it is run and releases it once resolved,
// so the pool's saturation assertion is still exercised under load.
type Frame [config.AsyncFrameSize]byte

// FramePool is a fixed-capacity allocator of Frame blocks. Allocation and
// release are interrupt-disabled, matching
// _examples/original_source/kernel/alloc.hpp's palloc/free discipline.
type FramePool struct {
	used [config.AsyncPoolCap]bool
}

var framePool FramePool

// Alloc reserves one frame and returns its index. Fatal QueueFull if the
// pool is exhausted (spec §7: exceeding pool capacity is a fatal
// assertion).
func (p *FramePool) Alloc() int {
	guard := port.EnterGuard()
	defer guard.Exit()
	for i := range p.used {
		if !p.used[i] {
			p.used[i] = true
			return i
		}
	}
	kerrors.Fatal(kerrors.QueueFull, "async: coroutine frame pool exhausted at %d frames", config.AsyncPoolCap)
	return -1
}

// Release returns frame i to the pool.
func (p *FramePool) Release(i int) {
	if i < 0 {
		return
	}
	guard := port.EnterGuard()
	defer guard.Exit()
	p.used[i] = false
}

// CheckFrameSize asserts a captured payload of n bytes fits one frame (spec
// §7 "FrameTooLarge": exceeding the configured block size is a fatal
// assertion). Called from NewFuture's pooled path to check a resolved
// value's size against the block size before ever calling Alloc.
func CheckFrameSize(n int) {
	if n > len(Frame{}) {
		kerrors.Fatal(kerrors.FrameTooLarge, "async: coroutine frame requires %d bytes, pool blocks are %d", n, len(Frame{}))
	}
}
