package port

import "sync"

// irqMu stands in for the hardware PRIMASK: held for the duration of every
// kernel critical section. A real Cortex-M4 pays nothing for this (a single
// core with interrupts off already excludes every other context); the host
// build pays a real mutex to preserve the same exclusivity across the
// goroutines that stand in for the running task and the simulated SysTick
// and other "ISR" callers (up_from_isr and friends).
var irqMu sync.Mutex

// Guard is a scoped critical section: acquired on construction, released by
// Exit. Every kernel entry point in task/ksync/async takes exactly one guard
// over its own critical section; internal "raw" helpers assume the caller
// already holds one and never take their own — the same discipline the
// original implementation's IrqGuard_t / *_raw helper split uses — so guards
// never actually nest in this codebase even though, on real hardware,
// disable/enable naturally saves and restores the prior PRIMASK state.
type Guard struct{}

// EnterGuard disables interrupts and returns a Guard. Call Exit to restore.
func EnterGuard() Guard {
	irqMu.Lock()
	return Guard{}
}

// Exit re-enables interrupts, ending the critical section.
func (Guard) Exit() {
	irqMu.Unlock()
}

// IRQEnabled reports whether interrupts are currently enabled, i.e. whether
// no guard is presently held anywhere. Used by primitives that must assert
// they were not called from inside an existing critical section (spec
// §4.3: "Both regular operations assert that interrupts are enabled on
// entry").
func IRQEnabled() bool {
	if irqMu.TryLock() {
		irqMu.Unlock()
		return true
	}
	return false
}
