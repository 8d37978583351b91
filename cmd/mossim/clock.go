package main

import (
	"time"

	"mos/kernel/task"
)

// tickInterval is the wall-clock period standing in for the SysTick
// interrupt's real hardware period. Nothing about the scenarios depends on
// its exact value, only that it keeps advancing while tasks run; see
// SPEC_FULL.md "Simulation model".
const tickInterval = 200 * time.Microsecond

// startClock launches the host stand-in for the SysTick ISR: a plain
// goroutine, not a task, calling task.Tick() on an interval for as long as
// the returned stop function has not been called. It runs for the whole CLI
// invocation rather than per scenario, since kernel/task's tick counter is
// process-global and wrapping-safe (spec §4.4 "Comparison uses signed
// difference") and every scenario tolerates ticks that happened before it
// was set up.
func startClock() (stop func()) {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				task.Tick()
			}
		}
	}()
	return func() { close(done) }
}
