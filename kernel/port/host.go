//go:build !tinygo

package port

import "os"

func init() {
	Use(hostIntrinsics{})
}

// hostIntrinsics backs the kernel on a workstation, for tests and the
// cmd/mossim simulator. TriggerSwitch and WFI are no-ops here: on the host,
// the task module performs the actual goroutine hand-off synchronously at
// each cooperative checkpoint (Yield, a blocking primitive, PollPreempt)
// rather than waiting for an asynchronous PendSV-equivalent, since portable
// Go has no hook to suspend an arbitrary running goroutine from the outside
// (see SPEC_FULL.md "Simulation model").
type hostIntrinsics struct{}

func (hostIntrinsics) TriggerSwitch() {}
func (hostIntrinsics) WFI()           {}
func (hostIntrinsics) Reset()         { os.Exit(0) }

// Boot is a no-op on the host backend: kernel/task's hostBackend.start
// performs the equivalent hand-off itself via goroutines and channels
// rather than a supervisor call.
func Boot() {}
