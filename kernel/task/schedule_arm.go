//go:build tinygo && arm

package task

import (
	"unsafe"

	"mos/kernel/port"
)

func init() { backend = armBackend{} }

// armBackend is the real Cortex-M4 path: switches are performed by
// switch_arm.s, which calls nextTCB directly from contextSwitch once PendSV
// fires. Go code here only has to ask for a switch (or, at boot, hand off
// to the first task) and fall through — from a task's point of view, the
// next line runs only once it has been rescheduled, indistinguishable from
// an interrupted normal return (spec §4.1).
type armBackend struct{}

// spawn is empty on this backend: it does not build the initial stack frame
// that startFirstTask/contextSwitch in switch_arm.s restore, so t.sp stays
// zero and no context restore reaches t.entry(t.arg). This backend is never
// compiled here (no ARM toolchain, no tinygo+arm host).
func (armBackend) spawn(t *TCB) {
	_ = t
}

// start hands the current-task pointer to the first ready TCB and issues
// the supervisor call that starts it.
func (armBackend) start() {
	t := readyList.Front()
	current = t
	if t != nil {
		t.status = Running
		port.SetCurrentTCB(unsafe.Pointer(t))
	}
	port.Boot()
}

// reschedule requests the deferred-switch interrupt. nextTCB runs inside
// contextSwitch, not here; self is unused on this backend (the assembly has
// no Go-level caller to return control to synchronously).
func (armBackend) reschedule(self *TCB) {
	_ = self
	port.TriggerSwitch()
}

// pollPreempt is a no-op: SysTick and PendSV already deliver preemption
// asynchronously on real hardware.
func (armBackend) pollPreempt(self *TCB) {
	_ = self
}
