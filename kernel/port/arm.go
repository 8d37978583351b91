//go:build tinygo && arm

package port

import "unsafe"

// curTCB is read by switch_arm.s at a fixed offset; the task package updates
// it every time it changes the running TCB. Its layout must match
// SPOointer's offset assumption documented in kernel/task/tcb.go.
var curTCB unsafe.Pointer

func init() {
	Use(armIntrinsics{})
}

// SetCurrentTCB is called by kernel/task whenever the current-task pointer
// changes, so the assembly stubs in switch_arm.s always dereference the
// live TCB.
func SetCurrentTCB(p unsafe.Pointer) { curTCB = p }

// Boot starts the first task (spec §4.1 "Start the first task"): the
// supervisor-call entry point, invoked once after kernel/task.Start has
// picked the first TCB and called SetCurrentTCB.
func Boot() { startFirstTask() }

// armIntrinsics is the real Cortex-M4 backend: these three hooks are wired
// to the SVC, PendSV and SysTick vector table entries by the linker script
// (not shown; out of this repository's scope per spec §1). The actual
// register save/restore sequences live in switch_arm.s, transliterated
// directly from _examples/original_source/arch/cortex_m4.hpp's
// ARCH_INIT_ASM / ARCH_CONTEXT_SWITCH_ASM.
type armIntrinsics struct{}

func (armIntrinsics) TriggerSwitch() { triggerPendSV() }
func (armIntrinsics) WFI()           { wfi() }
func (armIntrinsics) Reset()         { systemReset() }

// Implemented in switch_arm.s.

//go:noescape
func triggerPendSV()

//go:noescape
func wfi()

//go:noescape
func systemReset()

//go:noescape
func startFirstTask()

//go:noescape
func contextSwitch()
