// Package port is the kernel's only contact point with hardware (spec §4.1):
// three handler hooks and six intrinsics. It is split by build tag exactly
// the way the teacher splits hal/host_*.go from hal/tinygo_*.go — a host
// simulation usable under `go test`, and a real Cortex-M4/TinyGo backend
// (never compiled in this exercise; see switch_arm.s).
//
// The IRQGuard here is the kernel's only mutual-exclusion primitive (spec
// §5): every kernel-internal data structure above this package — ready
// list, wait lists, sleeping list, sleeper heap, double buffers, ownership
// fields — is mutated only while a Guard is held. On real hardware this
// guard is free (a single core, interrupts off, nothing else can run). The
// host build simulates that exclusivity across goroutines standing in for
// the hardware's single thread of control (the running task and the
// simulated SysTick/ISR goroutines) with a plain mutex; kernel/task and
// kernel/ksync never import sync themselves.
package port

// Intrinsics covers the three hardware primitives that are not naturally
// expressed as a scoped guard: request a deferred context switch, halt
// until the next interrupt, and reset. DisableIRQ/EnableIRQ/TestIRQ are
// covered by Guard and IRQEnabled below, since every call site in this
// kernel only ever uses them in the disable/do-work/enable pattern a scoped
// guard already captures.
type Intrinsics interface {
	// TriggerSwitch raises the deferred-switch interrupt (PendSV on
	// Cortex-M). It runs at the lowest exception priority, so it only fires
	// once every higher-priority handler has returned.
	TriggerSwitch()
	// WFI halts the core until the next interrupt (MOS_WFI).
	WFI()
	// Reset performs a system reset (MOS_REBOOT). Never returns on real
	// hardware; the host backend exits the process.
	Reset()
}

var current Intrinsics = noopIntrinsics{}

// Use installs the active Intrinsics implementation. Host and tinygo+arm
// backends each call this from an init().
func Use(impl Intrinsics) {
	if impl == nil {
		impl = noopIntrinsics{}
	}
	current = impl
}

// TriggerSwitch requests a deferred context switch.
func TriggerSwitch() { current.TriggerSwitch() }

// WFI halts the core until the next interrupt.
func WFI() { current.WFI() }

// Reset performs a system reset.
func Reset() { current.Reset() }

type noopIntrinsics struct{}

func (noopIntrinsics) TriggerSwitch() {}
func (noopIntrinsics) WFI()           {}
func (noopIntrinsics) Reset()         {}
