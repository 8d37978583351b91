package task

import (
	"mos/config"
	"mos/kernel/kerrors"
	"mos/kernel/klog"
	"mos/kernel/port"
)

// Kernel-global state (spec §9 "Global mutable state": "model them as a
// single kernel state aggregate protected uniformly by the interrupt
// guard; never split them"). Every field below is read or written only
// while a port.Guard is held.
var (
	tcbs      [config.MaxTasks]TCB
	pool      pagePool
	readyList List
	blockList List // the generic blocked list used by Block/Resume(tcb)
	sleepList List
	current   *TCB
	tickCount uint32
	liveCount int
)

// backend supplies the two things that differ between the host simulation
// and real Cortex-M4 hardware: how a newly created task actually starts
// running, and how giving up the CPU is realized. Exactly one of
// schedule_host.go (!tinygo) or schedule_arm.go (tinygo && arm) sets this
// from an init().
var backend schedulerBackend

type schedulerBackend interface {
	// spawn prepares a freshly created TCB to run; it does not itself admit
	// the TCB to the ready list (Create already did that).
	spawn(t *TCB)
	// start boots the scheduler: the caller never expects to resume as a
	// task afterwards (it is not one).
	start()
	// reschedule gives up the CPU on behalf of self (nil only at startup),
	// returning once self has been chosen to run again — or, if self just
	// terminated, not returning to this call at all.
	reschedule(self *TCB)
	// pollPreempt is the host backend's stand-in for instruction-granularity
	// preemption: a checkpoint application loops call periodically so a
	// higher-priority wakeup or slice exhaustion can actually take effect
	// without the loop itself calling Yield. A no-op on the arm backend,
	// where PendSV/SysTick deliver preemption asynchronously for real.
	pollPreempt(self *TCB)
}

// Create allocates a TCB and stack page, admits it to the ready list at the
// given priority, and arranges for entry(arg) to run (spec §4.2 "create").
// Fails with PoolExhausted if no stack page is free, or TooManyTasks if the
// live task count already equals config.MaxTasks.
func Create(name string, priority Priority, entry EntryFunc, arg any) (*TCB, error) {
	guard := port.EnterGuard()
	defer guard.Exit()

	if liveCount >= config.MaxTasks {
		return nil, kerrors.New(kerrors.TooManyTasks, "create %q: %d tasks already live", name, liveCount)
	}
	pg, idx, ok := pool.alloc()
	if !ok {
		return nil, kerrors.New(kerrors.PoolExhausted, "create %q: no free stack page", name)
	}

	t := &tcbs[idx]
	*t = TCB{
		page:      pg,
		staticPri: priority,
		curPri:    priority,
		status:    Ready,
		slice:     config.TimeSlice,
		id:        idx,
		resumeCh:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	t.setName(name)
	t.entry, t.arg = entry, arg
	liveCount++

	readyList.InsertByPriority(t)
	backend.spawn(t)
	return t, nil
}

// Terminate unlinks tcb from whatever list it is on, marks it TERMINATED,
// and returns its page to the pool (spec §4.2 "terminate"). A no-op on an
// already-terminated tcb. If tcb is the running task, this triggers a
// switch that never returns to the caller.
func Terminate(tcb *TCB) {
	guard := port.EnterGuard()
	if tcb.status == Terminated {
		guard.Exit()
		return
	}
	unlink(tcb)
	tcb.status = Terminated
	pool.release(tcb.id)
	liveCount--
	self := tcb == current
	guard.Exit()

	if self {
		reschedule(tcb)
	}
}

// Block moves tcb from its current list to the generic blocked list (spec
// §4.2 "block"). A no-op if tcb is already TERMINATED. If tcb is the
// running task, the caller does not return until tcb is resumed.
func Block(tcb *TCB) {
	guard := port.EnterGuard()
	if tcb.status == Terminated {
		guard.Exit()
		return
	}
	unlink(tcb)
	tcb.status = Blocked
	blockList.InsertByPriority(tcb)
	self := tcb == current
	guard.Exit()

	if self {
		reschedule(tcb)
	}
}

// Resume moves tcb from whatever list it is on back to the ready list (spec
// §4.2 "resume"). A no-op if tcb is already TERMINATED. Requests a switch
// if tcb's current priority is strictly higher than the running task's.
func Resume(tcb *TCB) {
	guard := port.EnterGuard()
	if tcb.status == Terminated {
		guard.Exit()
		return
	}
	unlink(tcb)
	tcb.status = Ready
	readyList.InsertByPriority(tcb)
	higher := current != nil && tcb.curPri < current.curPri
	self := current
	guard.Exit()

	if higher {
		reschedule(self)
	}
}

// BlockToLocked moves tcb from its current list into wait, in priority
// order, marking it BLOCKED (spec §4.2 "block_to"). The caller must already
// hold the IRQGuard; this never itself triggers a switch. Synchronization
// primitives (kernel/ksync) compose this with Yield after releasing their
// own guard, following the public-entry/"_raw" discipline documented on
// port.Guard.
func BlockToLocked(tcb *TCB, wait *List) {
	unlink(tcb)
	tcb.status = Blocked
	wait.InsertByPriority(tcb)
}

// ResumeFrontLocked removes the highest-priority waiter from wait and moves
// it to the ready list, returning it (or nil if wait is empty) (spec §4.2
// "resume(iter, wait_list)"). The caller must already hold the IRQGuard.
func ResumeFrontLocked(wait *List) *TCB {
	t := wait.Front()
	if t == nil {
		return nil
	}
	wait.Remove(t)
	t.status = Ready
	readyList.InsertByPriority(t)
	return t
}

// AnyHigherLocked reports whether some ready task has strictly higher
// current priority than t. The caller must already hold the IRQGuard.
func AnyHigherLocked(t *TCB) bool {
	h := readyList.Front()
	return h != nil && t != nil && h.curPri < t.curPri
}

// AnyHigher is the guarded form of AnyHigherLocked evaluated against the
// running task (spec §4.2 "any_higher").
func AnyHigher() bool {
	guard := port.EnterGuard()
	defer guard.Exit()
	return AnyHigherLocked(current)
}

// Yield requests a context switch and returns once the scheduler re-selects
// the caller (spec §4.2 "yield"). Asserts interrupts are enabled on entry;
// violating this is a BadCaller fatal error (spec §7).
func Yield() {
	kerrors.Assert(port.IRQEnabled(), "yield: interrupts already disabled")
	guard := port.EnterGuard()
	self := current
	guard.Exit()
	reschedule(self)
}

// Sleep blocks the calling task until at least the given number of ticks
// have elapsed (spec §3 "Wake-up tick", §4.2 tick handler). Not itemized
// among §4.2's named operations, but implied by the sleeping list's
// presence in the data model; every task needs a way onto it.
func Sleep(ticks uint32) {
	kerrors.Assert(port.IRQEnabled(), "sleep: interrupts already disabled")
	guard := port.EnterGuard()
	self := current
	unlink(self)
	self.status = Blocked
	self.wakeTick = tickCount + ticks
	sleepList.InsertByTick(self)
	guard.Exit()
	reschedule(self)
}

// Current returns the TCB of the task presently RUNNING, or nil before the
// first task has started.
func Current() *TCB { return current }

// Ticks returns the current tick count, as last updated by Tick. Used by
// kernel/async to key the sleeper heap on absolute wake-up ticks.
func Ticks() uint32 {
	guard := port.EnterGuard()
	defer guard.Exit()
	return tickCount
}

// Find looks up a live task by name (spec §4.2 "find").
func Find(name string) (*TCB, bool) {
	guard := port.EnterGuard()
	defer guard.Exit()
	for i := range tcbs {
		if !pool.isUsed(i) {
			continue
		}
		if tcbs[i].Name() == name {
			return &tcbs[i], true
		}
	}
	return nil, false
}

// PrintAll logs one line per live task (spec §4.2 "print_all").
func PrintAll() {
	guard := port.EnterGuard()
	defer guard.Exit()
	for i := range tcbs {
		if !pool.isUsed(i) {
			continue
		}
		t := &tcbs[i]
		klog.Logf("%-8s pri=%d/%d status=%s slice=%d", t.Name(), t.curPri, t.staticPri, t.status, t.slice)
	}
}

// Start boots the scheduler. Application code calls this once, after
// creating the initial set of tasks.
func Start() {
	backend.start()
}

// nextTCB is the scheduler decision function (spec §4.2 "Scheduler decision
// (next_tcb)"): always pick the ready list's head (highest priority, FIFO
// on ties). If that task is the one that was just running and its time
// slice is exhausted, rotate it to the tail of its own priority band and
// pick again, refreshing both tasks' slices. Updates the global
// current-task pointer itself, matching how the port layer's assembly
// calls this with no arguments (see switch_arm.s's "BL ·nextTCB(SB)") and
// expects curTCB already reflects the new choice on return.
func nextTCB() *TCB {
	prev := current
	picked := readyList.Front()
	if picked == nil {
		current = nil
		return nil
	}
	if picked == prev && picked.slice <= 0 {
		readyList.Remove(picked)
		picked.slice = config.TimeSlice
		readyList.InsertByPriority(picked)
		picked = readyList.Front()
		picked.slice = config.TimeSlice
	}
	if prev != nil && prev.status == Running {
		prev.status = Ready
	}
	picked.status = Running
	current = picked
	return picked
}

// Tick is the periodic tick handler (spec §4.2 "Tick handler"), invoked
// from the port layer's SysTick hook. It decrements the running task's
// remaining slice, wakes every sleeper whose wake-up tick has arrived, and
// reports whether an immediate preemption is warranted.
func Tick() bool {
	guard := port.EnterGuard()
	defer guard.Exit()

	tickCount++
	preempt := false

	if current != nil {
		current.slice--
	}

	for !sleepList.Empty() && !tickAfter(sleepList.Front().wakeTick, tickCount) {
		t := sleepList.Front()
		sleepList.Remove(t)
		t.status = Ready
		readyList.InsertByPriority(t)
		if current != nil && t.curPri < current.curPri {
			preempt = true
		}
	}

	if current != nil && current.slice <= 0 {
		if h := readyList.Front(); h != nil && h != current && h.curPri == current.curPri {
			preempt = true
		}
	}
	return preempt
}

// reschedule delegates to the active backend. self is the calling task's
// TCB, or nil if called before any task is current (startup only).
func reschedule(self *TCB) {
	backend.reschedule(self)
}

// PollPreempt is a cooperative checkpoint a tight, non-yielding task loop
// should call periodically (spec §9 "Map to the target language's
// equivalent"; see SPEC_FULL.md "Simulation model"). On the host backend it
// is where a pending higher-priority wakeup or slice exhaustion actually
// takes effect, since portable Go cannot suspend an arbitrary running
// goroutine from the outside. On real hardware this is a no-op: PendSV and
// SysTick already deliver preemption asynchronously.
func PollPreempt() {
	guard := port.EnterGuard()
	self := current
	guard.Exit()
	backend.pollPreempt(self)
}
