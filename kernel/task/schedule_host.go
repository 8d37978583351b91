//go:build !tinygo

package task

import "mos/kernel/port"

func init() { backend = hostBackend{} }

// hostBackend renders the port layer's asynchronous context switch as a
// synchronous goroutine hand-off (spec §9 "Map to the target language's
// equivalent"; SPEC_FULL.md "Simulation model"). Each task body runs on its
// own goroutine, parked on a per-TCB channel except while it is the
// scheduler's current pick; "switching" means signalling the next TCB's
// channel and, unless the outgoing task has just terminated, parking on its
// own channel until chosen again. The goroutine plays the role the
// hardware stack plays on real Cortex-M4; the channel plays the role of
// PendSV.
type hostBackend struct{}

// spawn starts tcb's body on its own goroutine, parked until the scheduler
// first picks it.
func (hostBackend) spawn(t *TCB) {
	go func() {
		<-t.resumeCh
		t.entry(t.arg)
		Terminate(t)
		close(t.done)
	}()
}

// start hands the baton to whichever task nextTCB selects first. The
// caller (application main / cmd/mossim) is not itself a task and does not
// park; it goes on to drive ticks and call PollPreempt-equivalents, or
// simply waits on the first task's done channel.
func (hostBackend) start() {
	guard := port.EnterGuard()
	next := nextTCB()
	guard.Exit()
	if next != nil {
		next.resumeCh <- struct{}{}
	}
}

// reschedule picks the next task to run and hands it the baton. If self is
// still runnable (Ready or Blocked, not Terminated), it parks on its own
// channel until handed the baton again — the synchronous stand-in for
// "the next instruction after yield() runs once rescheduled."
func (hostBackend) reschedule(self *TCB) {
	guard := port.EnterGuard()
	next := nextTCB()
	guard.Exit()

	if next == self {
		return
	}
	if next != nil {
		next.resumeCh <- struct{}{}
	}
	if self != nil && self.status != Terminated {
		<-self.resumeCh
	}
}

// pollPreempt gives a higher-priority ready task (or a same-band peer, once
// self's slice is exhausted) the chance to run, exactly as if self had
// called Yield — but only when one is actually warranted, so a tight loop
// that calls this every iteration does not thrash.
func (hostBackend) pollPreempt(self *TCB) {
	guard := port.EnterGuard()
	needSwitch := self != nil && (AnyHigherLocked(self) || (self.slice <= 0 && readyList.Front() != nil && readyList.Front() != self && readyList.Front().curPri == self.curPri))
	guard.Exit()
	if needSwitch {
		reschedule(self)
	}
}
