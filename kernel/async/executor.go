package async

import (
	"sync"

	"mos/config"
	"mos/kernel/klog"
	"mos/kernel/task"
)

// Executor drains the ready double-buffer and the sleeper heap in a loop
// (spec §4.4 "Shape"). There is exactly one Executor per process, spawned
// lazily the first time it is touched; application code uses the
// package-level Post/DelayMs rather than constructing one, mirroring the
// original's Executor::get_executor() singleton.
type Executor struct {
	ready    readyQueue
	sleepers sleeperHeap
}

var (
	exec       Executor
	ensureOnce sync.Once
)

// Ensure spawns the executor's task at config.PriMin the first time it is
// called, and is idempotent and safe to call from any task
// (_examples/original_source/kernel/async.hpp's get_executor(): "Static
// variable to indicate if the waker task has been spawned", ported as an
// explicit sync.Once rather than a function-local static).
func Ensure() *Executor {
	ensureOnce.Do(func() {
		_, err := task.Create("async/exec", task.Priority(config.PriMin), func(any) {
			for {
				exec.poll()
				task.Yield()
			}
		}, nil)
		if err != nil {
			klog.Logf("async: failed to spawn executor task: %v", err)
		}
	})
	return &exec
}

// poll drains due sleepers into the ready buffer, then drains and invokes
// the ready buffer exactly once (spec §4.4 "poll": "Poll the executor for
// once").
func (e *Executor) poll() {
	e.cleanSleepers()
	for _, l := range e.ready.drain() {
		l.Invoke()
	}
}

func (e *Executor) cleanSleepers() {
	now := task.Ticks()
	for _, l := range e.sleepers.drainDue(now) {
		e.ready.post(l)
	}
}

// Post enqueues fn for invocation on the executor's next drain (spec §4.4
// "post"), spawning the executor task first if needed.
func Post(fn func()) {
	Ensure().ready.post(NewLambda(fn))
}

// DelayMs schedules fn to run once at least ms ticks have elapsed since now
// (spec §4.4 "delay_ms"). The name mirrors the original's tick-denominated
// timer even though, absent a real wall clock, this port's "tick" is
// whatever the caller's kernel/task.Tick driver defines it to be.
func DelayMs(ms uint32, fn func()) {
	e := Ensure()
	e.sleepers.insert(task.Ticks()+ms, NewLambda(fn))
}
