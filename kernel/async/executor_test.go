package async

import (
	"testing"

	"mos/kernel/task"
)

func TestExecutorPostInvokesOnNextPoll(t *testing.T) {
	called := false
	Post(func() { called = true })
	exec.poll()
	if !called {
		t.Fatalf("posted lambda never ran after poll")
	}
}

func TestExecutorDelayFiresOnlyAfterDeadline(t *testing.T) {
	const delayTicks = 5
	fired := false
	start := task.Ticks()

	DelayMs(delayTicks, func() { fired = true })
	exec.poll()
	if fired {
		t.Fatalf("callback fired before its deadline")
	}

	for task.Ticks()-start < delayTicks {
		task.Tick()
	}
	exec.poll()
	if !fired {
		t.Fatalf("callback never fired after its deadline")
	}
}
