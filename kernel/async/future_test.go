package async

import (
	"testing"

	"mos/kernel/task"
)

func TestFutureValueResolvesImmediately(t *testing.T) {
	var got int
	Value(42).Run(func(v int) { got = v })
	if got != 42 {
		t.Fatalf("Run() produced %d, want 42", got)
	}
}

func TestFutureAndThenChainsSynchronously(t *testing.T) {
	a := Value(3)
	b := AndThen(a, func(v int) Future[int] { return Value(v + 4) })

	var got int
	b.Run(func(v int) { got = v })
	if got != 7 {
		t.Fatalf("Run() produced %d, want 7", got)
	}
}

func TestFutureDetachDoesNotPanic(t *testing.T) {
	Value(1).Detach()
}

func TestFutureDelayResolvesNoEarlierThanDeadline(t *testing.T) {
	const delayTicks = 5
	start := task.Ticks()
	var resolved bool

	Delay(delayTicks).Run(func(struct{}) { resolved = true })
	exec.poll()
	if resolved {
		t.Fatalf("delay resolved before its deadline")
	}

	for task.Ticks()-start < delayTicks {
		task.Tick()
	}
	exec.poll()
	if !resolved {
		t.Fatalf("delay never resolved after its deadline")
	}
}

func TestFutureCoroutineChainResolvesThroughTwoSuspensionPoints(t *testing.T) {
	const delayTicks = 5
	start := task.Ticks()

	inner := AndThen(Delay(delayTicks), func(struct{}) Future[int] { return Value(7) })
	outer := AndThen(inner, func(v int) Future[int] { return Value(v + 1) })

	var got int
	var resolved bool
	outer.Run(func(v int) { got, resolved = v, true })
	if resolved {
		t.Fatalf("chain resolved before the delay's deadline")
	}

	for task.Ticks()-start < delayTicks {
		task.Tick()
	}
	exec.poll()
	if !resolved {
		t.Fatalf("chain never resolved")
	}
	if got != 8 {
		t.Fatalf("chain resolved to %d, want 8", got)
	}
}
