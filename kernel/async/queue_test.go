package async

import (
	"testing"

	"mos/config"
)

func TestReadyQueuePostDrainFIFO(t *testing.T) {
	var q readyQueue
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		q.post(NewLambda(func() { order = append(order, i) }))
	}

	drained := q.drain()
	if len(drained) != 5 {
		t.Fatalf("drain() returned %d entries, want 5", len(drained))
	}
	for _, l := range drained {
		l.Invoke()
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want 0..4 in order", order)
		}
	}
}

func TestReadyQueuePostDuringDrainLandsInNextBuffer(t *testing.T) {
	var q readyQueue
	var secondRan bool

	q.post(NewLambda(func() {}))
	q.post(NewLambda(func() {
		// Posting while draining must not corrupt the slice being
		// iterated; it lands in the buffer drain flips to next.
		q.post(NewLambda(func() { secondRan = true }))
	}))

	first := q.drain()
	if len(first) != 2 {
		t.Fatalf("first drain() = %d entries, want 2", len(first))
	}
	for _, l := range first {
		l.Invoke()
	}

	second := q.drain()
	if len(second) != 1 {
		t.Fatalf("second drain() = %d entries, want 1", len(second))
	}
	second[0].Invoke()
	if !secondRan {
		t.Fatalf("lambda posted during drain never ran")
	}
}

func TestReadyQueueSaturationIsFatal(t *testing.T) {
	var kind any
	restore := installTestFatalHandler(&kind)
	defer restore()

	var q readyQueue
	for i := 0; i < config.AsyncQueueCap; i++ {
		q.post(NewLambda(func() {}))
	}
	q.post(NewLambda(func() {}))

	if kind == nil {
		t.Fatalf("expected a fatal error when the ready queue is saturated")
	}
}
