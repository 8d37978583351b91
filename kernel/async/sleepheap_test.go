package async

import (
	"testing"

	"mos/config"
)

func TestSleeperHeapDrainsInWakeOrder(t *testing.T) {
	var h sleeperHeap
	var order []uint32
	ticks := []uint32{30, 10, 20}
	for _, tk := range ticks {
		tk := tk
		h.insert(tk, NewLambda(func() { order = append(order, tk) }))
	}

	for _, l := range h.drainDue(30) {
		l.Invoke()
	}
	want := []uint32{10, 20, 30}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSleeperHeapDrainDueLeavesLaterEntries(t *testing.T) {
	var h sleeperHeap
	h.insert(5, NewLambda(func() {}))
	h.insert(15, NewLambda(func() {}))

	due := h.drainDue(10)
	if len(due) != 1 {
		t.Fatalf("drainDue(10) returned %d entries, want 1", len(due))
	}
	due = h.drainDue(20)
	if len(due) != 1 {
		t.Fatalf("drainDue(20) returned %d entries, want 1", len(due))
	}
}

// TestSleeperHeapToleratesTickWraparound checks that a wake tick scheduled
// just after a 32-bit tick counter wraps is still ordered correctly against
// a wake tick just before the wrap, per the signed-difference comparison
// spec §4.4 specifies.
func TestSleeperHeapToleratesTickWraparound(t *testing.T) {
	var h sleeperHeap
	before := uint32(0xFFFFFFF0)
	after := uint32(0x00000010) // wrapped past the 32-bit boundary

	var order []string
	h.insert(after, NewLambda(func() { order = append(order, "after") }))
	h.insert(before, NewLambda(func() { order = append(order, "before") }))

	for _, l := range h.drainDue(after) {
		l.Invoke()
	}
	if len(order) != 2 || order[0] != "before" || order[1] != "after" {
		t.Fatalf("order = %v, want [before after]", order)
	}
}

func TestSleeperHeapSaturationIsFatal(t *testing.T) {
	var kind any
	restore := installTestFatalHandler(&kind)
	defer restore()

	var h sleeperHeap
	for i := 0; i < config.AsyncSleeperCap; i++ {
		h.insert(uint32(i), NewLambda(func() {}))
	}
	h.insert(9999, NewLambda(func() {}))

	if kind == nil {
		t.Fatalf("expected a fatal error when the sleeper heap is saturated")
	}
}
