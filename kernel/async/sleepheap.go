package async

import (
	"container/heap"

	"mos/config"
	"mos/kernel/kerrors"
	"mos/kernel/port"
)

// sleeperEntry pairs a deferred callable with its absolute wake-up tick
// (spec §3 "Executor state": "a min-heap keyed by wake-up tick of (tick,
// lambda) pairs").
type sleeperEntry struct {
	wake uint32
	fn   Lambda
}

type sleeperItems []sleeperEntry

func (h sleeperItems) Len() int            { return len(h) }
func (h sleeperItems) Less(i, j int) bool  { return tickBefore(h[i].wake, h[j].wake) }
func (h sleeperItems) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *sleeperItems) Push(x any)         { *h = append(*h, x.(sleeperEntry)) }
func (h *sleeperItems) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// tickBefore reports whether tick a is strictly before tick b, tolerating a
// bounded wrap-around of the 32-bit tick counter (spec §4.4: "Comparison
// uses signed difference").
func tickBefore(a, b uint32) bool { return int32(a-b) < 0 }

// sleeperHeap is the min-heap of timed callables keyed by absolute wake-up
// tick (spec §4.4 "Sleeper heap"). Its top always holds the minimum
// wake-up tick, per spec §8's invariant.
type sleeperHeap struct {
	items sleeperItems
}

// insert schedules fn to run once tick reaches wakeTick. Fatal QueueFull if
// the heap is saturated.
func (s *sleeperHeap) insert(wakeTick uint32, fn Lambda) {
	guard := port.EnterGuard()
	defer guard.Exit()
	if s.items.Len() >= config.AsyncSleeperCap {
		kerrors.Fatal(kerrors.QueueFull, "async: sleeper heap saturated at %d entries", config.AsyncSleeperCap)
		return
	}
	heap.Push(&s.items, sleeperEntry{wake: wakeTick, fn: fn})
}

// drainDue pops every entry whose wake-up tick is <= now, earliest first,
// and returns their lambdas (spec §4.4 "clean_sleepers").
func (s *sleeperHeap) drainDue(now uint32) []Lambda {
	guard := port.EnterGuard()
	defer guard.Exit()
	var due []Lambda
	for s.items.Len() > 0 && !tickBefore(now, s.items[0].wake) {
		e := heap.Pop(&s.items).(sleeperEntry)
		due = append(due, e.fn)
	}
	return due
}
