package task

// List is an intrusive, doubly linked list of TCBs (spec §3 "Ready/blocked/
// sleeping lists"). A TCB is a member of at most one List at a time; its
// prev/next fields double as both the membership marker and the storage for
// that membership, so no separate node allocation is ever needed — the
// defining property of an intrusive list.
type List struct {
	head, tail *TCB
	size       int
}

// Empty reports whether the list has no members.
func (l *List) Empty() bool { return l.head == nil }

// Len returns the number of members.
func (l *List) Len() int { return l.size }

// Front returns the head of the list (highest priority / earliest wake-up,
// depending on how the list is kept ordered), or nil if empty.
func (l *List) Front() *TCB { return l.head }

// insertBefore inserts t immediately before the first member for which
// before returns true, or at the tail if none does. This keeps insertion
// order stable (FIFO) among members the predicate treats as equal, matching
// spec's "ties broken by FIFO insertion order".
func (l *List) insertBefore(t *TCB, before func(o *TCB) bool) {
	for o := l.head; o != nil; o = o.next {
		if before(o) {
			t.prev, t.next = o.prev, o
			if o.prev != nil {
				o.prev.next = t
			} else {
				l.head = t
			}
			o.prev = t
			l.size++
			t.list = l
			return
		}
	}
	// Append at the tail.
	t.prev, t.next = l.tail, nil
	if l.tail != nil {
		l.tail.next = t
	} else {
		l.head = t
	}
	l.tail = t
	l.size++
	t.list = l
}

// InsertByPriority inserts t ordered by current priority, highest priority
// (lowest numeric value) first, FIFO among equal priorities.
func (l *List) InsertByPriority(t *TCB) {
	l.insertBefore(t, func(o *TCB) bool { return o.curPri > t.curPri })
}

// InsertByTick inserts t ordered by wake-up tick, earliest first, FIFO among
// equal ticks, using signed-difference comparison so a bounded tick
// wrap-around still orders correctly (spec "Tick wrap-around" boundary
// case).
func (l *List) InsertByTick(t *TCB) {
	l.insertBefore(t, func(o *TCB) bool { return tickAfter(o.wakeTick, t.wakeTick) })
}

// PushBack appends t unconditionally (used for round-robin rotation within
// a priority band).
func (l *List) PushBack(t *TCB) {
	l.insertBefore(t, func(*TCB) bool { return false })
}

// Remove unlinks t from this list. t must currently be a member.
func (l *List) Remove(t *TCB) {
	if t.prev != nil {
		t.prev.next = t.next
	} else {
		l.head = t.next
	}
	if t.next != nil {
		t.next.prev = t.prev
	} else {
		l.tail = t.prev
	}
	t.prev, t.next = nil, nil
	t.list = nil
	l.size--
}

// unlink removes t from whichever List it is currently a member of, if any.
// Used by operations (terminate, block_to) that must detach a TCB without
// the caller naming its current list explicitly.
func unlink(t *TCB) {
	if t.list != nil {
		t.list.Remove(t)
	}
}

// Iter calls fn for every member, head to tail. fn must not mutate the
// list's membership.
func (l *List) Iter(fn func(*TCB)) {
	for t := l.head; t != nil; t = t.next {
		fn(t)
	}
}

// tickAfter reports whether tick a is strictly after tick b, tolerating a
// single wrap-around of the 32-bit counter (spec: "Comparison uses signed
// difference so that a bounded tick wrap-around is handled correctly").
func tickAfter(a, b uint32) bool {
	return int32(a-b) > 0
}
