package async

import (
	"mos/config"
	"mos/kernel/kerrors"
	"mos/kernel/port"
)

// readyQueue is the double-buffered ready queue of lambdas (spec §3
// "Executor state", §4.4 "Double-buffered ready queue"). post appends to
// the current write buffer; drain flips the write/read buffers under the
// IRQGuard and returns the buffer just closed off, so posts made by
// callables running during a drain land in the other buffer rather than
// corrupting the slice being iterated.
type readyQueue struct {
	buf   [2][config.AsyncQueueCap]Lambda
	n     [2]int
	write int
}

// post appends fn to the write buffer. Fatal QueueFull if saturated (spec
// §7).
func (q *readyQueue) post(fn Lambda) {
	guard := port.EnterGuard()
	defer guard.Exit()
	w := q.write
	if q.n[w] >= config.AsyncQueueCap {
		kerrors.Fatal(kerrors.QueueFull, "async: ready queue saturated at %d entries", config.AsyncQueueCap)
		return
	}
	q.buf[w][q.n[w]] = fn
	q.n[w]++
}

// drain flips the buffers and returns the entries accumulated in the
// now-closed write buffer, in FIFO insertion order, resetting the new write
// buffer's count for reuse.
func (q *readyQueue) drain() []Lambda {
	guard := port.EnterGuard()
	defer guard.Exit()
	closed := q.write
	count := q.n[closed]
	q.write = 1 - closed
	q.n[q.write] = 0
	return q.buf[closed][:count]
}
