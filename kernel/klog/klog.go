// Package klog is the kernel's line-buffered logging channel (spec §7: "The
// logging channel is always line-buffered"), grounded in the teacher's
// sparkos/client/logger + sparkos/services/logger split: a thin client call
// here, a real sink supplied by the embedder.
package klog

import (
	"fmt"
	"io"
	"sync"

	"mos/hal"
)

var (
	mu   sync.Mutex
	sink io.Writer = defaultSink()
)

// defaultSink wires klog's console through hal.DefaultConsole (spec §6's
// console collaborator) instead of hardcoding os.Stdout directly: the host
// build logs to stdio, and the tinygo build discards log lines until the
// embedder wires up a real UART via SetSink(hal.NewUARTConsole(...)), since
// no board's pin/baud setup is in this repository's scope.
func defaultSink() io.Writer {
	if c := hal.DefaultConsole(); c != nil {
		return c
	}
	return io.Discard
}

// SetSink installs the writer log lines are written to. The default is
// hal.DefaultConsole() (process stdio on the host build), matching a
// UART-backed console on real hardware.
func SetSink(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	sink = w
}

// Logf writes one line to the log sink. Calls are serialised so lines from
// concurrently running simulated tasks never interleave mid-line.
func Logf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(sink, format+"\n", args...)
}
