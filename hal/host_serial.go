//go:build !tinygo

package hal

import (
	"os"
	"sync"
)

// HostConsole backs Console with the process's own stdio on a workstation,
// returned by DefaultConsole as kernel/klog's default sink.
type HostConsole struct {
	mu sync.Mutex
	r  *os.File
	w  *os.File
}

// NewHostConsole wraps os.Stdin/os.Stdout as a Console.
func NewHostConsole() *HostConsole {
	return &HostConsole{r: os.Stdin, w: os.Stdout}
}

// DefaultConsole returns the console kernel/klog falls back to when the
// embedder has not called klog.SetSink explicitly: the process's own
// stdio, standing in for a UART-backed console on real hardware.
func DefaultConsole() Console {
	return NewHostConsole()
}

func (s *HostConsole) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	return s.r.Read(p)
}

func (s *HostConsole) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
