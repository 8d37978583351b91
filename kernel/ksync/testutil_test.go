package ksync

import (
	"sync"
	"testing"
	"time"

	"mos/kernel/kerrors"
)

// installTestFatalHandler swaps in a fatal handler that records the kind of
// each fatal error (the latest one wins) instead of panicking, and returns a func that
// restores the default panicking handler. kerrors.fatalHandler is
// process-wide, so callers must defer the restore.
func installTestFatalHandler(t *testing.T, kind *any) func() {
	kerrors.SetFatalHandler(func(err *kerrors.Error) {
		*kind = err.Kind
	})
	return func() { kerrors.SetFatalHandler(nil) }
}

func waitDone(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for tasks to finish")
	}
}
