package ksync

import (
	"sync"
	"testing"
	"time"

	"mos/kernel/task"
)

func TestLockExcludesConcurrentHolders(t *testing.T) {
	lock := NewLock()
	var held int32
	var maxHeld int32
	var mu sync.Mutex
	var wg sync.WaitGroup

	const n = 3
	for i := 0; i < n; i++ {
		wg.Add(1)
		if _, err := task.Create("holder", 50, func(any) {
			defer wg.Done()
			lock.Acquire()

			mu.Lock()
			held++
			if held > maxHeld {
				maxHeld = held
			}
			mu.Unlock()

			task.PollPreempt()

			mu.Lock()
			held--
			mu.Unlock()

			lock.Release()
		}, nil); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	task.Start()
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if maxHeld != 1 {
		t.Fatalf("maxHeld = %d, want 1", maxHeld)
	}
}

func TestLockReleaseByNonOwnerFails(t *testing.T) {
	var fatalKind any
	// installTestFatalHandler (testutil_test.go) intercepts the fatal error
	// rather than terminating the process, so the test can assert on the
	// Assert/Fatal path without killing the test binary.
	restoreFatal := installTestFatalHandler(t, &fatalKind)
	defer restoreFatal()

	lock := NewLock()
	var wg sync.WaitGroup
	wg.Add(2)

	if _, err := task.Create("owner", 50, func(any) {
		defer wg.Done()
		lock.Acquire()
		task.Sleep(1)
		lock.Release()
	}, nil); err != nil {
		t.Fatalf("Create(owner) error = %v", err)
	}
	if _, err := task.Create("intruder", 51, func(any) {
		defer wg.Done()
		task.Sleep(1)
		lock.Release()
	}, nil); err != nil {
		t.Fatalf("Create(intruder) error = %v", err)
	}

	task.Start()

	start := task.Ticks()
	for task.Ticks()-start < 3 {
		task.Tick()
		time.Sleep(time.Millisecond)
	}
	task.Start()
	wg.Wait()

	if fatalKind == nil {
		t.Fatalf("expected a fatal assertion from the non-owner release")
	}
}
