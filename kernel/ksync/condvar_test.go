package ksync

import (
	"sync"
	"testing"
	"time"

	"mos/kernel/task"
)

func TestCondVarNotifyWakesSingleWaiter(t *testing.T) {
	mtx := NewPriorityMutex()
	var cv CondVar
	ready := false

	var wg sync.WaitGroup
	wg.Add(1)
	waiting := make(chan struct{})

	if _, err := task.Create("waiter", 50, func(any) {
		defer wg.Done()
		mtx.Acquire()
		close(waiting)
		cv.Wait(mtx, func() bool { return ready })
		mtx.Release()
	}, nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	task.Start()

	select {
	case <-waiting:
	case <-time.After(time.Second):
		t.Fatal("waiter never reached Wait")
	}
	time.Sleep(2 * time.Millisecond)
	if !cv.HasWaiters() {
		t.Fatalf("HasWaiters() = false, want true")
	}

	if _, err := task.Create("notifier", 50, func(any) {
		mtx.Acquire()
		ready = true
		mtx.Release()
		cv.Notify()
	}, nil); err != nil {
		t.Fatalf("Create(notifier) error = %v", err)
	}
	task.Start()

	waitDone(t, &wg, time.Second)
	if cv.HasWaiters() {
		t.Fatalf("HasWaiters() = true after Notify, want false")
	}
}

func TestCondVarNotifyAllWakesEveryWaiter(t *testing.T) {
	mtx := NewPriorityMutex()
	var cv CondVar
	ready := false

	const n = 3
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		if _, err := task.Create("waiter", 50, func(any) {
			defer wg.Done()
			mtx.Acquire()
			cv.Wait(mtx, func() bool { return ready })
			mtx.Release()
		}, nil); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	task.Start()
	time.Sleep(5 * time.Millisecond)

	if _, err := task.Create("notifier", 10, func(any) {
		mtx.Acquire()
		ready = true
		mtx.Release()
		cv.NotifyAll()
	}, nil); err != nil {
		t.Fatalf("Create(notifier) error = %v", err)
	}
	task.Start()

	waitDone(t, &wg, time.Second)
}
