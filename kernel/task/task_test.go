package task

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mos/config"
)

// waitDone blocks until wg is done or the timeout elapses, failing the test
// on timeout rather than hanging the test binary forever.
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

func TestCreateRunsAndTerminates(t *testing.T) {
	var ran int32
	var wg sync.WaitGroup
	wg.Add(1)
	if _, err := Create("one", 10, func(any) {
		defer wg.Done()
		atomic.StoreInt32(&ran, 1)
	}, nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	Start()
	waitDone(t, &wg, time.Second)
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatalf("task body did not run")
	}
	if _, ok := Find("one"); ok {
		t.Fatalf("Find(%q) ok = true after termination, want false", "one")
	}
}

func TestCreateTooManyTasks(t *testing.T) {
	var wg sync.WaitGroup
	var stop int32
	for i := 0; i < config.MaxTasks; i++ {
		wg.Add(1)
		if _, err := Create("spin", 100, func(any) {
			defer wg.Done()
			for atomic.LoadInt32(&stop) == 0 {
				PollPreempt()
			}
		}, nil); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
	}

	if _, err := Create("one-too-many", 100, func(any) {}, nil); err == nil {
		t.Fatalf("Create() with pool exhausted: error = nil, want TooManyTasks")
	}

	atomic.StoreInt32(&stop, 1)
	Start()
	waitDone(t, &wg, time.Second)
}

// TestHigherPriorityPreemptsOnResume checks that Resume immediately switches
// to a higher-priority task rather than waiting for the caller's own slice
// to run out. The resuming call itself must come from a task's own
// goroutine (a "waker" task here) — Resume assumes its caller IS the
// running task being possibly preempted, the same discipline
// kernel/ksync's Up/Notify calls follow.
func TestHigherPriorityPreemptsOnResume(t *testing.T) {
	var order []string
	var mu sync.Mutex
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}

	var lowRunning int32 = 1
	var lowWG, wakerWG, highWG sync.WaitGroup
	lowWG.Add(1)
	wakerWG.Add(1)
	highWG.Add(1)

	if _, err := Create("low", 100, func(any) {
		defer lowWG.Done()
		for atomic.LoadInt32(&lowRunning) == 1 {
			PollPreempt()
		}
	}, nil); err != nil {
		t.Fatalf("Create(low) error = %v", err)
	}

	high, err := Create("high", 5, func(any) {
		defer highWG.Done()
		record("high")
	}, nil)
	if err != nil {
		t.Fatalf("Create(high) error = %v", err)
	}
	Block(high) // held off the ready list until the waker resumes it

	if _, err := Create("waker", 80, func(any) {
		defer wakerWG.Done()
		Resume(high)
	}, nil); err != nil {
		t.Fatalf("Create(waker) error = %v", err)
	}

	Start()
	waitDone(t, &wakerWG, time.Second)
	waitDone(t, &highWG, time.Second)

	atomic.StoreInt32(&lowRunning, 0)
	waitDone(t, &lowWG, time.Second)

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 1 || order[0] != "high" {
		t.Fatalf("order = %v, want [high]", order)
	}
}

func TestSleepWakesAtTick(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	var woke int32

	start := Ticks()
	if _, err := Create("sleeper", 50, func(any) {
		defer wg.Done()
		Sleep(5)
		atomic.StoreInt32(&woke, 1)
	}, nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	Start()

	// Drive ticks directly, the way the host port's SysTick stand-in would;
	// nothing else is runnable while the sleeper is blocked, so once Tick
	// moves it back onto the ready list, Start is called again to hand it
	// the baton.
	for Ticks()-start < 6 {
		Tick()
	}
	Start()

	waitDone(t, &wg, time.Second)
	if atomic.LoadInt32(&woke) != 1 {
		t.Fatalf("sleeper never woke")
	}
}

func TestYieldRotatesEqualPriorityTasks(t *testing.T) {
	const rounds = 20
	var counts [3]int32
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		idx := i
		wg.Add(1)
		if _, err := Create("rr", 60, func(any) {
			defer wg.Done()
			for n := 0; n < rounds; n++ {
				atomic.AddInt32(&counts[idx], 1)
				Yield()
			}
		}, nil); err != nil {
			t.Fatalf("Create() #%d error = %v", i, err)
		}
	}
	Start()
	waitDone(t, &wg, time.Second)

	for i, c := range counts {
		if c != rounds {
			t.Fatalf("counts[%d] = %d, want %d", i, c, rounds)
		}
	}
}
