package notify

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMultiNotifier_FastPath(t *testing.T) {
	m := NewMultiNotifier()

	m.Notify()
	m.Notify()

	next, err := m.Wait(2, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != 3 {
		t.Errorf("expected next state 3, got %d", next)
	}

	next, err = m.Wait(1, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != 3 {
		t.Errorf("expected next state 3, got %d", next)
	}
}

func TestMultiNotifier_BlocksUntilNotified(t *testing.T) {
	m := NewMultiNotifier()

	done := make(chan int, 1)
	go func() {
		n, err := m.Wait(1, time.Second)
		if err != nil {
			t.Errorf("unexpected wait error: %v", err)
		}
		done <- n
	}()

	select {
	case n := <-done:
		t.Fatalf("expected waiter to block, got %d", n)
	case <-time.After(50 * time.Millisecond):
	}

	m.Notify()

	select {
	case n := <-done:
		if n != 2 {
			t.Errorf("expected next state 2, got %d", n)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter was not released by notify")
	}
}

func TestMultiNotifier_TargetBeyondCounter(t *testing.T) {
	m := NewMultiNotifier()
	m.Notify() // counter = 1

	done := make(chan int, 1)
	go func() {
		n, err := m.Wait(2, time.Second)
		if err != nil {
			t.Errorf("unexpected wait error: %v", err)
		}
		done <- n
	}()

	// One more notify short of the target must not release the waiter.
	select {
	case <-done:
		t.Fatal("waiter released before target reached")
	case <-time.After(50 * time.Millisecond):
	}

	m.Notify() // counter = 2, target reached

	select {
	case n := <-done:
		if n != 3 {
			t.Errorf("expected next state 3, got %d", n)
		}
	case <-time.After(time.Second):
		t.Fatal("waiter was not released at target counter")
	}
}

func TestMultiNotifier_Timeout(t *testing.T) {
	m := NewMultiNotifier()

	if _, err := m.Wait(1, 20*time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestMultiNotifier_Fail(t *testing.T) {
	m := NewMultiNotifier()

	errs := make(chan error, 3)
	var started sync.WaitGroup
	for i := 0; i < 3; i++ {
		started.Add(1)
		go func(target int) {
			started.Done()
			_, err := m.Wait(target, time.Second)
			errs <- err
		}(i + 1)
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond) // let the waiters register

	m.Fail()

	for i := 0; i < 3; i++ {
		select {
		case err := <-errs:
			if !errors.Is(err, ErrFailed) {
				t.Errorf("expected ErrFailed, got %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("waiter was not released by fail")
		}
	}

	// Subsequent waits fail immediately.
	start := time.Now()
	if _, err := m.Wait(1, time.Second); !errors.Is(err, ErrFailed) {
		t.Errorf("expected ErrFailed, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("expected immediate failure, waited %v", elapsed)
	}
	if !m.Failed() {
		t.Error("expected Failed to report true")
	}
}

func TestMultiNotifier_WaitUntil(t *testing.T) {
	m := NewMultiNotifier()

	var mu sync.Mutex
	count := 0
	condition := func() (any, bool) {
		mu.Lock()
		defer mu.Unlock()
		if count >= 3 {
			return count, true
		}
		return nil, false
	}

	go func() {
		for i := 0; i < 3; i++ {
			time.Sleep(10 * time.Millisecond)
			mu.Lock()
			count++
			mu.Unlock()
			m.Notify()
		}
	}()

	res, err := m.WaitUntil(condition, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != 3 {
		t.Errorf("expected condition result 3, got %v", res)
	}
}

func TestMultiNotifier_WaitUntil_ImmediateCondition(t *testing.T) {
	m := NewMultiNotifier()

	res, err := m.WaitUntil(func() (any, bool) { return "ready", true }, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != "ready" {
		t.Errorf("expected %q, got %v", "ready", res)
	}
}

func TestMultiNotifier_WaitUntil_Timeout(t *testing.T) {
	m := NewMultiNotifier()

	_, err := m.WaitUntil(func() (any, bool) { return nil, false }, 30*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestMultiNotifier_Stress(t *testing.T) {
	const (
		notifiers      = 8
		notifiesPerGo  = 100
		waiters        = 8
		totalNotifies  = notifiers * notifiesPerGo
		waitsPerWaiter = 50
	)

	m := NewMultiNotifier()
	var wg sync.WaitGroup

	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state := 1
			for j := 0; j < waitsPerWaiter; j++ {
				if state > totalNotifies {
					// No further notifies are coming; a higher target
					// would block forever.
					return
				}
				next, err := m.Wait(state, 5*time.Second)
				if err != nil {
					t.Errorf("unexpected wait error: %v", err)
					return
				}
				if next <= state {
					t.Errorf("expected monotonic progress, state %d got %d", state, next)
					return
				}
				state = next
			}
		}()
	}

	for i := 0; i < notifiers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < notifiesPerGo; j++ {
				m.Notify()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("stress test deadlocked")
	}

	if got := m.Counter(); got != totalNotifies {
		t.Errorf("expected final counter %d, got %d", totalNotifies, got)
	}
}
