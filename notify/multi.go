package notify

import (
	"sync"
	"time"
)

// failure is the sentinel delivered to waiters released by Fail.
type failure struct{}

// MultiNotifier is a reusable wait/notify synchronizer for multiple
// goroutines, similar in function to a condition variable.
//
// It keeps an internal counter which increases by one on every Notify call.
// Waiters block until the counter reaches a target value, so repeated
// Wait/Notify rounds form a monotonically increasing sequence of generations.
type MultiNotifier struct {
	mu      sync.Mutex
	counter int
	failed  bool
	waiters map[int][]*Notifier
}

// NewMultiNotifier creates a multi-notifier with a zero counter.
func NewMultiNotifier() *MultiNotifier {
	return &MultiNotifier{
		waiters: make(map[int][]*Notifier),
	}
}

// Wait blocks until the counter is at least state, or the timeout elapses.
// A timeout <= 0 waits indefinitely.
//
// On success it returns the counter value observed plus one, which is the
// next smallest target that would require waiting. If the synchronizer has
// been marked failed it returns ErrFailed without blocking; if the deadline
// expires it returns ErrTimeout.
func (m *MultiNotifier) Wait(state int, timeout time.Duration) (int, error) {
	m.mu.Lock()
	if m.failed {
		m.mu.Unlock()
		return 0, ErrFailed
	}
	if m.counter >= state {
		next := m.counter + 1
		m.mu.Unlock()
		return next, nil
	}
	n := NewNotifier(true)
	m.waiters[state] = append(m.waiters[state], n)
	m.mu.Unlock()

	ok, err := n.Wait(timeout)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrTimeout
	}
	switch v := n.Value().(type) {
	case failure:
		return 0, ErrFailed
	case int:
		// v is the counter at release time; the next target follows it.
		return v + 1, nil
	default:
		return 0, ErrFailed
	}
}

// WaitUntil repeatedly probes condition until it reports ok, waiting for a
// new notification between probes. The probe runs in the waiting goroutine.
// All rounds share one countdown; if it expires before the condition is met,
// WaitUntil returns ErrTimeout. On success the condition's result is
// returned.
func (m *MultiNotifier) WaitUntil(condition func() (any, bool), timeout time.Duration) (any, error) {
	ctd := newCountdown(timeout)
	state := 1
	for {
		if res, ok := condition(); ok {
			return res, nil
		}
		left, ok := ctd.remaining()
		if !ok {
			return nil, ErrTimeout
		}
		next, err := m.Wait(state, left)
		if err != nil {
			return nil, err
		}
		state = next
	}
}

// Notify increments the counter and wakes every waiter whose target has been
// reached. Waiters are notified outside the lock, so waking never blocks the
// notifying goroutine on lock contention.
func (m *MultiNotifier) Notify() {
	m.mu.Lock()
	m.counter++
	cnt := m.counter
	var released []*Notifier
	for target, ns := range m.waiters {
		if target <= cnt {
			released = append(released, ns...)
			delete(m.waiters, target)
		}
	}
	m.mu.Unlock()

	for _, n := range released {
		_ = n.Notify(cnt)
	}
}

// Fail marks the synchronizer as failed and releases every pending waiter
// with ErrFailed. All subsequent Wait calls return ErrFailed immediately.
func (m *MultiNotifier) Fail() {
	m.mu.Lock()
	m.failed = true
	var released []*Notifier
	for _, ns := range m.waiters {
		released = append(released, ns...)
	}
	m.waiters = make(map[int][]*Notifier)
	m.mu.Unlock()

	for _, n := range released {
		_ = n.Notify(failure{})
	}
}

// Counter returns the current counter value.
func (m *MultiNotifier) Counter() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter
}

// Failed reports whether the synchronizer has been marked failed.
func (m *MultiNotifier) Failed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failed
}
