package notify

import (
	"sync"
	"time"
)

// Notifier is a single-shot, cross-goroutine wait/notify cell.
//
// Exactly one Wait and one Notify are allowed per instance; repeating either
// call returns ErrAlreadyCalled. A skipable notifier permits the calls in
// either order: a Notify issued before Wait is stashed, and the eventual Wait
// completes immediately without blocking.
//
// A value can be passed along with the notification and retrieved with Value
// or ValueSync.
type Notifier struct {
	mu       sync.Mutex
	skipable bool
	waited   bool
	notified bool
	value    any
	wake     chan struct{}
}

// NewNotifier creates a notifier. If skipable is true, a notify issued before
// the wait short-circuits the wait to immediate success.
func NewNotifier(skipable bool) *Notifier {
	return &Notifier{
		skipable: skipable,
		wake:     make(chan struct{}),
	}
}

// Wait blocks the calling goroutine until Notify is called or the timeout
// elapses. A timeout <= 0 waits indefinitely.
//
// Returns true on notification, false on timeout. Calling Wait a second time
// returns ErrAlreadyCalled.
func (n *Notifier) Wait(timeout time.Duration) (bool, error) {
	n.mu.Lock()
	if n.waited {
		n.mu.Unlock()
		return false, ErrAlreadyCalled
	}
	n.waited = true
	if n.notified && n.skipable {
		// Skip path: the notification arrived first.
		n.mu.Unlock()
		return true, nil
	}
	wake := n.wake
	n.mu.Unlock()

	if timeout <= 0 {
		<-wake
		return true, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-wake:
		return true, nil
	case <-timer.C:
		return false, nil
	}
}

// Notify stores value and wakes a blocked waiter. If no waiter is blocked yet,
// the notification is recorded for the eventual Wait call. Calling Notify a
// second time returns ErrAlreadyCalled.
func (n *Notifier) Notify(value any) error {
	n.mu.Lock()
	if n.notified {
		n.mu.Unlock()
		return ErrAlreadyCalled
	}
	n.notified = true
	n.value = value
	close(n.wake)
	n.mu.Unlock()
	return nil
}

// Value returns the value passed to Notify. It does not check whether the
// notification has happened; callers are expected to have waited first.
func (n *Notifier) Value() any {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

// ValueSync waits (with the given timeout) for the notification if Wait has
// not been called yet, then returns the stored value.
func (n *Notifier) ValueSync(timeout time.Duration) (any, error) {
	if !n.DoneWait() {
		if _, err := n.Wait(timeout); err != nil {
			return nil, err
		}
	}
	return n.Value(), nil
}

// DoneWait reports whether Wait has been called.
func (n *Notifier) DoneWait() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.waited
}

// DoneNotify reports whether Notify has been called.
func (n *Notifier) DoneNotify() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.notified
}
