package announce

import (
	"sync"

	"github.com/dshills/relay/announce/observer"
	"github.com/dshills/relay/sched"
)

// Target provides a simplified API for subscribing under a fixed destination
// name. It tracks its subscriptions and removes them all on Close.
type Target struct {
	pool *Pool
	name string

	mu     sync.Mutex
	subs   []observer.ID
	closed bool
}

// Target returns a subscribing handle bound to the given destination name.
func (p *Pool) Target(name string) *Target {
	return &Target{pool: p, name: name}
}

// Name returns the bound destination name.
func (t *Target) Name() string {
	return t.name
}

// Subscribe registers a direct callback filtered to this destination.
// The subscription is tracked for cleanup when Close is called.
func (t *Target) Subscribe(cb Callback, opts ...SubscribeOption) (observer.ID, error) {
	return t.track(func() (observer.ID, error) {
		return t.pool.SubscribeDirect(cb, append(opts, WithDestinations(t.name))...)
	})
}

// SubscribeQueued registers a queued callback filtered to this destination,
// delivered on the given loop's goroutine.
func (t *Target) SubscribeQueued(cb Callback, loop *sched.Loop, opts ...SubscribeOption) (observer.ID, error) {
	return t.track(func() (observer.ID, error) {
		return t.pool.SubscribeQueued(cb, loop, append(opts, WithDestinations(t.name))...)
	})
}

// Unsubscribe removes one of this target's subscriptions.
func (t *Target) Unsubscribe(id observer.ID) error {
	t.mu.Lock()
	for i, sid := range t.subs {
		if sid == id {
			t.subs = append(t.subs[:i], t.subs[i+1:]...)
			break
		}
	}
	t.mu.Unlock()
	return t.pool.Unsubscribe(id)
}

// Close unsubscribes everything registered through this target. Subsequent
// Subscribe calls return ErrTargetClosed.
func (t *Target) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	subs := t.subs
	t.subs = nil
	t.mu.Unlock()

	var firstErr error
	for _, id := range subs {
		if err := t.pool.Unsubscribe(id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// track runs a subscribe function and records the resulting ID.
func (t *Target) track(subscribe func() (observer.ID, error)) (observer.ID, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0, ErrTargetClosed
	}
	t.mu.Unlock()

	id, err := subscribe()
	if err != nil {
		return 0, err
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		// Lost the race with Close; undo the registration.
		_ = t.pool.Unsubscribe(id)
		return 0, ErrTargetClosed
	}
	t.subs = append(t.subs, id)
	t.mu.Unlock()
	return id, nil
}
