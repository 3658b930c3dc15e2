// Package notify provides cross-goroutine wait/notify synchronization
// primitives.
//
// Two primitives are provided:
//
//   - Notifier: a single-shot cell pairing exactly one Wait with exactly one
//     Notify. A skipable notifier accepts the two calls in either order; a
//     notify that arrives first short-circuits the wait to immediate success.
//     A value travels with the notification.
//
//   - MultiNotifier: a reusable, counter-based synchronizer for many waiters.
//     Every Notify advances a generation counter; waiters target a counter
//     value and unblock exactly when it is reached. Fail releases every
//     pending waiter with an error and poisons future waits.
//
// # Locking discipline
//
// Both primitives hold their mutex only while mutating state. Waking a
// blocked goroutine always happens after the lock is released, so a notify
// can never deadlock against a waiter registering concurrently.
//
// # Basic usage
//
//	n := notify.NewNotifier(true)
//	go func() { n.Notify(result) }()
//	if ok, err := n.Wait(time.Second); err == nil && ok {
//	    v := n.Value()
//	    _ = v
//	}
//
//	m := notify.NewMultiNotifier()
//	go func() { m.Notify() }()
//	next, err := m.Wait(1, time.Second)
package notify
