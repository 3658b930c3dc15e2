// Package announce provides an in-process publish/subscribe announcement
// router for coordinating independent goroutines.
//
// An announcement is an immutable (source, destination, tag, value) tuple.
// Any goroutine can send one through a Pool; any goroutine can subscribe a
// callback with filters on the source, destination and tag fields plus an
// optional predicate over the value. On Send, matching subscribers fire in
// priority order (higher first, ties in subscription order).
//
// # Matching rules
//
// Source and destination filters are either the Any sentinel (match
// everything, the default) or an explicit name set. An explicit set matches
// an announcement whose field is the All broadcast sentinel or a listed
// name:
//
//	pool.Send("motor", announce.Any, "position", v)  // reaches Any-source subscribers
//	                                                 // and subscribers listing "motor"
//	pool.Send(announce.All, announce.Any, "stop", nil) // passes every source filter
//
// Tag filters accept exact names and glob patterns ("temp.*" matches
// "temp.value" but not "pressure.value"); patterns compile once at subscribe
// time. An announcement with an empty tag bypasses tag filtering entirely,
// so tag-filtered subscribers still receive untagged broadcasts.
//
// # Delivery modes
//
// Direct subscriptions run on the sending goroutine; a slow callback blocks
// the sender, and a callback error aborts the remaining dispatch and
// propagates to the sender. Queued subscriptions (SubscribeQueued) instead
// enqueue a deferred call on the subscriber's own sched.Loop with bounded,
// drop-new backpressure, so Send never blocks on them.
//
// # Basic usage
//
//	pool := announce.NewPool()
//
//	id, _ := pool.SubscribeDirect(handle,
//	    announce.WithSources("sensor"),
//	    announce.WithTags("temp.*"),
//	    announce.WithPriority(10),
//	)
//	defer pool.Unsubscribe(id)
//
//	_ = pool.Send("sensor", announce.Any, "temp.value", 21.5)
//
// # Thread safety
//
// The Pool is safe for concurrent use. The subscription registry lock is
// never held across a callback, so callbacks may subscribe and unsubscribe
// freely during dispatch.
//
// # Subpackages
//
//   - observer: generic priority-ordered (filter, callback) registry
//   - pattern: precompiled exact/glob name matching
package announce
