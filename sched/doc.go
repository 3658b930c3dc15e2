// Package sched provides deferred, goroutine-targeted call scheduling.
//
// A Call is a function captured at build time together with a lifecycle state
// and an optional synchronous result. A Loop is the destination executor: one
// goroutine enters Run and processes calls in FIFO order, with a separate
// interrupt lane that can also be drained mid-wait via ProcessInterrupts.
// A QueueScheduler ties the two together with a bounded per-scheduler queue
// and drop-new backpressure, so announcement bursts degrade by dropping
// excess calls rather than by blocking producers.
//
// The announce package uses schedulers to turn direct callback invocations
// into queued calls on a subscriber's own goroutine; any type implementing
// Scheduler can be plugged in instead.
//
//	loop := sched.NewLoop()
//	go loop.Run(ctx)
//
//	s := sched.NewQueueScheduler(loop, sched.WithQueueLimit(4))
//	call := s.BuildCall(work, true)
//	if s.Schedule(call) {
//	    result, err := call.Result(time.Second)
//	    _ = result
//	    _ = err
//	}
package sched
