package sched

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Scheduler converts direct callback invocations into deferred, destination-
// targeted calls. Implementations decide where and when a built call runs.
type Scheduler interface {
	// BuildCall wraps fn into a call handle. If syncResult is true the handle
	// carries a result notifier that Call.Result can block on.
	BuildCall(fn func() (any, error), syncResult bool) *Call

	// Schedule hands the call over for deferred execution. It never blocks;
	// the return value reports whether the call was accepted or dropped.
	Schedule(c *Call) bool

	// Clear cancels every scheduled call that has not yet been dequeued.
	// Calls already picked up by the destination cannot be retracted.
	Clear()
}

// QueueScheduler schedules calls onto a destination Loop with a bounded
// per-scheduler queue.
//
// If the number of pending calls has reached the queue limit, Schedule drops
// the new call instead of queueing it (drop-new backpressure), so a slow
// destination can never force the producer to block or the queue to grow
// without bound. A limit <= 0 disables the bound.
type QueueScheduler struct {
	loop      *Loop
	log       zerolog.Logger
	limit     int
	interrupt bool
	tag       string

	mu     sync.Mutex
	queued map[uuid.UUID]*Call
}

// QueueOption configures a QueueScheduler.
type QueueOption func(*QueueScheduler)

// WithQueueLimit bounds the number of pending calls. The default is 1; a
// value <= 0 removes the bound (not recommended, the queue can then grow
// without limit).
func WithQueueLimit(limit int) QueueOption {
	return func(s *QueueScheduler) {
		s.limit = limit
	}
}

// WithInterrupt selects the loop lane. Interrupt calls (the default) may run
// while the destination goroutine is blocked in a wait; non-interrupt calls
// run only in the destination's normal Run iteration.
func WithInterrupt(interrupt bool) QueueOption {
	return func(s *QueueScheduler) {
		s.interrupt = interrupt
	}
}

// WithTag labels calls built by this scheduler for logging.
func WithTag(tag string) QueueOption {
	return func(s *QueueScheduler) {
		s.tag = tag
	}
}

// WithQueueLogger sets the logger used to report dropped calls.
func WithQueueLogger(log zerolog.Logger) QueueOption {
	return func(s *QueueScheduler) {
		s.log = log
	}
}

// NewQueueScheduler creates a scheduler targeting the given loop.
func NewQueueScheduler(loop *Loop, opts ...QueueOption) *QueueScheduler {
	s := &QueueScheduler{
		loop:      loop,
		log:       zerolog.Nop(),
		limit:     1,
		interrupt: true,
		queued:    make(map[uuid.UUID]*Call),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildCall wraps fn into a call whose queue slot is released when the call
// executes or is cancelled.
func (s *QueueScheduler) BuildCall(fn func() (any, error), syncResult bool) *Call {
	opts := []CallOption{WithCallTag(s.tag)}
	if syncResult {
		opts = append(opts, WithSyncResult())
	}
	var c *Call
	opts = append(opts, WithFinalizer(func() { s.release(c) }))
	c = NewCall(fn, opts...)
	return c
}

// Schedule enqueues the call on the destination loop. If the queue limit has
// been reached the call is cancelled and dropped, and Schedule returns false.
func (s *QueueScheduler) Schedule(c *Call) bool {
	s.mu.Lock()
	if s.limit > 0 && len(s.queued) >= s.limit {
		s.mu.Unlock()
		c.Cancel()
		s.log.Debug().
			Str("call", c.ID().String()).
			Str("tag", s.tag).
			Int("limit", s.limit).
			Msg("scheduled call dropped: queue limit reached")
		return false
	}
	s.queued[c.ID()] = c
	s.mu.Unlock()

	s.loop.enqueue(c, s.interrupt)
	return true
}

// Clear cancels all pending calls. Calls the loop has already dequeued run to
// completion; cancellation is best effort.
func (s *QueueScheduler) Clear() {
	s.mu.Lock()
	calls := make([]*Call, 0, len(s.queued))
	for _, c := range s.queued {
		calls = append(calls, c)
	}
	s.mu.Unlock()

	for _, c := range calls {
		c.Cancel()
	}
}

// Pending returns the number of calls queued and not yet executed.
func (s *QueueScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queued)
}

// release frees the call's queue slot; registered as the call finalizer.
func (s *QueueScheduler) release(c *Call) {
	if c == nil {
		return
	}
	s.mu.Lock()
	delete(s.queued, c.ID())
	s.mu.Unlock()
}
