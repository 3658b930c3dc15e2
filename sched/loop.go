package sched

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ef-ds/deque"
	"github.com/rs/zerolog"
)

// Loop executes scheduled calls on a single destination goroutine.
//
// Calls arrive on two lanes. The normal lane is processed only by Run, in
// strict FIFO order. The interrupt lane is additionally drained by
// ProcessInterrupts, which the destination goroutine may invoke while it is
// logically blocked elsewhere (for example inside a wait), so interrupt calls
// do not have to wait for the next Run iteration.
//
// Enqueueing never blocks the producer: the lanes are unbounded here, and
// backpressure is applied per subscription by QueueScheduler.
type Loop struct {
	log zerolog.Logger

	mu         sync.Mutex
	calls      deque.Deque
	interrupts deque.Deque

	wake    chan struct{}
	running atomic.Bool
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLoopLogger sets the logger used to report failed calls.
func WithLoopLogger(log zerolog.Logger) LoopOption {
	return func(l *Loop) {
		l.log = log
	}
}

// NewLoop creates a call loop. It accepts calls immediately; execution starts
// when the destination goroutine enters Run.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		log:  zerolog.Nop(),
		wake: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes calls on the calling goroutine until ctx is cancelled.
// Calls already queued at cancellation are drained before Run returns.
// Returns ErrAlreadyRunning if another goroutine is already inside Run.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.running.Store(false)

	for {
		l.drain()
		select {
		case <-ctx.Done():
			l.drain()
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// IsRunning reports whether a goroutine is currently inside Run.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// ProcessInterrupts drains and executes the interrupt lane on the calling
// goroutine. It returns the number of calls executed. Intended for the
// destination goroutine to call while it is waiting outside the loop.
func (l *Loop) ProcessInterrupts() int {
	n := 0
	for {
		l.mu.Lock()
		v, ok := l.interrupts.PopFront()
		l.mu.Unlock()
		if !ok {
			return n
		}
		l.execute(v.(*Call))
		n++
	}
}

// Pending returns the number of calls waiting on both lanes.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls.Len() + l.interrupts.Len()
}

// enqueue appends a call to the chosen lane and wakes the loop.
func (l *Loop) enqueue(c *Call, interrupt bool) {
	l.mu.Lock()
	if interrupt {
		l.interrupts.PushBack(c)
	} else {
		l.calls.PushBack(c)
	}
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// drain executes queued calls until both lanes are empty. Interrupt calls are
// preferred over normal calls.
func (l *Loop) drain() {
	for {
		c := l.next()
		if c == nil {
			return
		}
		l.execute(c)
	}
}

// next pops the next call, interrupt lane first. Returns nil when empty.
func (l *Loop) next() *Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	if v, ok := l.interrupts.PopFront(); ok {
		return v.(*Call)
	}
	if v, ok := l.calls.PopFront(); ok {
		return v.(*Call)
	}
	return nil
}

// execute runs a single call outside the loop mutex and reports failures.
func (l *Loop) execute(c *Call) {
	c.Execute()
	if err := c.Err(); err != nil {
		l.log.Debug().
			Str("call", c.ID().String()).
			Str("tag", c.Tag()).
			Err(err).
			Msg("scheduled call failed")
	}
}
