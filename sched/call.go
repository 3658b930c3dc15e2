package sched

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/relay/notify"
)

// CallState tracks a deferred call through its lifecycle.
type CallState int32

const (
	// CallPending means the call is built or queued but not yet executed.
	CallPending CallState = iota

	// CallRunning means the call is executing on the destination goroutine.
	CallRunning

	// CallDone means the call finished executing.
	CallDone

	// CallCancelled means the call was cancelled before execution.
	CallCancelled
)

// String returns a human-readable state name.
func (s CallState) String() string {
	switch s {
	case CallPending:
		return "pending"
	case CallRunning:
		return "running"
	case CallDone:
		return "done"
	case CallCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// outcome carries a completed call's result through its notifier.
type outcome struct {
	value any
	err   error
}

// cancelled is the sentinel delivered to a result waiter when the call is
// cancelled before execution.
type cancelled struct{}

// Call is a deferred call handle: a function captured at build time together
// with an identity, a lifecycle state, and an optional synchronous result
// channel backed by a notify.Notifier.
//
// A call executes at most once. Execute and Cancel race safely; whichever
// transitions the call out of pending first wins, the other becomes a no-op.
type Call struct {
	id       uuid.UUID
	tag      string
	fn       func() (any, error)
	state    atomic.Int32
	result   *notify.Notifier
	value    any
	err      error
	finalize func()
}

// CallOption configures a Call at build time.
type CallOption func(*Call)

// WithSyncResult equips the call with a result notifier so a caller can block
// on Result until execution completes.
func WithSyncResult() CallOption {
	return func(c *Call) {
		c.result = notify.NewNotifier(true)
	}
}

// WithCallTag labels the call for logging and diagnostics.
func WithCallTag(tag string) CallOption {
	return func(c *Call) {
		c.tag = tag
	}
}

// WithFinalizer registers a hook invoked exactly once when the call leaves
// the pending state, whether by execution or cancellation. Schedulers use it
// for queue accounting.
func WithFinalizer(fn func()) CallOption {
	return func(c *Call) {
		c.finalize = fn
	}
}

// NewCall builds a call handle around fn.
func NewCall(fn func() (any, error), opts ...CallOption) *Call {
	c := &Call{
		id: uuid.New(),
		fn: fn,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the call's unique identifier.
func (c *Call) ID() uuid.UUID {
	return c.id
}

// Tag returns the call's diagnostic label.
func (c *Call) Tag() string {
	return c.tag
}

// State returns the current call state.
func (c *Call) State() CallState {
	return CallState(c.state.Load())
}

// Execute runs the call on the current goroutine. It is a no-op if the call
// has already executed or been cancelled.
func (c *Call) Execute() {
	if !c.state.CompareAndSwap(int32(CallPending), int32(CallRunning)) {
		return
	}
	c.value, c.err = c.fn()
	c.state.Store(int32(CallDone))
	if c.result != nil {
		_ = c.result.Notify(outcome{c.value, c.err})
	}
	if c.finalize != nil {
		c.finalize()
	}
}

// Cancel marks a pending call as cancelled so it is skipped when dequeued.
// Returns true if the call was still pending. A result waiter, if any, is
// released with ErrCancelled.
func (c *Call) Cancel() bool {
	if !c.state.CompareAndSwap(int32(CallPending), int32(CallCancelled)) {
		return false
	}
	if c.result != nil {
		_ = c.result.Notify(cancelled{})
	}
	if c.finalize != nil {
		c.finalize()
	}
	return true
}

// Err returns the error produced by the call's function. It is meaningful
// only after the call has executed.
func (c *Call) Err() error {
	return c.err
}

// Result blocks until the call completes (up to timeout; <= 0 waits
// indefinitely) and returns the function's result. It requires the call to
// have been built with WithSyncResult; otherwise it returns ErrNoResult.
// A cancelled call yields ErrCancelled.
func (c *Call) Result(timeout time.Duration) (any, error) {
	if c.result == nil {
		return nil, ErrNoResult
	}
	v, err := c.result.ValueSync(timeout)
	if err != nil {
		return nil, err
	}
	switch out := v.(type) {
	case outcome:
		return out.value, out.err
	case cancelled:
		return nil, ErrCancelled
	default:
		return nil, notify.ErrTimeout
	}
}
