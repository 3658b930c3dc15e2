package sched

import "errors"

// Sentinel errors for the sched package.
var (
	// ErrAlreadyRunning is returned when Run is called on a loop that is
	// already running.
	ErrAlreadyRunning = errors.New("call loop is already running")

	// ErrNoResult is returned by Call.Result when the call was built without
	// a synchronous result.
	ErrNoResult = errors.New("call has no synchronous result")

	// ErrCancelled is returned by Call.Result when the call was cancelled
	// before it executed.
	ErrCancelled = errors.New("call was cancelled")
)
