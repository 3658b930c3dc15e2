package notify

import "errors"

// Sentinel errors for the notify package.
var (
	// ErrAlreadyCalled is returned when Wait or Notify is invoked a second
	// time on a single-shot Notifier.
	ErrAlreadyCalled = errors.New("notifier method already called")

	// ErrTimeout is returned when a wait deadline expires before the
	// notification arrives.
	ErrTimeout = errors.New("wait timed out")

	// ErrFailed is returned when a MultiNotifier has been marked failed,
	// either before a wait starts or while a waiter is blocked.
	ErrFailed = errors.New("synchronizer failed")
)
