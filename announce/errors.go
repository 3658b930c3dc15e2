package announce

import "errors"

// Sentinel errors for the announce package. Registry errors (unknown or
// duplicate subscription IDs) surface as the observer package's sentinels
// and can be matched with errors.Is.
var (
	// ErrNilCallback is returned when subscribing with a nil callback.
	ErrNilCallback = errors.New("callback cannot be nil")

	// ErrTargetClosed is returned when subscribing through a closed Target.
	ErrTargetClosed = errors.New("target is closed")
)
