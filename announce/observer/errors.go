package observer

import "errors"

// Sentinel errors for the observer package.
var (
	// ErrDuplicateID is returned when an explicit observer ID collides with
	// an existing entry.
	ErrDuplicateID = errors.New("observer id already in use")

	// ErrUnknownID is returned when removing an observer ID that was never
	// issued or has already been removed.
	ErrUnknownID = errors.New("unknown observer id")
)
