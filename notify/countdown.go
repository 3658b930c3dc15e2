package notify

import "time"

// countdown tracks a shared deadline across repeated wait rounds.
type countdown struct {
	deadline time.Time
	infinite bool
}

// newCountdown creates a countdown. A timeout <= 0 never expires.
func newCountdown(timeout time.Duration) countdown {
	if timeout <= 0 {
		return countdown{infinite: true}
	}
	return countdown{deadline: time.Now().Add(timeout)}
}

// remaining returns the time left and whether the countdown is still live.
// For an infinite countdown it returns 0 (wait indefinitely) and true.
func (c countdown) remaining() (time.Duration, bool) {
	if c.infinite {
		return 0, true
	}
	left := time.Until(c.deadline)
	if left <= 0 {
		return 0, false
	}
	return left, true
}
