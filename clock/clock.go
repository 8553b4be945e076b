// Package clock provides the time source and deadline sleeper used by the
// window for input timestamps and frame pacing.
package clock

import "time"

// Clock supplies monotonic time and sleeps until a deadline
// Implementations must be safe for concurrent Now calls; SleepUntil is only
// called from the drawing goroutine
type Clock interface {
	// Now returns the current time with a monotonic reading
	Now() time.Time

	// SleepUntil blocks until deadline or until cancel is closed
	// Returns false if cancel fired first
	SleepUntil(deadline time.Time, cancel <-chan struct{}) bool
}

// MonotonicClock is the real-time Clock
type MonotonicClock struct{}

// NewMonotonicClock creates a new monotonic clock
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{}
}

// Now returns the current time with monotonic clock reading
func (c *MonotonicClock) Now() time.Time {
	return time.Now()
}

// SleepUntil waits on a timer, re-arming it when the runtime wakes early
// Deadline must come from Now so the comparison stays monotonic
func (c *MonotonicClock) SleepUntil(deadline time.Time, cancel <-chan struct{}) bool {
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}

		timer := time.NewTimer(remaining)
		select {
		case <-timer.C:
		case <-cancel:
			timer.Stop()
			return false
		}
	}
}
