package clock

import (
	"sync"
	"time"
)

// MockClock provides a controllable time source for testing
// SleepUntil advances simulated time to the deadline instead of blocking
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
	sleeps      []time.Duration
}

// NewMockClock creates a new mock clock with the given start time
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance advances the current time by the given duration
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// SleepUntil jumps to deadline when it lies in the future and records the
// simulated sleep. A closed cancel channel aborts without advancing
func (m *MockClock) SleepUntil(deadline time.Time, cancel <-chan struct{}) bool {
	select {
	case <-cancel:
		return false
	default:
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d := deadline.Sub(m.currentTime)
	if d <= 0 {
		return true
	}
	m.currentTime = deadline
	m.sleeps = append(m.sleeps, d)
	return true
}

// Sleeps returns the simulated sleep durations in call order
func (m *MockClock) Sleeps() []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]time.Duration, len(m.sleeps))
	copy(out, m.sleeps)
	return out
}
