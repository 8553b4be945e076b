package message

import (
	"sync"
	"time"
)

// DefaultFreshness is the interval after arrival during which a message is
// considered current
const DefaultFreshness = 100 * time.Millisecond

// Mailbox stores the most recent payload of one kind with its arrival time
// Set is called from the event goroutine; reads and Reset from the drawing
// goroutine. Payload and timestamp always change together
type Mailbox[T any] struct {
	mu        sync.Mutex
	payload   T
	ok        bool
	timestamp time.Time
	freshness time.Duration
	ready     *Signal
}

// NewMailbox creates an empty mailbox with the given freshness window
// Non-positive freshness selects DefaultFreshness
func NewMailbox[T any](freshness time.Duration) *Mailbox[T] {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &Mailbox[T]{
		freshness: freshness,
		ready:     NewSignal(),
	}
}

// Set stores payload stamped with now and releases any waiter
func (m *Mailbox[T]) Set(payload T, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Released even if a caller recovers a panic further up
	defer m.ready.Set()

	m.payload = payload
	m.ok = true
	m.timestamp = now
}

// IsFresh reports whether a payload arrived within the freshness window
func (m *Mailbox[T]) IsFresh(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.freshLocked(now)
}

// WaitForNext returns the current payload when fresh at now; otherwise it
// blocks until the next Set or until done closes
// The boolean is false when done closed or the mailbox holds nothing
func (m *Mailbox[T]) WaitForNext(now time.Time, done <-chan struct{}) (T, bool) {
	return m.wait(now, done, false)
}

// Take is WaitForNext followed by Reset under the same lock hold, so a Set
// landing between the read and the reset is never discarded
func (m *Mailbox[T]) Take(now time.Time, done <-chan struct{}) (T, bool) {
	return m.wait(now, done, true)
}

func (m *Mailbox[T]) wait(now time.Time, done <-chan struct{}, consume bool) (T, bool) {
	var zero T

	m.mu.Lock()
	if m.freshLocked(now) {
		defer m.mu.Unlock()
		return m.readLocked(consume)
	}
	// Armed while holding m.mu: a concurrent Set cannot slip in between
	// the staleness check and the arm
	ready := m.ready.Arm()
	m.mu.Unlock()

	select {
	case <-ready:
	case <-done:
		return zero, false
	}

	// Close racing a Set resolves to closed
	select {
	case <-done:
		return zero, false
	default:
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readLocked(consume)
}

func (m *Mailbox[T]) readLocked(consume bool) (T, bool) {
	payload, ok := m.payload, m.ok
	if consume {
		m.resetLocked()
	}
	return payload, ok
}

// Reset clears payload and timestamp to the unset state
func (m *Mailbox[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

// Release wakes any waiter without storing a payload
// Used on window close
func (m *Mailbox[T]) Release() {
	m.ready.Set()
}

func (m *Mailbox[T]) resetLocked() {
	var zero T
	m.payload = zero
	m.ok = false
	m.timestamp = time.Time{}
}

func (m *Mailbox[T]) freshLocked(now time.Time) bool {
	return m.ok && now.Sub(m.timestamp) <= m.freshness
}
