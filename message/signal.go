package message

import "sync"

// Signal is a re-armable binary event
// Set releases every current waiter and stays set until the next Arm
type Signal struct {
	mu    sync.Mutex
	ch    chan struct{}
	fired bool
}

// NewSignal creates a cleared signal
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{})}
}

// Set marks the signal and releases waiters. Safe to call repeatedly
func (s *Signal) Set() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fired {
		s.fired = true
		close(s.ch)
	}
}

// Arm clears the signal and returns the channel the next Set will close
// Clearing and capturing happen under one lock, so a Set that lands between
// Arm and the receive is still observed
func (s *Signal) Arm() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	return s.ch
}

func (s *Signal) clearLocked() {
	if s.fired {
		s.fired = false
		s.ch = make(chan struct{})
	}
}
