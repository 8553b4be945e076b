package status

import "sync/atomic"

// AtomicString stores a string without locking
type AtomicString struct {
	v atomic.Pointer[string]
}

// Store sets the value
func (s *AtomicString) Store(val string) {
	s.v.Store(&val)
}

// Load returns the value, empty if never stored
func (s *AtomicString) Load() string {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return ""
}
