package services

import "sync"

// Sequencer hands out monotonically increasing tokens per key so callers
// can discard late-arriving stale suggestion results. A key is typically
// "<session>/<field>" (e.g. one per pickup/destination input).
//
// Without the guard, two in-flight lookups for the same field race and
// the last response to arrive wins even when it answers an older query.
type Sequencer struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{latest: make(map[string]uint64)}
}

// Begin registers a new request for key and returns its token.
// Any previously issued token for the same key becomes stale.
func (s *Sequencer) Begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest[key]++
	return s.latest[key]
}

// Fresh reports whether token still identifies the newest request for key.
func (s *Sequencer) Fresh(key string, token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.latest[key] == token
}
