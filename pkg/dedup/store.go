package dedup

import "sync"

// Store is a process-lifetime set of already announced video ids. The hub may
// redeliver the same notification in quick succession, so the claim has to be
// an atomic check-and-set. The set only grows, no expiry and no persistence.
type Store struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewStore creates an empty dedup store
func NewStore() *Store {
	return &Store{seen: make(map[string]struct{})}
}

// TryClaim marks the id as seen and reports whether this call was the first
// one. Exactly one caller gets true per distinct id, racing callers included.
func (s *Store) TryClaim(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	return true
}

// Len returns the number of claimed ids
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
