package memory

import "github.com/pthm-cable/dilemma/strategy"

// Store maps opponent identities to their histories. It is sparse: an entry
// exists only for opponents that have actually been met.
type Store struct {
	capacity  int
	opponents map[uint32]*History
}

// NewStore creates an empty store whose histories hold capacity entries.
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity:  capacity,
		opponents: make(map[uint32]*History),
	}
}

// Record appends an observed action of the given opponent.
func (s *Store) Record(opponent uint32, observed strategy.Action) {
	h := s.opponents[opponent]
	if h == nil {
		h = NewHistory(s.capacity)
		s.opponents[opponent] = h
	}
	h.Record(observed)
}

// Get returns the opponent's observations, oldest first. Unknown opponents
// yield an empty, non-nil slice.
func (s *Store) Get(opponent uint32) []strategy.Action {
	h := s.opponents[opponent]
	if h == nil {
		return []strategy.Action{}
	}
	return h.Actions()
}

// View returns what the resolver needs to decide against the opponent.
func (s *Store) View(opponent uint32) strategy.Opponent {
	h := s.opponents[opponent]
	if h == nil {
		return strategy.Opponent{Recent: []strategy.Action{}}
	}
	return strategy.Opponent{Recent: h.Actions()}
}

// Forget drops everything known about an opponent.
func (s *Store) Forget(opponent uint32) {
	delete(s.opponents, opponent)
}

// Known returns how many distinct opponents are remembered.
func (s *Store) Known() int {
	return len(s.opponents)
}

// Capacity returns the per-opponent history capacity.
func (s *Store) Capacity() int {
	return s.capacity
}
