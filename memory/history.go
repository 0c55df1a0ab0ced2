// Package memory holds each agent's bounded recollection of its opponents.
package memory

import "github.com/pthm-cable/dilemma/strategy"

// DefaultCapacity is the number of observations kept per opponent.
const DefaultCapacity = 10

// History is a fixed-capacity FIFO of one opponent's observed actions.
// When full, recording evicts the oldest entry.
type History struct {
	buf   []strategy.Action
	start int
	count int
}

// NewHistory creates an empty history holding at most capacity entries.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]strategy.Action, capacity)}
}

// Record appends an observation, evicting the oldest one when full.
func (h *History) Record(a strategy.Action) {
	if h.count < len(h.buf) {
		h.buf[(h.start+h.count)%len(h.buf)] = a
		h.count++
		return
	}
	h.buf[h.start] = a
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of stored observations.
func (h *History) Len() int {
	return h.count
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return len(h.buf)
}

// Actions copies the stored observations, oldest first.
func (h *History) Actions() []strategy.Action {
	out := make([]strategy.Action, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Last returns the most recent observation. ok is false when empty.
func (h *History) Last() (a strategy.Action, ok bool) {
	if h.count == 0 {
		return strategy.Cooperate, false
	}
	return h.buf[(h.start+h.count-1)%len(h.buf)], true
}
