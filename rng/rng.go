// Package rng provides the injectable random source shared by every stochastic
// part of the simulation.
package rng

import (
	"math"
	"math/rand"
)

// Source yields uniform samples in [0, 1).
// *rand.Rand satisfies it; tests substitute scripted sequences.
type Source interface {
	Float64() float64
}

// New returns a seeded source. Two sources built from the same seed produce
// the same sequence.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Chance reports whether an event with probability p fires.
func Chance(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	return src.Float64() < p
}

// UnitVector returns a uniformly oriented unit vector.
func UnitVector(src Source) (x, y float64) {
	angle := src.Float64() * 2 * math.Pi
	return math.Cos(angle), math.Sin(angle)
}

// Sequence replays a fixed list of samples, wrapping at the end.
// An empty sequence always yields 0.
type Sequence struct {
	Values []float64
	next   int
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
