package systems

import "github.com/pthm-cable/dilemma/components"

// AgeFood counts down a food item's lifetime and reports whether it expired.
func AgeFood(f *components.Food, dt float64) bool {
	f.TTL -= dt
	return f.TTL <= 0
}

// FoodSpawner turns a continuous spawn rate into whole items per tick.
// Fractional items carry over to later ticks.
type FoodSpawner struct {
	carry float64
}

// Due returns how many items to spawn this tick, given the current item
// count and the cap. A non-positive cap means unlimited.
func (s *FoodSpawner) Due(rate, dt float64, current, maxItems int) int {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	s.carry += rate * dt
	n := int(s.carry)
	s.carry -= float64(n)
	if maxItems > 0 && current+n > maxItems {
		n = max(maxItems-current, 0)
	}
	return n
}

// Reset drops any fractional carry.
func (s *FoodSpawner) Reset() {
	s.carry = 0
}
