// Package strategy implements the decision rules of the iterated prisoner's dilemma.
package strategy

import "fmt"

// Action is a single move in one round of the dilemma.
type Action uint8

const (
	Cooperate Action = iota
	Defect
)

// Flip returns the opposite action.
func (a Action) Flip() Action {
	if a == Cooperate {
		return Defect
	}
	return Cooperate
}

// String returns "C" or "D".
func (a Action) String() string {
	if a == Defect {
		return "D"
	}
	return "C"
}

// Strategy tags one of the fixed decision rules. The set is closed.
type Strategy uint8

const (
	AlwaysCooperate Strategy = iota
	AlwaysDefect
	TitForTat
	TitForTwoTats
	GrimTrigger
	WinStayLoseShift
	Random

	// Count is the number of defined strategies.
	Count = int(Random) + 1
)

var names = [Count]string{
	"always_cooperate",
	"always_defect",
	"tit_for_tat",
	"tit_for_two_tats",
	"grim_trigger",
	"win_stay_lose_shift",
	"random",
}

var labels = [Count]string{
	"Always Cooperate",
	"Always Defect",
	"Tit for Tat",
	"Tit for Two Tats",
	"Grim Trigger",
	"Win-Stay Lose-Shift",
	"Random",
}

// All returns every strategy in tag order.
func All() []Strategy {
	out := make([]Strategy, Count)
	for i := range out {
		out[i] = Strategy(i)
	}
	return out
}

// Valid reports whether s is one of the defined tags.
func (s Strategy) Valid() bool {
	return int(s) < Count
}

// String returns the snake_case config name.
func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
	return names[s]
}

// Label returns a human-readable name for displays.
func (s Strategy) Label() string {
	if !s.Valid() {
		return "Unknown"
	}
	return labels[s]
}

// Parse resolves a config name to its strategy tag.
func Parse(name string) (Strategy, error) {
	for i, n := range names {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid strategy tag %d", uint8(s))
	}
	return []byte(names[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
