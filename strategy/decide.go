package strategy

import "github.com/pthm-cable/dilemma/rng"

// Initial win-stay-lose-shift state: behave as if the previous round was a
// mutual cooperation.
const (
	InitialAction Action  = Cooperate
	InitialPayoff float64 = 3
)

// State is the strategy-private memory of an agent. Only win-stay-lose-shift
// reads it, and it is shared across all of the agent's opponents.
type State struct {
	LastAction Action
	LastPayoff float64
}

// NewState returns the state an agent starts its life with.
func NewState() State {
	return State{LastAction: InitialAction, LastPayoff: InitialPayoff}
}

// Update records the outcome of the round just played.
func (st *State) Update(taken Action, payoff float64) {
	st.LastAction = taken
	st.LastPayoff = payoff
}

// Opponent is what an agent remembers about one opponent.
type Opponent struct {
	// Recent holds the latest observed actions, oldest first.
	Recent []Action
}

// Decide returns the intended action of an agent playing s against opp.
// Tags outside the defined set fall back to Cooperate.
func Decide(s Strategy, opp Opponent, self State, src rng.Source) Action {
	history := opp.Recent
	switch s {
	case AlwaysCooperate:
		return Cooperate
	case AlwaysDefect:
		return Defect
	case TitForTat:
		if len(history) == 0 {
			return Cooperate
		}
		return history[len(history)-1]
	case TitForTwoTats:
		n := len(history)
		if n >= 2 && history[n-1] == Defect && history[n-2] == Defect {
			return Defect
		}
		return Cooperate
	case GrimTrigger:
		// The trigger lives in the history alone: a Defect evicted from a
		// bounded memory is forgiven.
		for _, a := range history {
			if a == Defect {
				return Defect
			}
		}
		return Cooperate
	case WinStayLoseShift:
		if self.LastPayoff > 0 {
			return self.LastAction
		}
		return self.LastAction.Flip()
	case Random:
		if src.Float64() < 0.5 {
			return Cooperate
		}
		return Defect
	default:
		return Cooperate
	}
}

// ApplyNoise flips a with probability rate. Used both for execution errors
// and for misremembered observations.
func ApplyNoise(a Action, rate float64, src rng.Source) Action {
	if rng.Chance(src, rate) {
		return a.Flip()
	}
	return a
}
