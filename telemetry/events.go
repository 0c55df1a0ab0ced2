// Package telemetry aggregates simulation events into windowed statistics,
// writes them out as CSV and exposes them as prometheus metrics.
package telemetry

import "github.com/pthm-cable/dilemma/strategy"

// DeathCause identifies why an agent was removed.
type DeathCause uint8

const (
	DeathStarvation DeathCause = iota
	DeathOldAge
)

// String returns the label used in logs and metrics.
func (c DeathCause) String() string {
	switch c {
	case DeathStarvation:
		return "starvation"
	case DeathOldAge:
		return "old_age"
	default:
		return "unknown"
	}
}

// Outcome classifies a round by the pair of actions taken.
type Outcome uint8

const (
	OutcomeMutualCooperation Outcome = iota
	OutcomeMutualDefection
	OutcomeExploitation // one side cooperated, the other defected
)

// String returns the label used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case OutcomeMutualCooperation:
		return "mutual_cooperation"
	case OutcomeMutualDefection:
		return "mutual_defection"
	default:
		return "exploitation"
	}
}

// Classify returns the outcome of a round.
func Classify(a, b strategy.Action) Outcome {
	switch {
	case a == strategy.Cooperate && b == strategy.Cooperate:
		return OutcomeMutualCooperation
	case a == strategy.Defect && b == strategy.Defect:
		return OutcomeMutualDefection
	default:
		return OutcomeExploitation
	}
}

// AgentSample is the per-agent input to window aggregation.
type AgentSample struct {
	Strategy     strategy.Strategy
	Resources    float64
	Age          float64
	Score        float64
	Cooperations int
	Defections   int
}
