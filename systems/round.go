package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dilemma/components"
	"github.com/pthm-cable/dilemma/rng"
	"github.com/pthm-cable/dilemma/strategy"
)

// Player bundles the components one side of a round reads and writes.
// Pointers come from ark maps and are only valid until the next structural
// change to the world.
type Player struct {
	Entity    ecs.Entity
	Agent     *components.Agent
	Pos       *components.Position
	Res       *components.Resources
	Ledger    *components.Ledger
	Encounter *components.Encounter
	Mind      *components.Mind
}

// RoundParams holds the per-tick constants of round resolution.
type RoundParams struct {
	Tick            int64
	ErrorRate       float64 // chance a chosen action is flipped
	MemoryErrorRate float64 // chance an observed action is misremembered
	PayoffScale     float64
}

// RoundResult reports what happened in a round.
type RoundResult struct {
	ActionA, ActionB strategy.Action
	PayoffA, PayoffB float64
}

// Ready reports whether an agent's cooldown has elapsed at tick now.
// An agent that has never played is always ready.
func Ready(enc *components.Encounter, now, cooldown int64) bool {
	return !enc.HasPartner || now-enc.LastTick >= cooldown
}

// PlayRound resolves one simultaneous round between a and b. Both decisions
// are made before either side's state changes, so neither sees the other's
// current choice. Random draws happen in a fixed order: a's decision, a's
// noise, b's decision, b's noise, then a's and b's memory noise.
func PlayRound(a, b Player, p RoundParams, src rng.Source) RoundResult {
	actA := decide(a, b, p.ErrorRate, src)
	actB := decide(b, a, p.ErrorRate, src)
	payA, payB := Payoffs(actA, actB, p.PayoffScale)

	settle(a, b, actA, payA, p.Tick)
	settle(b, a, actB, payB, p.Tick)

	a.Mind.Memory.Record(b.Agent.ID, strategy.ApplyNoise(actB, p.MemoryErrorRate, src))
	b.Mind.Memory.Record(a.Agent.ID, strategy.ApplyNoise(actA, p.MemoryErrorRate, src))

	return RoundResult{ActionA: actA, ActionB: actB, PayoffA: payA, PayoffB: payB}
}

func decide(self, other Player, errorRate float64, src rng.Source) strategy.Action {
	view := self.Mind.Memory.View(other.Agent.ID)
	act := strategy.Decide(self.Agent.Strategy, view, self.Mind.Private, src)
	return strategy.ApplyNoise(act, errorRate, src)
}

// settle applies one side's outcome to its own components. Harm is recorded
// on both ends: the loser remembers where the harmer stood and the harmer
// marks the loser as a victim.
func settle(self, other Player, taken strategy.Action, payoff float64, tick int64) {
	self.Res.Value += payoff

	self.Ledger.Score += payoff
	self.Ledger.Interactions++
	if taken == strategy.Cooperate {
		self.Ledger.Cooperations++
	} else {
		self.Ledger.Defections++
	}

	if self.Agent.Strategy == strategy.WinStayLoseShift {
		self.Mind.Private.Update(taken, payoff)
	}

	self.Encounter.LastTick = tick
	self.Encounter.LastPartner = other.Agent.ID
	self.Encounter.HasPartner = true

	if payoff < 0 {
		self.Encounter.Harmer = *other.Pos
		self.Encounter.HasHarmer = true
		other.Encounter.Victim = self.Entity
		other.Encounter.HasVictim = true
	}
}
