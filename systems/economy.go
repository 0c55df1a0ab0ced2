package systems

import (
	"github.com/pthm-cable/dilemma/components"
	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/rng"
)

// Fate is the outcome of one economy update for an agent.
type Fate uint8

const (
	FateLive Fate = iota
	FateStarved
	FateOldAge
	FateReproduce
)

// EconomyParams holds the constants of the resource economy.
type EconomyParams struct {
	MaintenanceCost      float64
	CarryingCapacity     int
	OverpopulationFactor float64
	HardCutoff           bool
	Minimum              float64
	Threshold            float64
	Cost                 float64
	MaxAgents            int
	MaxAge               float64
	AgeDeathRate         float64
}

// EconomyParamsFromConfig extracts economy constants from cfg.
func EconomyParamsFromConfig(cfg *config.Config) EconomyParams {
	return EconomyParams{
		MaintenanceCost:      cfg.Resources.MaintenanceCost,
		CarryingCapacity:     cfg.Population.CarryingCapacity,
		OverpopulationFactor: cfg.Population.OverpopulationFactor,
		HardCutoff:           cfg.Population.HardCutoff,
		Minimum:              cfg.Resources.Minimum,
		Threshold:            cfg.Reproduction.Threshold,
		Cost:                 cfg.Reproduction.Cost,
		MaxAgents:            cfg.Population.MaxAgents,
		MaxAge:               cfg.Lifecycle.MaxAge,
		AgeDeathRate:         cfg.Lifecycle.AgeDeathRate,
	}
}

// DensityPenalty returns the extra drain over dt for a population above
// carrying capacity. It grows linearly with the excess.
func DensityPenalty(population, capacity int, factor, dt float64) float64 {
	excess := population - capacity
	if excess <= 0 {
		return 0
	}
	return float64(excess) * factor * dt
}

// UpdateEconomy ages an agent and applies maintenance and density drain.
// It then decides death or reproduction. A reproducing agent has already
// paid the cost when this returns; the caller spawns the offspring.
// population is the live count at the moment this agent is processed.
func UpdateEconomy(res *components.Resources, population int, p EconomyParams, dt float64, src rng.Source) Fate {
	res.Age += dt
	res.Value -= p.MaintenanceCost * dt
	res.Value -= DensityPenalty(population, p.CarryingCapacity, p.OverpopulationFactor, dt)
	if p.HardCutoff && population > 2*p.CarryingCapacity {
		res.Value = 0
	}

	if res.Value <= p.Minimum {
		res.Alive = false
		return FateStarved
	}
	if p.MaxAge > 0 && res.Age > p.MaxAge && rng.Chance(src, p.AgeDeathRate*dt) {
		res.Alive = false
		return FateOldAge
	}
	if res.Value >= p.Threshold && (p.MaxAgents <= 0 || population < p.MaxAgents) {
		res.Value -= p.Cost
		return FateReproduce
	}
	return FateLive
}
