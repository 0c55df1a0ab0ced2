package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/sim"
	"github.com/pthm-cable/dilemma/strategy"
	"github.com/pthm-cable/dilemma/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// A population below minViablePop for extinctionGraceSec counts as extinct.
const (
	minViablePop       = 4
	extinctionGraceSec = 20.0
	warmupSec          = 5.0
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalSec float64
	windows     []telemetry.WindowStats
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel, each on its own simulation.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	fitness := make([]float64, len(fe.seeds))
	quality := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r := fe.runSimulation(x, s)
			quality[idx] = computeQuality(r.windows)
			fitness[idx] = computeFitness(r.survivalSec, quality[idx])
		}(i, seed)
	}
	wg.Wait()

	fe.mu.Lock()
	fe.lastQuality = stat.Mean(quality, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runSimulation executes one headless run until extinction or maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Telemetry.StatsWindow = fe.statsWindow

	var result runResult
	s, err := sim.New(cfg, sim.Options{
		Seed: seed,
		OnWindow: func(w telemetry.WindowStats) {
			result.windows = append(result.windows, w)
		},
	})
	if err != nil {
		return result
	}
	defer s.Close()

	dt := cfg.Physics.DT
	var belowSec float64

	for s.Tick() < fe.maxTicks {
		s.Step(dt)
		if s.Time() < warmupSec {
			continue
		}

		pop := s.Population()
		if pop == 0 {
			result.survivalSec = s.Time()
			return result
		}
		if pop < minViablePop {
			belowSec += dt
			if belowSec >= extinctionGraceSec {
				result.survivalSec = s.Time()
				return result
			}
		} else {
			belowSec = 0
		}
	}

	result.survivalSec = s.Time()
	return result
}

// computeFitness combines survival and quality (lower = better).
// Survival dominates; quality adds up to 50% to separate configs that both
// survive the full run.
func computeFitness(survivalSec, quality float64) float64 {
	return -(survivalSec * (1.0 + 0.5*quality))
}

// Quality component weights.
const (
	qualityWeightDiversity = 0.6
	qualityWeightStability = 0.4

	qualityWarmupWindows = 2
)

// computeQuality scores a run in [0, 1]: how evenly strategies share the
// population and how steady the population size is.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var diversitySum float64
	var counted int
	pops := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Population < minViablePop {
			continue
		}
		pops = append(pops, float64(w.Population))
		diversitySum += evenness(w)
		counted++
	}
	if counted == 0 {
		return 0
	}

	diversity := diversitySum / float64(counted)

	stability := 0.0
	if len(pops) >= 2 {
		c := cv(pops)
		stability = math.Exp(-c * c)
	}

	return clamp01(qualityWeightDiversity*diversity + qualityWeightStability*stability)
}

// evenness is the Shannon entropy of the strategy shares normalized by its
// maximum, 1 when every strategy holds the same share.
func evenness(w telemetry.WindowStats) float64 {
	if w.Population == 0 {
		return 0
	}
	shares := make([]float64, strategy.Count)
	for _, s := range strategy.All() {
		shares[s] = float64(w.Count(s)) / float64(w.Population)
	}
	return stat.Entropy(shares) / math.Log(float64(strategy.Count))
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
