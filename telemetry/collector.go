package telemetry

import "github.com/pthm-cable/dilemma/strategy"

// Collector accumulates events within time windows and produces WindowStats.
// Windows are measured in simulated seconds, so a variable tick duration
// still yields evenly spaced rows.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int64
	windowStartTime float64

	// Event counters for current window
	births       [strategy.Count]int
	deaths       [strategy.Count]int
	starved      int
	oldAge       int
	mutualCoop   int
	mutualDefect int
	exploits     int
	cooperations int
	defections   int
	foodEaten    int
	foodExpired  int
}

// NewCollector creates a new stats collector.
// A non-positive window disables flushing.
func NewCollector(windowDurationSec float64) *Collector {
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordBirth records an offspring of strategy s.
func (c *Collector) RecordBirth(s strategy.Strategy) {
	if s.Valid() {
		c.births[s]++
	}
}

// RecordDeath records the removal of an agent of strategy s.
func (c *Collector) RecordDeath(s strategy.Strategy, cause DeathCause) {
	if s.Valid() {
		c.deaths[s]++
	}
	switch cause {
	case DeathStarvation:
		c.starved++
	case DeathOldAge:
		c.oldAge++
	}
}

// RecordRound records the actions taken in one round.
func (c *Collector) RecordRound(a, b strategy.Action) {
	switch Classify(a, b) {
	case OutcomeMutualCooperation:
		c.mutualCoop++
	case OutcomeMutualDefection:
		c.mutualDefect++
	default:
		c.exploits++
	}
	for _, act := range [2]strategy.Action{a, b} {
		if act == strategy.Cooperate {
			c.cooperations++
		} else {
			c.defections++
		}
	}
}

// RecordFoodEaten records a consumed food item.
func (c *Collector) RecordFoodEaten() {
	c.foodEaten++
}

// RecordFoodExpired records a food item that timed out.
func (c *Collector) RecordFoodExpired() {
	c.foodExpired++
}

// ShouldFlush returns true if the current window is complete.
func (c *Collector) ShouldFlush(simTime float64) bool {
	if c.windowDurationSec <= 0 {
		return false
	}
	return simTime-c.windowStartTime >= c.windowDurationSec-1e-9
}

// Flush computes stats for the completed window and resets counters.
// agents describes the live population at window end.
func (c *Collector) Flush(tick int64, simTime float64, agents []AgentSample, foodCount int) (WindowStats, []StrategyStats) {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      simTime,
		Population:      len(agents),
		DeathsStarved:   c.starved,
		DeathsOldAge:    c.oldAge,
		MutualCoop:      c.mutualCoop,
		MutualDefect:    c.mutualDefect,
		Exploitations:   c.exploits,
		Rounds:          c.mutualCoop + c.mutualDefect + c.exploits,
		FoodEaten:       c.foodEaten,
		FoodExpired:     c.foodExpired,
		FoodCount:       foodCount,
	}
	if actions := c.cooperations + c.defections; actions > 0 {
		stats.CoopRate = float64(c.cooperations) / float64(actions)
	}

	var counts [strategy.Count]int
	resources := make([]float64, 0, len(agents))
	ages := make([]float64, 0, len(agents))
	scores := make([]float64, 0, len(agents))
	for _, a := range agents {
		if a.Strategy.Valid() {
			counts[a.Strategy]++
		}
		resources = append(resources, a.Resources)
		ages = append(ages, a.Age)
		scores = append(scores, a.Score)
	}
	stats.setCounts(counts)
	for i := range c.births {
		stats.Births += c.births[i]
		stats.Deaths += c.deaths[i]
	}

	stats.ResourcesMean, stats.ResourcesStd, stats.ResourcesP10, stats.ResourcesP50, stats.ResourcesP90 =
		ComputeResourceStats(resources)
	stats.AgeMean = meanOf(ages)
	stats.ScoreMean = meanOf(scores)

	breakdown := c.strategyBreakdown(tick, agents, counts)

	c.reset(tick, simTime)
	return stats, breakdown
}

func (c *Collector) strategyBreakdown(tick int64, agents []AgentSample, counts [strategy.Count]int) []StrategyStats {
	rows := make([]StrategyStats, 0, strategy.Count)
	for _, s := range strategy.All() {
		if counts[s] == 0 && c.births[s] == 0 && c.deaths[s] == 0 {
			continue
		}
		var resources, scores, ages []float64
		var coop, actions int
		for _, a := range agents {
			if a.Strategy != s {
				continue
			}
			resources = append(resources, a.Resources)
			scores = append(scores, a.Score)
			ages = append(ages, a.Age)
			coop += a.Cooperations
			actions += a.Cooperations + a.Defections
		}
		row := StrategyStats{
			WindowEndTick: tick,
			Strategy:      s.String(),
			Count:         counts[s],
			Births:        c.births[s],
			Deaths:        c.deaths[s],
			ResourcesMean: meanOf(resources),
			ScoreMean:     meanOf(scores),
			AgeMean:       meanOf(ages),
		}
		if actions > 0 {
			row.CoopRate = float64(coop) / float64(actions)
		}
		rows = append(rows, row)
	}
	return rows
}

func (c *Collector) reset(tick int64, simTime float64) {
	*c = Collector{
		windowDurationSec: c.windowDurationSec,
		windowStartTick:   tick,
		windowStartTime:   simTime,
	}
}

// Reset clears counters and restarts the window at time zero.
func (c *Collector) Reset() {
	c.reset(0, 0)
}

// WindowDurationSec returns the configured window length.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}
