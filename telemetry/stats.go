package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/dilemma/strategy"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population snapshot at window end
	Population       int `csv:"population"`
	AlwaysCooperate  int `csv:"always_cooperate"`
	AlwaysDefect     int `csv:"always_defect"`
	TitForTat        int `csv:"tit_for_tat"`
	TitForTwoTats    int `csv:"tit_for_two_tats"`
	GrimTrigger      int `csv:"grim_trigger"`
	WinStayLoseShift int `csv:"win_stay_lose_shift"`
	Random           int `csv:"random"`

	// Events during window
	Births         int `csv:"births"`
	Deaths         int `csv:"deaths"`
	DeathsStarved  int `csv:"deaths_starved"`
	DeathsOldAge   int `csv:"deaths_old_age"`
	Rounds         int `csv:"rounds"`
	MutualCoop     int `csv:"mutual_coop"`
	MutualDefect   int `csv:"mutual_defect"`
	Exploitations  int `csv:"exploitations"`
	FoodEaten      int `csv:"food_eaten"`
	FoodExpired    int `csv:"food_expired"`
	FoodCount      int `csv:"food_count"`

	// Fraction of actions taken in the window that were Cooperate
	CoopRate float64 `csv:"coop_rate"`

	// Resource distribution across live agents
	ResourcesMean float64 `csv:"resources_mean"`
	ResourcesStd  float64 `csv:"resources_std"`
	ResourcesP10  float64 `csv:"resources_p10"`
	ResourcesP50  float64 `csv:"resources_p50"`
	ResourcesP90  float64 `csv:"resources_p90"`

	AgeMean   float64 `csv:"age_mean"`
	ScoreMean float64 `csv:"score_mean"`
}

// Count returns the population of one strategy.
func (s WindowStats) Count(st strategy.Strategy) int {
	switch st {
	case strategy.AlwaysCooperate:
		return s.AlwaysCooperate
	case strategy.AlwaysDefect:
		return s.AlwaysDefect
	case strategy.TitForTat:
		return s.TitForTat
	case strategy.TitForTwoTats:
		return s.TitForTwoTats
	case strategy.GrimTrigger:
		return s.GrimTrigger
	case strategy.WinStayLoseShift:
		return s.WinStayLoseShift
	case strategy.Random:
		return s.Random
	default:
		return 0
	}
}

func (s *WindowStats) setCounts(counts [strategy.Count]int) {
	s.AlwaysCooperate = counts[strategy.AlwaysCooperate]
	s.AlwaysDefect = counts[strategy.AlwaysDefect]
	s.TitForTat = counts[strategy.TitForTat]
	s.TitForTwoTats = counts[strategy.TitForTwoTats]
	s.GrimTrigger = counts[strategy.GrimTrigger]
	s.WinStayLoseShift = counts[strategy.WinStayLoseShift]
	s.Random = counts[strategy.Random]
}

// StrategyStats is one row of the per-strategy breakdown of a window.
type StrategyStats struct {
	WindowEndTick int64   `csv:"window_end"`
	Strategy      string  `csv:"strategy"`
	Count         int     `csv:"count"`
	Births        int     `csv:"births"`
	Deaths        int     `csv:"deaths"`
	ResourcesMean float64 `csv:"resources_mean"`
	ScoreMean     float64 `csv:"score_mean"`
	AgeMean       float64 `csv:"age_mean"`
	CoopRate      float64 `csv:"coop_rate"` // lifetime rate of the live agents
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeResourceStats calculates mean, standard deviation and percentiles.
// The standard deviation is the sample (n-1) estimate and is 0 for fewer
// than two values.
func ComputeResourceStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0], values[0], values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// meanOf returns the arithmetic mean, or 0 for an empty slice.
func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("always_cooperate", s.AlwaysCooperate),
		slog.Int("always_defect", s.AlwaysDefect),
		slog.Int("tit_for_tat", s.TitForTat),
		slog.Int("tit_for_two_tats", s.TitForTwoTats),
		slog.Int("grim_trigger", s.GrimTrigger),
		slog.Int("win_stay_lose_shift", s.WinStayLoseShift),
		slog.Int("random", s.Random),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("rounds", s.Rounds),
		slog.Float64("coop_rate", s.CoopRate),
		slog.Float64("resources_mean", s.ResourcesMean),
		slog.Float64("resources_p50", s.ResourcesP50),
		slog.Float64("score_mean", s.ScoreMean),
		slog.Int("food_count", s.FoodCount),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"always_cooperate", s.AlwaysCooperate,
		"always_defect", s.AlwaysDefect,
		"tit_for_tat", s.TitForTat,
		"tit_for_two_tats", s.TitForTwoTats,
		"grim_trigger", s.GrimTrigger,
		"win_stay_lose_shift", s.WinStayLoseShift,
		"random", s.Random,
		"births", s.Births,
		"deaths", s.Deaths,
		"deaths_starved", s.DeathsStarved,
		"deaths_old_age", s.DeathsOldAge,
		"rounds", s.Rounds,
		"mutual_coop", s.MutualCoop,
		"mutual_defect", s.MutualDefect,
		"exploitations", s.Exploitations,
		"coop_rate", s.CoopRate,
		"resources_mean", s.ResourcesMean,
		"resources_std", s.ResourcesStd,
		"resources_p10", s.ResourcesP10,
		"resources_p50", s.ResourcesP50,
		"resources_p90", s.ResourcesP90,
		"age_mean", s.AgeMean,
		"score_mean", s.ScoreMean,
		"food_count", s.FoodCount,
		"food_eaten", s.FoodEaten,
		"food_expired", s.FoodExpired,
	)
}
