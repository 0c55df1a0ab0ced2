package sim

import (
	"log/slog"

	"github.com/pthm-cable/dilemma/telemetry"
)

// flushTelemetry publishes live metrics every tick and, when a stats window
// completes, logs it, writes it out and checks it for bookmarks.
func (s *Simulation) flushTelemetry() {
	s.opts.Metrics.SetPopulation(s.stats.PerStrategy, s.stats.FoodCount)

	if !s.collector.ShouldFlush(s.time) {
		return
	}

	stats, breakdown := s.collector.Flush(s.tick, s.time, s.agentSamples(), len(s.food))
	perfStats := s.perf.Stats()

	if s.opts.OnWindow != nil {
		s.opts.OnWindow(stats)
	}

	if s.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.output != nil {
		if err := s.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := s.output.WriteStrategies(breakdown); err != nil {
			slog.Error("failed to write strategies", "error", err)
		}
		if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.opts.LogStats {
			bm.LogBookmark()
		}
		if s.output != nil {
			if err := s.output.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// agentSamples collects the per-agent inputs of window aggregation.
func (s *Simulation) agentSamples() []telemetry.AgentSample {
	samples := make([]telemetry.AgentSample, 0, s.alive)
	for _, e := range s.agents {
		_, _, agent, res, ledger, _, _ := s.agentMapper.Get(e)
		samples = append(samples, telemetry.AgentSample{
			Strategy:     agent.Strategy,
			Resources:    res.Value,
			Age:          res.Age,
			Score:        ledger.Score,
			Cooperations: ledger.Cooperations,
			Defections:   ledger.Defections,
		})
	}
	return samples
}
