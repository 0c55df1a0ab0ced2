package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseEconomy)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseInteractions)
		time.Sleep(200 * time.Microsecond)
		if d := pc.EndTick(); d <= 0 {
			t.Errorf("EndTick returned %v, want positive", d)
		}
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if _, ok := stats.PhaseAvg[PhaseEconomy]; !ok {
		t.Error("expected economy phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseInteractions]; !ok {
		t.Error("expected interactions phase to be tracked")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v exceeds max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseMovement)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseFood)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseInteractions)
		time.Sleep(500 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseInteractions] <= stats.PhasePct[PhaseFood] {
		t.Errorf("expected interactions (%v%%) > food (%v%%)",
			stats.PhasePct[PhaseInteractions], stats.PhasePct[PhaseFood])
	}

	row := stats.ToCSV(42)
	if row.WindowEnd != 42 || row.InteractionsPct != stats.PhasePct[PhaseInteractions] {
		t.Errorf("csv row does not mirror stats: %+v", row)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}
}
