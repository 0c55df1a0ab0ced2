package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/telemetry"
)

func evenWindow(perStrategy int) telemetry.WindowStats {
	return telemetry.WindowStats{
		Population:       7 * perStrategy,
		AlwaysCooperate:  perStrategy,
		AlwaysDefect:     perStrategy,
		TitForTat:        perStrategy,
		TitForTwoTats:    perStrategy,
		GrimTrigger:      perStrategy,
		WinStayLoseShift: perStrategy,
		Random:           perStrategy,
	}
}

func TestEvenness(t *testing.T) {
	tests := []struct {
		name string
		w    telemetry.WindowStats
		want float64
	}{
		{"all strategies equal", evenWindow(5), 1},
		{"single strategy", telemetry.WindowStats{Population: 20, TitForTat: 20}, 0},
		{"empty", telemetry.WindowStats{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evenness(tt.w); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("evenness = %v, want %v", got, tt.want)
			}
		})
	}

	two := telemetry.WindowStats{Population: 20, TitForTat: 10, AlwaysDefect: 10}
	got := evenness(two)
	want := math.Log(2) / math.Log(7)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("two-way split evenness = %v, want %v", got, want)
	}
}

func TestCV(t *testing.T) {
	if got := cv(nil); got != 0 {
		t.Errorf("cv(nil) = %v, want 0", got)
	}
	if got := cv([]float64{0, 0}); got != 0 {
		t.Errorf("cv of zeros = %v, want 0", got)
	}
	if got := cv([]float64{10, 10, 10}); got != 0 {
		t.Errorf("cv of constant = %v, want 0", got)
	}
	// mean 10, population std 5
	if got := cv([]float64{5, 15}); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("cv = %v, want 0.5", got)
	}
}

func TestComputeQuality(t *testing.T) {
	t.Run("too few windows", func(t *testing.T) {
		windows := []telemetry.WindowStats{evenWindow(5), evenWindow(5)}
		if got := computeQuality(windows); got != 0 {
			t.Errorf("quality = %v, want 0", got)
		}
	})

	t.Run("even and steady", func(t *testing.T) {
		windows := make([]telemetry.WindowStats, 6)
		for i := range windows {
			windows[i] = evenWindow(5)
		}
		if got := computeQuality(windows); math.Abs(got-1) > 1e-9 {
			t.Errorf("quality = %v, want 1", got)
		}
	})

	t.Run("monoculture scores stability only", func(t *testing.T) {
		windows := make([]telemetry.WindowStats, 6)
		for i := range windows {
			windows[i] = telemetry.WindowStats{Population: 30, AlwaysDefect: 30}
		}
		got := computeQuality(windows)
		if math.Abs(got-qualityWeightStability) > 1e-9 {
			t.Errorf("quality = %v, want %v", got, qualityWeightStability)
		}
	})

	t.Run("collapsed windows ignored", func(t *testing.T) {
		windows := []telemetry.WindowStats{
			evenWindow(5), evenWindow(5),
			{Population: 2, TitForTat: 2},
			{},
		}
		if got := computeQuality(windows); got != 0 {
			t.Errorf("quality = %v, want 0", got)
		}
	})
}

func TestComputeFitnessOrdering(t *testing.T) {
	short := computeFitness(100, 1)
	long := computeFitness(200, 0)
	if long >= short {
		t.Errorf("longer survival should score lower: long=%v short=%v", long, short)
	}

	plain := computeFitness(200, 0)
	diverse := computeFitness(200, 1)
	if diverse >= plain {
		t.Errorf("quality should break survival ties: diverse=%v plain=%v", diverse, plain)
	}
	if math.Abs(diverse-(-300)) > 1e-9 {
		t.Errorf("fitness = %v, want -300", diverse)
	}
}

func TestParamVectorRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	if len(def) != pv.Dim() {
		t.Fatalf("default vector has %d values, want %d", len(def), pv.Dim())
	}

	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: roundtrip %v, want %v", pv.Specs[i].Name, back[i], def[i])
		}
	}

	cfg := config.Defaults()
	pv.ApplyToConfig(cfg, def)
	got := pv.ExtractFromConfig(cfg)
	for i := range def {
		if math.Abs(got[i]-def[i]) > 1e-9 {
			t.Errorf("%s: extracted %v, want %v", pv.Specs[i].Name, got[i], def[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config with default params is invalid: %v", err)
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector()
	low := make([]float64, pv.Dim())
	high := make([]float64, pv.Dim())
	for i := range low {
		low[i] = -1e6
		high[i] = 1e6
	}

	for i, v := range pv.Clamp(low) {
		if v != pv.Specs[i].Min {
			t.Errorf("%s: clamp low = %v, want %v", pv.Specs[i].Name, v, pv.Specs[i].Min)
		}
	}
	for i, v := range pv.Clamp(high) {
		if v != pv.Specs[i].Max {
			t.Errorf("%s: clamp high = %v, want %v", pv.Specs[i].Name, v, pv.Specs[i].Max)
		}
	}

	cfg := config.Defaults()
	pv.ApplyToConfig(cfg, low)
	if err := cfg.Validate(); err != nil {
		t.Errorf("config at lower bounds is invalid: %v", err)
	}
}

func TestApplyToConfigRoundsCooldown(t *testing.T) {
	pv := NewParamVector()
	x := pv.DefaultVector()
	x[6] = 12.6

	cfg := config.Defaults()
	pv.ApplyToConfig(cfg, x)
	if cfg.Interaction.Cooldown != 13 {
		t.Errorf("cooldown = %d, want 13", cfg.Interaction.Cooldown)
	}
}

func TestEvaluateShortRun(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 10, []int64{1, 2}, cfg)

	got := fe.Evaluate(pv.DefaultVector())
	want := -10 * cfg.Physics.DT
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("fitness = %v, want %v", got, want)
	}
	if q := fe.LastQuality(); q != 0 {
		t.Errorf("quality = %v, want 0 with no completed windows", q)
	}
	if cfg.Resources.MaintenanceCost != config.Defaults().Resources.MaintenanceCost {
		t.Error("Evaluate modified the base config")
	}
}
