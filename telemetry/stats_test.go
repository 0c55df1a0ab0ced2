package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/dilemma/strategy"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeResourceStats(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean, std, p10, p50, p90 := ComputeResourceStats(values)

	if math.Abs(mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", mean)
	}
	// Sample standard deviation: sqrt(32/7)
	if math.Abs(std-math.Sqrt(32.0/7.0)) > 1e-9 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(32.0/7.0))
	}
	if math.Abs(p10-3.4) > 1e-9 {
		t.Errorf("p10 = %v, want 3.4", p10)
	}
	if math.Abs(p50-4.5) > 1e-9 {
		t.Errorf("p50 = %v, want 4.5", p50)
	}
	if math.Abs(p90-7.6) > 1e-9 {
		t.Errorf("p90 = %v, want 7.6", p90)
	}

	// Input must not be reordered.
	if values[0] != 2 || values[7] != 9 || values[6] != 7 {
		t.Errorf("input slice was modified: %v", values)
	}
}

func TestComputeResourceStatsSmall(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeResourceStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, _, p50, _ = ComputeResourceStats([]float64{42})
	if mean != 42 || std != 0 || p50 != 42 {
		t.Errorf("single value stats = (%v, %v, %v)", mean, std, p50)
	}
}

func TestWindowStats_Count(t *testing.T) {
	var counts [strategy.Count]int
	for i := range counts {
		counts[i] = i + 1
	}
	var s WindowStats
	s.setCounts(counts)

	for _, st := range strategy.All() {
		if got := s.Count(st); got != counts[st] {
			t.Errorf("Count(%v) = %d, want %d", st, got, counts[st])
		}
	}
	if s.Count(strategy.Strategy(200)) != 0 {
		t.Error("unknown strategy should count zero")
	}
}

func TestClassify(t *testing.T) {
	C, D := strategy.Cooperate, strategy.Defect
	tests := []struct {
		a, b strategy.Action
		want Outcome
	}{
		{C, C, OutcomeMutualCooperation},
		{D, D, OutcomeMutualDefection},
		{C, D, OutcomeExploitation},
		{D, C, OutcomeExploitation},
	}
	for _, tt := range tests {
		if got := Classify(tt.a, tt.b); got != tt.want {
			t.Errorf("Classify(%v,%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
