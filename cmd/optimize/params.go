package main

import (
	"github.com/pthm-cable/dilemma/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters: the
// economy and encounter knobs that decide whether a mixed population lasts.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Economy
			{Name: "maintenance_cost", Path: "resources.maintenance_cost", Min: 0.5, Max: 6.0, Default: 2.0},
			{Name: "overpopulation_factor", Path: "population.overpopulation_factor", Min: 0.005, Max: 0.2, Default: 0.05},
			// Reproduction
			{Name: "repro_threshold", Path: "reproduction.threshold", Min: 140, Max: 400, Default: 200},
			{Name: "repro_cost", Path: "reproduction.cost", Min: 40, Max: 150, Default: 100},
			// Food
			{Name: "food_spawn_rate", Path: "food.spawn_rate", Min: 1, Max: 20, Default: 6},
			{Name: "food_value", Path: "food.value", Min: 5, Max: 60, Default: 25},
			// Encounters
			{Name: "cooldown", Path: "interaction.cooldown", Min: 5, Max: 120, Default: 30},
			{Name: "interaction_distance", Path: "interaction.distance", Min: 10, Max: 60, Default: 30},
			// Lifecycle
			{Name: "max_age", Path: "lifecycle.max_age", Min: 30, Max: 300, Default: 120},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg and recomputes derived
// values. Order must match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Resources.MaintenanceCost = c[0]
	cfg.Population.OverpopulationFactor = c[1]
	cfg.Reproduction.Threshold = c[2]
	cfg.Reproduction.Cost = c[3]
	cfg.Food.SpawnRate = c[4]
	cfg.Food.Value = c[5]
	cfg.Interaction.Cooldown = int64(c[6] + 0.5)
	cfg.Interaction.Distance = c[7]
	cfg.Lifecycle.MaxAge = c[8]

	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Resources.MaintenanceCost,
		cfg.Population.OverpopulationFactor,
		cfg.Reproduction.Threshold,
		cfg.Reproduction.Cost,
		cfg.Food.SpawnRate,
		cfg.Food.Value,
		float64(cfg.Interaction.Cooldown),
		cfg.Interaction.Distance,
		cfg.Lifecycle.MaxAge,
	}
}
