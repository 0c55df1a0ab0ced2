// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/dilemma/strategy"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
// A run treats it as immutable; a reset starts over with a new Config.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Physics      PhysicsConfig      `yaml:"physics"`
	Population   PopulationConfig   `yaml:"population"`
	Resources    ResourcesConfig    `yaml:"resources"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Lifecycle    LifecycleConfig    `yaml:"lifecycle"`
	Interaction  InteractionConfig  `yaml:"interaction"`
	Movement     MovementConfig     `yaml:"movement"`
	Food         FoodConfig         `yaml:"food"`
	Strategies   StrategiesConfig   `yaml:"strategies"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Metrics      MetricsConfig      `yaml:"metrics"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
type WorldConfig struct {
	Width  float64 `yaml:"width"`  // 0 = screen width
	Height float64 `yaml:"height"` // 0 = screen height
}

// PhysicsConfig holds tick timing and broad-phase parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`             // default seconds per tick in headless mode
	GridCellSize float64 `yaml:"grid_cell_size"` // 0 = derived from interaction/sense radii
}

// PopulationConfig holds seeding and density parameters.
type PopulationConfig struct {
	InitialPerStrategy   int     `yaml:"initial_per_strategy"`
	CarryingCapacity     int     `yaml:"carrying_capacity"`
	OverpopulationFactor float64 `yaml:"overpopulation_factor"` // drain per excess agent per second
	HardCutoff           bool    `yaml:"hard_cutoff"`           // zero resources above 2x capacity
	MaxAgents            int     `yaml:"max_agents"`            // births refused at this size, 0 = unlimited
}

// ResourcesConfig holds the per-agent resource economy.
type ResourcesConfig struct {
	Initial         float64 `yaml:"initial"`          // founders and offspring start here
	Minimum         float64 `yaml:"minimum"`          // death threshold
	MaintenanceCost float64 `yaml:"maintenance_cost"` // drain per second
}

// ReproductionConfig holds reproduction parameters.
type ReproductionConfig struct {
	Threshold   float64 `yaml:"threshold"`
	Cost        float64 `yaml:"cost"`
	SpawnOffset float64 `yaml:"spawn_offset"` // max jitter of offspring position per axis
}

// LifecycleConfig holds age-based mortality.
type LifecycleConfig struct {
	MaxAge       float64 `yaml:"max_age"`        // seconds, 0 = immortal
	AgeDeathRate float64 `yaml:"age_death_rate"` // death probability per second past max_age
}

// InteractionConfig holds encounter and noise parameters.
type InteractionConfig struct {
	Distance          float64 `yaml:"distance"`
	Cooldown          int64   `yaml:"cooldown"` // ticks
	ErrorRate         float64 `yaml:"error_rate"`
	MemoryErrorRate   float64 `yaml:"memory_error_rate"`
	MemoryCapacity    int     `yaml:"memory_capacity"`
	ScalePayoffs      bool    `yaml:"scale_payoffs"`
	ReferenceCooldown int64   `yaml:"reference_cooldown"`
}

// MovementConfig holds the steering force weights.
type MovementConfig struct {
	MaxSpeed          float64 `yaml:"max_speed"`
	Smoothing         float64 `yaml:"smoothing"` // blend rate toward desired velocity, per second
	SpeedRandom       float64 `yaml:"speed_random"`
	SpeedFood         float64 `yaml:"speed_food"`
	SpeedFlee         float64 `yaml:"speed_flee"`
	SpeedChase        float64 `yaml:"speed_chase"`
	SenseRadius       float64 `yaml:"sense_radius"`
	FleeDecayDistance float64 `yaml:"flee_decay_distance"`
	CreatureRadius    float64 `yaml:"creature_radius"`
}

// FoodConfig holds food spawning parameters.
type FoodConfig struct {
	SpawnRate    float64 `yaml:"spawn_rate"` // items per second
	Value        float64 `yaml:"value"`
	TTL          float64 `yaml:"ttl"` // seconds
	PickupRadius float64 `yaml:"pickup_radius"`
	MaxItems     int     `yaml:"max_items"`
}

// StrategiesConfig selects which strategies are seeded.
type StrategiesConfig struct {
	Enabled []strategy.Strategy `yaml:"enabled"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	DominanceShare      float64 `yaml:"dominance_share"`
	CrashDropPercent    float64 `yaml:"crash_drop_percent"`
}

// MetricsConfig holds the prometheus exporter settings.
type MetricsConfig struct {
	Addr      string `yaml:"addr"` // empty = no HTTP endpoint
	Namespace string `yaml:"namespace"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW       float64 // effective world width
	WorldH       float64 // effective world height
	GridCellSize float64 // effective broad-phase cell size
	PickupRange  float64 // creature radius + pickup radius
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ComputeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after changing fields programmatically.
func (c *Config) ComputeDerived() {
	c.Derived.WorldW = c.World.Width
	if c.Derived.WorldW == 0 {
		c.Derived.WorldW = float64(c.Screen.Width)
	}
	c.Derived.WorldH = c.World.Height
	if c.Derived.WorldH == 0 {
		c.Derived.WorldH = float64(c.Screen.Height)
	}

	c.Derived.PickupRange = c.Movement.CreatureRadius + c.Food.PickupRadius

	cell := c.Physics.GridCellSize
	if cell <= 0 {
		cell = max(c.Interaction.Distance, c.Movement.SenseRadius, c.Derived.PickupRange)
	}
	if cell <= 0 {
		cell = 64
	}
	c.Derived.GridCellSize = cell
}

// field names one numeric parameter for validation messages.
type field struct {
	name  string
	value float64
}

// Validate checks parameter ranges in a fixed order, so the first failure
// reported is stable. Every failure wraps ErrInvalid.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
	}

	if c.Derived.WorldW <= 0 || c.Derived.WorldH <= 0 {
		return invalid("world size must be positive, got %vx%v", c.Derived.WorldW, c.Derived.WorldH)
	}
	if c.Physics.DT <= 0 {
		return invalid("physics.dt must be positive, got %v", c.Physics.DT)
	}
	for _, f := range []field{
		{"interaction.error_rate", c.Interaction.ErrorRate},
		{"interaction.memory_error_rate", c.Interaction.MemoryErrorRate},
	} {
		if f.value < 0 || f.value > 1 {
			return invalid("%s must be in [0,1], got %v", f.name, f.value)
		}
	}
	for _, f := range []field{
		{"resources.maintenance_cost", c.Resources.MaintenanceCost},
		{"population.overpopulation_factor", c.Population.OverpopulationFactor},
		{"reproduction.cost", c.Reproduction.Cost},
		{"lifecycle.age_death_rate", c.Lifecycle.AgeDeathRate},
		{"food.spawn_rate", c.Food.SpawnRate},
		{"movement.max_speed", c.Movement.MaxSpeed},
		{"interaction.distance", c.Interaction.Distance},
	} {
		if f.value < 0 {
			return invalid("%s must not be negative, got %v", f.name, f.value)
		}
	}
	if c.Interaction.MemoryCapacity < 1 {
		return invalid("interaction.memory_capacity must be at least 1, got %d", c.Interaction.MemoryCapacity)
	}
	if c.Interaction.Cooldown < 0 {
		return invalid("interaction.cooldown must not be negative, got %d", c.Interaction.Cooldown)
	}
	if c.Interaction.ScalePayoffs && c.Interaction.ReferenceCooldown <= 0 {
		return invalid("interaction.reference_cooldown must be positive when scale_payoffs is set")
	}
	if c.Reproduction.Threshold <= c.Resources.Minimum {
		return invalid("reproduction.threshold (%v) must exceed resources.minimum (%v)",
			c.Reproduction.Threshold, c.Resources.Minimum)
	}
	for _, s := range c.Strategies.Enabled {
		if !s.Valid() {
			return invalid("unknown strategy tag %d", uint8(s))
		}
	}
	return nil
}

// PayoffScale returns the multiplier applied to every payoff. It is inversely
// proportional to interaction speed so throughput stays comparable across
// cooldown settings.
func (c *Config) PayoffScale() float64 {
	if !c.Interaction.ScalePayoffs || c.Interaction.ReferenceCooldown <= 0 {
		return 1
	}
	cooldown := c.Interaction.Cooldown
	if cooldown < 1 {
		cooldown = 1
	}
	return float64(cooldown) / float64(c.Interaction.ReferenceCooldown)
}

// Clone returns a deep copy, so a caller can tweak parameters for a reset
// without touching the config of the running simulation.
func (c *Config) Clone() *Config {
	out := *c
	out.Strategies.Enabled = append([]strategy.Strategy(nil), c.Strategies.Enabled...)
	return &out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
