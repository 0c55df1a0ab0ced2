// Package sim owns the simulated world: the agent and food population, the
// fixed-order tick and the read-only snapshots handed to viewers.
package sim

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dilemma/components"
	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/rng"
	"github.com/pthm-cable/dilemma/systems"
	"github.com/pthm-cable/dilemma/telemetry"
)

// Options configures a Simulation beyond its Config.
type Options struct {
	Seed      int64
	Source    rng.Source // replaces the seeded source when set
	LogStats  bool       // log each telemetry window
	OutputDir string     // CSV output directory, empty disables
	Metrics   *telemetry.Metrics

	// OnWindow is called with every completed telemetry window.
	OnWindow func(telemetry.WindowStats)
}

// Simulation is a single-threaded agent-based iterated prisoner's dilemma.
// Agents are processed in ascending identity order in every phase, so a
// given seed always replays the same run.
type Simulation struct {
	cfg  *config.Config
	opts Options
	src  rng.Source

	world *ecs.World

	agentMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Agent,
		components.Resources,
		components.Ledger,
		components.Encounter,
		components.Mind,
	]
	agentFilter *ecs.Filter3[components.Agent, components.Resources, components.Ledger]
	foodMapper  *ecs.Map2[components.Position, components.Food]

	posMap   *ecs.Map1[components.Position]
	agentMap *ecs.Map1[components.Agent]
	resMap   *ecs.Map1[components.Resources]
	encMap   *ecs.Map1[components.Encounter]
	foodMap  *ecs.Map1[components.Food]

	// Live entities in ascending identity (spawn) order.
	agents []ecs.Entity
	food   []ecs.Entity

	agentGrid *systems.SpatialGrid
	foodGrid  *systems.SpatialGrid
	spawner   systems.FoodSpawner

	// Scratch buffers reused across ticks.
	order     []ecs.Entity
	neighbors []systems.Neighbor

	tick   int64
	time   float64
	nextID uint32
	alive  int
	births int
	deaths int
	rounds int
	stats  Stats

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
}

// New builds a simulation from cfg and seeds the founding population.
// cfg is read, never written; callers that want to tweak it should Clone.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	s := &Simulation{opts: opts, output: output}
	s.init(cfg)

	if output != nil {
		slog.Info("output enabled", "dir", output.Dir())
	}
	return s, nil
}

// Reset discards every agent, food item and counter and starts over from
// cfg with a fresh source seeded by seed.
func (s *Simulation) Reset(cfg *config.Config, seed int64) {
	s.opts.Seed = seed
	s.opts.Source = nil
	s.init(cfg)
	slog.Info("simulation reset", "seed", seed, "population", s.alive)
}

func (s *Simulation) init(cfg *config.Config) {
	s.cfg = cfg
	s.src = s.opts.Source
	if s.src == nil {
		s.src = rng.New(s.opts.Seed)
	}

	world := ecs.NewWorld()
	s.world = world
	s.agentMapper = ecs.NewMap7[
		components.Position,
		components.Velocity,
		components.Agent,
		components.Resources,
		components.Ledger,
		components.Encounter,
		components.Mind,
	](world)
	s.agentFilter = ecs.NewFilter3[components.Agent, components.Resources, components.Ledger](world)
	s.foodMapper = ecs.NewMap2[components.Position, components.Food](world)
	s.posMap = ecs.NewMap1[components.Position](world)
	s.agentMap = ecs.NewMap1[components.Agent](world)
	s.resMap = ecs.NewMap1[components.Resources](world)
	s.encMap = ecs.NewMap1[components.Encounter](world)
	s.foodMap = ecs.NewMap1[components.Food](world)

	s.agents = s.agents[:0]
	s.food = s.food[:0]
	w, h := cfg.Derived.WorldW, cfg.Derived.WorldH
	s.agentGrid = systems.NewSpatialGrid(w, h, cfg.Derived.GridCellSize)
	s.foodGrid = systems.NewSpatialGrid(w, h, cfg.Derived.GridCellSize)
	s.spawner.Reset()

	s.tick, s.time = 0, 0
	s.nextID = 0
	s.alive, s.births, s.deaths, s.rounds = 0, 0, 0, 0

	s.collector = telemetry.NewCollector(cfg.Telemetry.StatsWindow)
	s.perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	s.bookmarks = telemetry.NewBookmarkDetector(cfg.Telemetry.DominanceShare, cfg.Telemetry.CrashDropPercent)

	s.seedPopulation()
	s.updateStats()
}

// Step advances the simulation by one tick of dt seconds. A non-positive or
// non-finite dt is ignored.
func (s *Simulation) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}

	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseEconomy)
	s.updateEconomy(dt)

	s.perf.StartPhase(telemetry.PhaseMovement)
	s.updateMovement(dt)

	s.perf.StartPhase(telemetry.PhaseInteractions)
	s.updateInteractions()

	s.perf.StartPhase(telemetry.PhaseFood)
	s.updateFood(dt)

	s.tick++
	s.time += dt

	s.perf.StartPhase(telemetry.PhaseStats)
	s.updateStats()

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.opts.Metrics.ObserveTick(s.perf.EndTick(), s.time)
}

// Close flushes and closes telemetry output.
func (s *Simulation) Close() error {
	return s.output.Close()
}

// Config returns the configuration of the current run.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int64 { return s.tick }

// Time returns the simulated seconds since the last reset.
func (s *Simulation) Time() float64 { return s.time }

// Population returns the number of live agents.
func (s *Simulation) Population() int { return s.alive }

// Stats returns the aggregates computed at the end of the last tick.
func (s *Simulation) Stats() Stats { return s.stats }

// Perf returns timing statistics over the recent ticks.
func (s *Simulation) Perf() telemetry.PerfStats { return s.perf.Stats() }

// RecordFrame feeds frame timing from a graphical front end.
func (s *Simulation) RecordFrame() { s.perf.RecordFrame() }

// Seed returns the seed of the current run.
func (s *Simulation) Seed() int64 { return s.opts.Seed }
