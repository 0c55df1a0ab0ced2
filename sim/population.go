package sim

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dilemma/components"
	"github.com/pthm-cable/dilemma/memory"
	"github.com/pthm-cable/dilemma/strategy"
	"github.com/pthm-cable/dilemma/systems"
	"github.com/pthm-cable/dilemma/telemetry"
)

// seedPopulation spawns the founders: InitialPerStrategy agents for every
// enabled strategy, at uniform random positions.
func (s *Simulation) seedPopulation() {
	if len(s.cfg.Strategies.Enabled) == 0 {
		slog.Warn("no strategies enabled, population stays empty")
		return
	}
	w, h := s.cfg.Derived.WorldW, s.cfg.Derived.WorldH
	for _, st := range s.cfg.Strategies.Enabled {
		for i := 0; i < s.cfg.Population.InitialPerStrategy; i++ {
			x := s.src.Float64() * w
			y := s.src.Float64() * h
			s.spawnAgent(st, x, y, 0, 0)
		}
	}
}

// SpawnAgent adds a founder of strategy st at (x, y), clamped to the world,
// and returns its identity.
func (s *Simulation) SpawnAgent(st strategy.Strategy, x, y float64) uint32 {
	_, id := s.spawnAgent(st, x, y, 0, 0)
	return id
}

// spawnAgent creates an agent with fresh resources, empty memory and the
// initial strategy state. Identities increase monotonically and are never
// reused within a run.
func (s *Simulation) spawnAgent(st strategy.Strategy, x, y float64, generation int, parent uint32) (ecs.Entity, uint32) {
	s.nextID++
	id := s.nextID

	x, y = systems.ClampToWorld(x, y, s.cfg.Derived.WorldW, s.cfg.Derived.WorldH)
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	agent := components.Agent{ID: id, Strategy: st, Generation: generation, ParentID: parent}
	res := components.Resources{Value: s.cfg.Resources.Initial, Alive: true}
	ledger := components.Ledger{}
	enc := components.Encounter{}
	mind := components.Mind{
		Memory:  memory.NewStore(s.cfg.Interaction.MemoryCapacity),
		Private: strategy.NewState(),
	}

	e := s.agentMapper.NewEntity(&pos, &vel, &agent, &res, &ledger, &enc, &mind)
	s.agents = append(s.agents, e)
	s.alive++
	return e, id
}

// reproduce spawns one offspring of parent near the parent's position.
// The parent has already paid the reproduction cost.
func (s *Simulation) reproduce(parent ecs.Entity) {
	pos := *s.posMap.Get(parent)
	info := *s.agentMap.Get(parent)

	offset := s.cfg.Reproduction.SpawnOffset
	x := pos.X + (s.src.Float64()*2-1)*offset
	y := pos.Y + (s.src.Float64()*2-1)*offset
	s.spawnAgent(info.Strategy, x, y, info.Generation+1, info.ID)

	s.births++
	s.collector.RecordBirth(info.Strategy)
	s.opts.Metrics.RecordBirth(info.Strategy)
}

// destroy removes an agent from the world. Handles held by other agents
// become stale and fail world.Alive from now on.
func (s *Simulation) destroy(e ecs.Entity, cause telemetry.DeathCause) {
	st := s.agentMap.Get(e).Strategy
	s.world.RemoveEntity(e)

	s.alive--
	s.deaths++
	s.collector.RecordDeath(st, cause)
	s.opts.Metrics.RecordDeath(st, cause)
}

// compactAgents drops removed entities from the processing order.
func (s *Simulation) compactAgents() {
	kept := s.agents[:0]
	for _, e := range s.agents {
		if s.world.Alive(e) {
			kept = append(kept, e)
		}
	}
	s.agents = kept
}

// spawnFood drops a food item at (x, y).
func (s *Simulation) spawnFood(x, y float64) ecs.Entity {
	x, y = systems.ClampToWorld(x, y, s.cfg.Derived.WorldW, s.cfg.Derived.WorldH)
	pos := components.Position{X: x, Y: y}
	food := components.Food{Value: s.cfg.Food.Value, TTL: s.cfg.Food.TTL}
	e := s.foodMapper.NewEntity(&pos, &food)
	s.food = append(s.food, e)
	return e
}

// SpawnFood drops a food item with the configured value and lifetime.
func (s *Simulation) SpawnFood(x, y float64) {
	s.spawnFood(x, y)
}
