package sim

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dilemma/strategy"
)

// AgentView is a read-only copy of one agent.
type AgentView struct {
	ID           uint32
	ParentID     uint32
	Generation   int
	Strategy     strategy.Strategy
	X, Y         float64
	VX, VY       float64
	Resources    float64
	Age          float64
	Score        float64
	Interactions int
	Cooperations int
	Defections   int
	Fleeing      bool
	Chasing      bool
	LastPartner  uint32 // 0 before the first round
}

// FoodView is a read-only copy of one food item.
type FoodView struct {
	X, Y  float64
	Value float64
	TTL   float64
}

// Snapshot is a consistent copy of the world between ticks. It shares no
// memory with the simulation.
type Snapshot struct {
	Width, Height float64
	Stats         Stats
	Agents        []AgentView // ascending identity order
	Food          []FoodView
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	var snap Snapshot
	s.SnapshotInto(&snap)
	return snap
}

// SnapshotInto copies the current state into dst, reusing its slices.
func (s *Simulation) SnapshotInto(dst *Snapshot) {
	dst.Width = s.cfg.Derived.WorldW
	dst.Height = s.cfg.Derived.WorldH
	dst.Stats = s.stats

	dst.Agents = dst.Agents[:0]
	for _, e := range s.agents {
		dst.Agents = append(dst.Agents, s.agentView(e))
	}

	dst.Food = dst.Food[:0]
	for _, f := range s.food {
		pos := s.posMap.Get(f)
		item := s.foodMap.Get(f)
		dst.Food = append(dst.Food, FoodView{X: pos.X, Y: pos.Y, Value: item.Value, TTL: item.TTL})
	}
}

// Agent returns the view of the live agent with the given identity.
func (s *Simulation) Agent(id uint32) (AgentView, bool) {
	for _, e := range s.agents {
		if s.agentMap.Get(e).ID == id {
			return s.agentView(e), true
		}
	}
	return AgentView{}, false
}

// Memory returns what the agent with identity id remembers about opponent,
// oldest first. Unknown agents and unmet opponents yield an empty slice.
func (s *Simulation) Memory(id, opponent uint32) []strategy.Action {
	for _, e := range s.agents {
		_, _, agent, _, _, _, mind := s.agentMapper.Get(e)
		if agent.ID == id {
			return mind.Memory.Get(opponent)
		}
	}
	return []strategy.Action{}
}

func (s *Simulation) agentView(e ecs.Entity) AgentView {
	pos, vel, agent, res, ledger, enc, _ := s.agentMapper.Get(e)
	return AgentView{
		ID:           agent.ID,
		ParentID:     agent.ParentID,
		Generation:   agent.Generation,
		Strategy:     agent.Strategy,
		X:            pos.X,
		Y:            pos.Y,
		VX:           vel.X,
		VY:           vel.Y,
		Resources:    res.Value,
		Age:          res.Age,
		Score:        ledger.Score,
		Interactions: ledger.Interactions,
		Cooperations: ledger.Cooperations,
		Defections:   ledger.Defections,
		Fleeing:      enc.HasHarmer,
		Chasing:      enc.HasVictim,
		LastPartner:  enc.LastPartner,
	}
}
