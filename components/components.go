// Package components defines ECS components for the simulation.
package components

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dilemma/memory"
	"github.com/pthm-cable/dilemma/strategy"
)

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity in world units per second.
type Velocity struct {
	X, Y float64
}

// Agent holds identity and heritable traits.
type Agent struct {
	ID         uint32
	Strategy   strategy.Strategy // fixed at birth, copied to offspring
	Generation int               // founders are 0
	ParentID   uint32            // 0 for founders
}

// Resources tracks an agent's position in the resource economy.
type Resources struct {
	Value float64 // bounded below by the death threshold
	Age   float64 // seconds alive
	Alive bool
}

// Ledger holds diagnostic counters. Nothing in the simulation reads them back.
type Ledger struct {
	Score        float64
	Interactions int
	Cooperations int
	Defections   int
}

// Encounter records the outcome of recent rounds. It gates how often an
// agent may play and feeds the flee and chase forces.
type Encounter struct {
	LastTick    int64 // tick of the most recent round
	LastPartner uint32
	HasPartner  bool

	Harmer    Position // where the last agent that hurt us stood
	HasHarmer bool
	Victim    ecs.Entity // generation-checked, may refer to a dead agent
	HasVictim bool
}

// Mind bundles what an agent remembers.
type Mind struct {
	Memory  *memory.Store  // per-opponent histories, owned by this agent
	Private strategy.State // shared across all opponents
}

// Food is a consumable item lying in the world.
type Food struct {
	Value float64
	TTL   float64 // seconds until it expires
}
