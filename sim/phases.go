package sim

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dilemma/systems"
	"github.com/pthm-cable/dilemma/telemetry"
)

// updateEconomy ages every agent, drains maintenance and density costs and
// resolves deaths and births. Offspring are appended to the order but are not
// processed again this phase.
func (s *Simulation) updateEconomy(dt float64) {
	params := systems.EconomyParamsFromConfig(s.cfg)

	s.order = append(s.order[:0], s.agents...)
	for _, e := range s.order {
		if !s.world.Alive(e) {
			continue
		}
		switch systems.UpdateEconomy(s.resMap.Get(e), s.alive, params, dt, s.src) {
		case systems.FateStarved:
			s.destroy(e, telemetry.DeathStarvation)
		case systems.FateOldAge:
			s.destroy(e, telemetry.DeathOldAge)
		case systems.FateReproduce:
			s.reproduce(e)
		}
	}
	s.compactAgents()
}

// updateMovement sums the steering forces of every agent, smooths the
// velocity toward the result and integrates the position.
func (s *Simulation) updateMovement(dt float64) {
	m := &s.cfg.Movement
	w, h := s.cfg.Derived.WorldW, s.cfg.Derived.WorldH

	s.rebuildFoodGrid()

	for _, e := range s.agents {
		pos, vel, _, _, _, enc, _ := s.agentMapper.Get(e)
		here := systems.Vec(*pos)

		desired := systems.WanderForce(s.src, m.SpeedRandom)

		if m.SpeedFood != 0 {
			if target, ok := s.nearestFood(here, m.SenseRadius); ok {
				desired = r2.Add(desired, systems.SeekForce(here, target, m.SpeedFood))
			}
		}

		if enc.HasHarmer {
			threat := systems.Vec(enc.Harmer)
			if r2.Norm(r2.Sub(here, threat)) > m.FleeDecayDistance {
				enc.HasHarmer = false
			} else {
				desired = r2.Add(desired, systems.FleeForce(here, threat, m.SpeedFlee))
			}
		}

		if enc.HasVictim {
			if !s.world.Alive(enc.Victim) {
				enc.HasVictim = false
				enc.Victim = ecs.Entity{}
			} else {
				target := systems.Vec(*s.posMap.Get(enc.Victim))
				desired = r2.Add(desired, systems.SeekForce(here, target, m.SpeedChase))
			}
		}

		systems.Steer(vel, desired, m, dt)
		systems.Integrate(pos, vel, w, h, dt)
	}
}

// nearestFood returns the closest food item within radius. Ties go to the
// older item.
func (s *Simulation) nearestFood(here r2.Vec, radius float64) (r2.Vec, bool) {
	s.neighbors = s.foodGrid.QueryRadiusInto(s.neighbors[:0], here.X, here.Y, radius)
	best := -1
	var bestDist float64
	for _, n := range s.neighbors {
		if best < 0 || n.DistSq < bestDist || (n.DistSq == bestDist && n.Index < best) {
			best, bestDist = n.Index, n.DistSq
		}
	}
	if best < 0 {
		return r2.Vec{}, false
	}
	return systems.Vec(*s.posMap.Get(s.food[best])), true
}

// updateInteractions plays a round for every ready pair within interaction
// distance. Pairs are visited as (i, j) with i < j in ascending identity
// order, which makes the outcome independent of grid layout.
func (s *Simulation) updateInteractions() {
	ic := &s.cfg.Interaction
	params := systems.RoundParams{
		Tick:            s.tick,
		ErrorRate:       ic.ErrorRate,
		MemoryErrorRate: ic.MemoryErrorRate,
		PayoffScale:     s.cfg.PayoffScale(),
	}
	distSq := ic.Distance * ic.Distance

	s.rebuildAgentGrid()

	for i, e := range s.agents {
		if !systems.Ready(s.encMap.Get(e), s.tick, ic.Cooldown) {
			continue
		}
		pos := s.posMap.Get(e)
		s.neighbors = s.agentGrid.QueryRadiusInto(s.neighbors[:0], pos.X, pos.Y, ic.Distance)
		slices.SortFunc(s.neighbors, func(a, b systems.Neighbor) int {
			return cmp.Compare(a.Index, b.Index)
		})

		for _, n := range s.neighbors {
			if n.Index <= i || n.DistSq >= distSq {
				continue
			}
			if !systems.Ready(s.encMap.Get(e), s.tick, ic.Cooldown) {
				break
			}
			other := s.agents[n.Index]
			if !systems.Ready(s.encMap.Get(other), s.tick, ic.Cooldown) {
				continue
			}

			res := systems.PlayRound(s.player(e), s.player(other), params, s.src)
			s.rounds++
			s.collector.RecordRound(res.ActionA, res.ActionB)
			s.opts.Metrics.RecordRound(res.ActionA, res.ActionB)
		}
	}
}

func (s *Simulation) player(e ecs.Entity) systems.Player {
	pos, _, agent, res, ledger, enc, mind := s.agentMapper.Get(e)
	return systems.Player{
		Entity:    e,
		Agent:     agent,
		Pos:       pos,
		Res:       res,
		Ledger:    ledger,
		Encounter: enc,
		Mind:      mind,
	}
}

// updateFood expires old items, spawns new ones and lets agents pick items
// up. Each item goes to the earliest-spawned agent within pickup range.
func (s *Simulation) updateFood(dt float64) {
	fc := &s.cfg.Food

	kept := s.food[:0]
	for _, f := range s.food {
		if systems.AgeFood(s.foodMap.Get(f), dt) {
			s.world.RemoveEntity(f)
			s.collector.RecordFoodExpired()
			continue
		}
		kept = append(kept, f)
	}
	s.food = kept

	w, h := s.cfg.Derived.WorldW, s.cfg.Derived.WorldH
	for n := s.spawner.Due(fc.SpawnRate, dt, len(s.food), fc.MaxItems); n > 0; n-- {
		x := s.src.Float64() * w
		y := s.src.Float64() * h
		s.spawnFood(x, y)
	}

	// The agent grid was built during interactions and positions have not
	// moved since.
	reach := s.cfg.Derived.PickupRange
	kept = s.food[:0]
	for _, f := range s.food {
		pos := s.posMap.Get(f)
		s.neighbors = s.agentGrid.QueryRadiusInto(s.neighbors[:0], pos.X, pos.Y, reach)
		first := -1
		for _, n := range s.neighbors {
			if first < 0 || n.Index < first {
				first = n.Index
			}
		}
		if first < 0 {
			kept = append(kept, f)
			continue
		}
		s.resMap.Get(s.agents[first]).Value += s.foodMap.Get(f).Value
		s.world.RemoveEntity(f)
		s.collector.RecordFoodEaten()
	}
	s.food = kept
}

func (s *Simulation) rebuildAgentGrid() {
	s.agentGrid.Clear()
	for i, e := range s.agents {
		pos := s.posMap.Get(e)
		s.agentGrid.Insert(i, pos.X, pos.Y)
	}
}

func (s *Simulation) rebuildFoodGrid() {
	s.foodGrid.Clear()
	for i, f := range s.food {
		pos := s.posMap.Get(f)
		s.foodGrid.Insert(i, pos.X, pos.Y)
	}
}
