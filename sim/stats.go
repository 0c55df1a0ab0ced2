package sim

import "github.com/pthm-cable/dilemma/strategy"

// Stats holds population aggregates computed at the end of a tick.
type Stats struct {
	Tick        int64
	Time        float64
	Population  int
	PerStrategy [strategy.Count]int

	MeanResources float64
	MeanAge       float64
	MeanScore     float64

	// CooperationRate is the share of Cooperate among all actions the live
	// agents have taken. Zero before any round.
	CooperationRate float64

	FoodCount int

	// Cumulative since the last reset
	Births int
	Deaths int
	Rounds int
}

// Share returns the fraction of the population playing st.
func (s Stats) Share(st strategy.Strategy) float64 {
	if s.Population == 0 || !st.Valid() {
		return 0
	}
	return float64(s.PerStrategy[st]) / float64(s.Population)
}

// updateStats recomputes the aggregates over all live agents.
func (s *Simulation) updateStats() {
	st := Stats{
		Tick:      s.tick,
		Time:      s.time,
		FoodCount: len(s.food),
		Births:    s.births,
		Deaths:    s.deaths,
		Rounds:    s.rounds,
	}

	var resources, age, score float64
	var coop, actions int

	query := s.agentFilter.Query()
	for query.Next() {
		agent, res, ledger := query.Get()
		st.Population++
		if agent.Strategy.Valid() {
			st.PerStrategy[agent.Strategy]++
		}
		resources += res.Value
		age += res.Age
		score += ledger.Score
		coop += ledger.Cooperations
		actions += ledger.Cooperations + ledger.Defections
	}

	if st.Population > 0 {
		n := float64(st.Population)
		st.MeanResources = resources / n
		st.MeanAge = age / n
		st.MeanScore = score / n
	}
	if actions > 0 {
		st.CooperationRate = float64(coop) / float64(actions)
	}
	s.stats = st
}
