package systems

import "github.com/pthm-cable/dilemma/strategy"

// Canonical payoffs of one round, before scaling.
const (
	Reward     = 3.0  // both cooperate
	Sucker     = -2.0 // cooperated against a defector
	Temptation = 5.0  // defected against a cooperator
	Punishment = -1.0 // both defect
)

// payoffTable is indexed by [own action][opponent action].
var payoffTable = [2][2]float64{
	strategy.Cooperate: {strategy.Cooperate: Reward, strategy.Defect: Sucker},
	strategy.Defect:    {strategy.Cooperate: Temptation, strategy.Defect: Punishment},
}

// Payoffs returns the scaled payoff to each side of a round.
func Payoffs(a, b strategy.Action, scale float64) (pa, pb float64) {
	return payoffTable[a][b] * scale, payoffTable[b][a] * scale
}
