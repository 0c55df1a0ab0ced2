package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/dilemma/components"
	"github.com/pthm-cable/dilemma/memory"
	"github.com/pthm-cable/dilemma/rng"
	"github.com/pthm-cable/dilemma/strategy"
)

func newPlayer(id uint32, s strategy.Strategy, x float64) Player {
	return Player{
		Agent:     &components.Agent{ID: id, Strategy: s},
		Pos:       &components.Position{X: x, Y: 0},
		Res:       &components.Resources{Value: 100, Alive: true},
		Ledger:    &components.Ledger{},
		Encounter: &components.Encounter{},
		Mind:      &components.Mind{Memory: memory.NewStore(memory.DefaultCapacity), Private: strategy.NewState()},
	}
}

func quietParams(tick int64) RoundParams {
	return RoundParams{Tick: tick, PayoffScale: 1}
}

func TestPayoffs(t *testing.T) {
	tests := []struct {
		a, b   strategy.Action
		pa, pb float64
	}{
		{strategy.Cooperate, strategy.Cooperate, 3, 3},
		{strategy.Cooperate, strategy.Defect, -2, 5},
		{strategy.Defect, strategy.Cooperate, 5, -2},
		{strategy.Defect, strategy.Defect, -1, -1},
	}
	for _, tt := range tests {
		pa, pb := Payoffs(tt.a, tt.b, 1)
		if pa != tt.pa || pb != tt.pb {
			t.Errorf("Payoffs(%v,%v) = (%v,%v), want (%v,%v)", tt.a, tt.b, pa, pb, tt.pa, tt.pb)
		}
	}

	pa, pb := Payoffs(strategy.Cooperate, strategy.Defect, 0.5)
	if pa != -1 || pb != 2.5 {
		t.Errorf("scaled payoffs = (%v,%v), want (-1,2.5)", pa, pb)
	}
}

func TestPlayRound_CooperatorVsDefector(t *testing.T) {
	ac := newPlayer(1, strategy.AlwaysCooperate, 0)
	ad := newPlayer(2, strategy.AlwaysDefect, 10)

	res := PlayRound(ac, ad, quietParams(7), &rng.Sequence{})

	if res.ActionA != strategy.Cooperate || res.ActionB != strategy.Defect {
		t.Fatalf("actions = (%v,%v), want (C,D)", res.ActionA, res.ActionB)
	}
	if ac.Res.Value != 98 || ad.Res.Value != 105 {
		t.Errorf("resources = (%v,%v), want (98,105)", ac.Res.Value, ad.Res.Value)
	}
	if ac.Ledger.Score != -2 || ad.Ledger.Score != 5 {
		t.Errorf("scores = (%v,%v), want (-2,5)", ac.Ledger.Score, ad.Ledger.Score)
	}
	if ac.Ledger.Cooperations != 1 || ad.Ledger.Defections != 1 {
		t.Errorf("counters not updated: %+v %+v", ac.Ledger, ad.Ledger)
	}
	if ac.Ledger.Interactions != 1 || ad.Ledger.Interactions != 1 {
		t.Errorf("interaction counts = (%d,%d), want (1,1)", ac.Ledger.Interactions, ad.Ledger.Interactions)
	}

	// Each side remembers what the other did.
	if got := ac.Mind.Memory.Get(2); len(got) != 1 || got[0] != strategy.Defect {
		t.Errorf("cooperator memory of defector = %v, want [D]", got)
	}
	if got := ad.Mind.Memory.Get(1); len(got) != 1 || got[0] != strategy.Cooperate {
		t.Errorf("defector memory of cooperator = %v, want [C]", got)
	}

	if ac.Encounter.LastTick != 7 || ac.Encounter.LastPartner != 2 || !ac.Encounter.HasPartner {
		t.Errorf("cooperator encounter = %+v", *ac.Encounter)
	}

	// The loser flees from where the harmer stood; the harmer chases.
	if !ac.Encounter.HasHarmer || ac.Encounter.Harmer != *ad.Pos {
		t.Errorf("cooperator harmer = %+v, want %+v", ac.Encounter.Harmer, *ad.Pos)
	}
	if !ad.Encounter.HasVictim {
		t.Error("defector should have a victim")
	}
	if ad.Encounter.HasHarmer || ac.Encounter.HasVictim {
		t.Error("winner should not record a harmer and loser should not record a victim")
	}
}

func TestPlayRound_TitForTatRetaliatesNextRound(t *testing.T) {
	tft := newPlayer(1, strategy.TitForTat, 0)
	ad := newPlayer(2, strategy.AlwaysDefect, 1)
	src := &rng.Sequence{}

	first := PlayRound(tft, ad, quietParams(0), src)
	second := PlayRound(tft, ad, quietParams(1), src)

	if first.ActionA != strategy.Cooperate {
		t.Errorf("first round TFT = %v, want C", first.ActionA)
	}
	if second.ActionA != strategy.Defect {
		t.Errorf("second round TFT = %v, want D", second.ActionA)
	}
	// -2 then -1
	if math.Abs(tft.Res.Value-97) > 1e-9 {
		t.Errorf("TFT resources = %v, want 97", tft.Res.Value)
	}
}

func TestPlayRound_WSLSStateUpdated(t *testing.T) {
	wsls := newPlayer(1, strategy.WinStayLoseShift, 0)
	ad := newPlayer(2, strategy.AlwaysDefect, 1)
	src := &rng.Sequence{}

	PlayRound(wsls, ad, quietParams(0), src)
	if wsls.Mind.Private.LastAction != strategy.Cooperate || wsls.Mind.Private.LastPayoff != -2 {
		t.Fatalf("state after sucker = %+v", wsls.Mind.Private)
	}
	res := PlayRound(wsls, ad, quietParams(1), src)
	if res.ActionA != strategy.Defect {
		t.Errorf("WSLS after loss = %v, want D", res.ActionA)
	}

	// Non-WSLS agents keep their initial state.
	if ad.Mind.Private != strategy.NewState() {
		t.Errorf("defector private state changed: %+v", ad.Mind.Private)
	}
}

func TestPlayRound_ExecutionNoise(t *testing.T) {
	ac := newPlayer(1, strategy.AlwaysCooperate, 0)
	ac2 := newPlayer(2, strategy.AlwaysCooperate, 1)
	// a's noise fires, b's does not, memory noise never fires.
	src := &rng.Sequence{Values: []float64{0.0, 0.9, 0.9, 0.9}}

	p := quietParams(0)
	p.ErrorRate = 0.5
	p.MemoryErrorRate = 0.5
	res := PlayRound(ac, ac2, p, src)

	if res.ActionA != strategy.Defect || res.ActionB != strategy.Cooperate {
		t.Errorf("actions = (%v,%v), want (D,C)", res.ActionA, res.ActionB)
	}
	if got := ac2.Mind.Memory.Get(1); got[0] != strategy.Defect {
		t.Errorf("partner should observe the executed action, got %v", got)
	}
}

func TestPlayRound_MemoryNoise(t *testing.T) {
	ac := newPlayer(1, strategy.AlwaysCooperate, 0)
	ac2 := newPlayer(2, strategy.AlwaysCooperate, 1)
	// a misremembers b, b remembers correctly.
	src := &rng.Sequence{Values: []float64{0.0, 0.9}}

	p := quietParams(0)
	p.MemoryErrorRate = 0.5
	res := PlayRound(ac, ac2, p, src)

	if res.PayoffA != 3 || res.PayoffB != 3 {
		t.Errorf("memory noise must not change payoffs, got (%v,%v)", res.PayoffA, res.PayoffB)
	}
	if got := ac.Mind.Memory.Get(2); got[0] != strategy.Defect {
		t.Errorf("a should misremember b as D, got %v", got)
	}
	if got := ac2.Mind.Memory.Get(1); got[0] != strategy.Cooperate {
		t.Errorf("b should remember a as C, got %v", got)
	}
}

func TestReady(t *testing.T) {
	fresh := &components.Encounter{}
	if !Ready(fresh, 0, 30) {
		t.Error("agent that never played should be ready")
	}

	played := &components.Encounter{LastTick: 10, HasPartner: true}
	tests := []struct {
		now  int64
		want bool
	}{
		{10, false},
		{39, false},
		{40, true},
		{100, true},
	}
	for _, tt := range tests {
		if got := Ready(played, tt.now, 30); got != tt.want {
			t.Errorf("Ready(now=%d) = %v, want %v", tt.now, got, tt.want)
		}
	}

	if !Ready(played, 10, 0) {
		t.Error("zero cooldown should always be ready")
	}
}
