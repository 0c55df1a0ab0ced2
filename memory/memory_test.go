package memory

import (
	"testing"

	"github.com/pthm-cable/dilemma/strategy"
)

func TestHistoryEvictsOldest(t *testing.T) {
	s := NewStore(DefaultCapacity)

	// 5 defections followed by 10 cooperations: only the cooperations survive.
	var recorded []strategy.Action
	for i := 0; i < 15; i++ {
		a := strategy.Cooperate
		if i < 5 {
			a = strategy.Defect
		}
		recorded = append(recorded, a)
		s.Record(7, a)
	}

	got := s.Get(7)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	want := recorded[5:]
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHistoryOrderMostRecentLast(t *testing.T) {
	h := NewHistory(3)
	seq := []strategy.Action{strategy.Cooperate, strategy.Defect, strategy.Cooperate, strategy.Defect}
	for _, a := range seq {
		h.Record(a)
	}

	got := h.Actions()
	want := seq[1:]
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
	if last, ok := h.Last(); !ok || last != strategy.Defect {
		t.Errorf("Last() = %v, %v; want D, true", last, ok)
	}
	if h.Len() > h.Cap() {
		t.Errorf("len %d exceeds capacity %d", h.Len(), h.Cap())
	}
}

func TestGetUnknownOpponent(t *testing.T) {
	s := NewStore(DefaultCapacity)
	got := s.Get(42)
	if got == nil {
		t.Fatal("Get on unseen opponent returned nil")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
	if v := s.View(42); v.Recent == nil || len(v.Recent) != 0 {
		t.Errorf("View on unseen opponent = %+v", v)
	}
}

func TestEvictedDefectIsForgotten(t *testing.T) {
	s := NewStore(DefaultCapacity)
	s.Record(7, strategy.Defect)

	v := s.View(7)
	if got := strategy.Decide(strategy.GrimTrigger, v, strategy.NewState(), nil); got != strategy.Defect {
		t.Fatalf("grim trigger with defect in memory = %v, want D", got)
	}

	for i := 0; i < DefaultCapacity; i++ {
		s.Record(7, strategy.Cooperate)
	}
	v = s.View(7)
	for _, a := range v.Recent {
		if a == strategy.Defect {
			t.Fatalf("defect should have been evicted, history = %v", v.Recent)
		}
	}
	if got := strategy.Decide(strategy.GrimTrigger, v, strategy.NewState(), nil); got != strategy.Cooperate {
		t.Errorf("grim trigger after eviction = %v, want C", got)
	}
}

func TestStoreIsPerOpponent(t *testing.T) {
	s := NewStore(DefaultCapacity)
	s.Record(1, strategy.Defect)
	s.Record(2, strategy.Cooperate)

	if got := s.Get(1); len(got) != 1 || got[0] != strategy.Defect {
		t.Errorf("opponent 1 = %v", got)
	}
	if got := s.Get(2); len(got) != 1 || got[0] != strategy.Cooperate {
		t.Errorf("opponent 2 = %v", got)
	}
	if s.Known() != 2 {
		t.Errorf("Known() = %d, want 2", s.Known())
	}

	s.Forget(1)
	if len(s.Get(1)) != 0 {
		t.Error("Forget did not clear opponent 1")
	}
}
