package telemetry

import (
	"testing"

	"github.com/pthm-cable/dilemma/strategy"
)

func window(tick int64, counts map[strategy.Strategy]int) WindowStats {
	var arr [strategy.Count]int
	total := 0
	for s, n := range counts {
		arr[s] = n
		total += n
	}
	s := WindowStats{WindowEndTick: tick, Population: total}
	s.setCounts(arr)
	return s
}

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, b := range bms {
		if b.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_StrategyExtinct(t *testing.T) {
	bd := NewBookmarkDetector(0.75, 0.5)

	bd.Check(window(600, map[strategy.Strategy]int{strategy.AlwaysCooperate: 5, strategy.AlwaysDefect: 5}))
	bms := bd.Check(window(1200, map[strategy.Strategy]int{strategy.AlwaysDefect: 8}))

	if !hasBookmark(bms, BookmarkStrategyExtinct) {
		t.Fatalf("expected extinction bookmark, got %+v", bms)
	}
	for _, b := range bms {
		if b.Type == BookmarkStrategyExtinct && b.Tick != 1200 {
			t.Errorf("bookmark tick = %d, want 1200", b.Tick)
		}
	}

	// A strategy that was already absent does not go extinct again.
	bms = bd.Check(window(1800, map[strategy.Strategy]int{strategy.AlwaysDefect: 8}))
	if hasBookmark(bms, BookmarkStrategyExtinct) {
		t.Errorf("unexpected repeated extinction bookmark: %+v", bms)
	}
}

func TestBookmarkDetector_StrategyDominantOnce(t *testing.T) {
	bd := NewBookmarkDetector(0.75, 0.5)

	balanced := map[strategy.Strategy]int{strategy.TitForTat: 10, strategy.AlwaysDefect: 10}
	dominated := map[strategy.Strategy]int{strategy.TitForTat: 40, strategy.AlwaysDefect: 5}

	if bms := bd.Check(window(600, balanced)); hasBookmark(bms, BookmarkStrategyDominant) {
		t.Errorf("balanced population flagged dominant: %+v", bms)
	}
	if bms := bd.Check(window(1200, dominated)); !hasBookmark(bms, BookmarkStrategyDominant) {
		t.Errorf("expected dominance bookmark, got %+v", bms)
	}
	if bms := bd.Check(window(1800, dominated)); hasBookmark(bms, BookmarkStrategyDominant) {
		t.Errorf("dominance should trigger once while it persists: %+v", bms)
	}
	bd.Check(window(2400, balanced))
	if bms := bd.Check(window(3000, dominated)); !hasBookmark(bms, BookmarkStrategyDominant) {
		t.Errorf("dominance should trigger again after losing it: %+v", bms)
	}
}

func TestBookmarkDetector_SmallPopulationNotDominant(t *testing.T) {
	bd := NewBookmarkDetector(0.75, 0.5)
	if bms := bd.Check(window(600, map[strategy.Strategy]int{strategy.Random: 3})); hasBookmark(bms, BookmarkStrategyDominant) {
		t.Errorf("tiny population flagged dominant: %+v", bms)
	}
}

func TestBookmarkDetector_PopulationCrash(t *testing.T) {
	bd := NewBookmarkDetector(0.75, 0.5)

	bd.Check(window(600, map[strategy.Strategy]int{strategy.TitForTat: 50, strategy.AlwaysDefect: 50}))
	bd.Check(window(1200, map[strategy.Strategy]int{strategy.TitForTat: 40, strategy.AlwaysDefect: 40}))

	bms := bd.Check(window(1800, map[strategy.Strategy]int{strategy.TitForTat: 20, strategy.AlwaysDefect: 20}))
	if !hasBookmark(bms, BookmarkPopulationCrash) {
		t.Fatalf("expected crash bookmark for 100 -> 40, got %+v", bms)
	}

	// The peak resets after a crash.
	bms = bd.Check(window(2400, map[strategy.Strategy]int{strategy.TitForTat: 18, strategy.AlwaysDefect: 18}))
	if hasBookmark(bms, BookmarkPopulationCrash) {
		t.Errorf("unexpected second crash bookmark: %+v", bms)
	}
}
