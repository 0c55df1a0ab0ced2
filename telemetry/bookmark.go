package telemetry

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/dilemma/strategy"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkStrategyExtinct  BookmarkType = "strategy_extinct"
	BookmarkStrategyDominant BookmarkType = "strategy_dominant"
	BookmarkPopulationCrash  BookmarkType = "population_crash"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	dominanceShare   float64
	crashDropPercent float64

	previous    WindowStats
	hasPrevious bool

	recentPeak int                  // peak population since the last crash
	dominant   [strategy.Count]bool // strategies currently flagged as dominant
}

// Small populations fluctuate too much to bookmark.
const (
	minDominantPopulation = 10
	minCrashDrop          = 10
)

// NewBookmarkDetector creates a detector. dominanceShare is the population
// share above which a strategy counts as dominant; crashDropPercent is the
// drop from the recent peak, as a fraction, that counts as a crash.
func NewBookmarkDetector(dominanceShare, crashDropPercent float64) *BookmarkDetector {
	if dominanceShare <= 0 || dominanceShare > 1 {
		dominanceShare = 0.75
	}
	if crashDropPercent <= 0 || crashDropPercent >= 1 {
		crashDropPercent = 0.5
	}
	return &BookmarkDetector{
		dominanceShare:   dominanceShare,
		crashDropPercent: crashDropPercent,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.hasPrevious {
		bookmarks = append(bookmarks, bd.checkExtinctions(stats)...)
	}
	bookmarks = append(bookmarks, bd.checkDominance(stats)...)
	if b := bd.checkCrash(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.previous = stats
	bd.hasPrevious = true
	if stats.Population > bd.recentPeak {
		bd.recentPeak = stats.Population
	}
	return bookmarks
}

func (bd *BookmarkDetector) checkExtinctions(stats WindowStats) []Bookmark {
	var out []Bookmark
	for _, s := range strategy.All() {
		before := bd.previous.Count(s)
		if before > 0 && stats.Count(s) == 0 {
			out = append(out, Bookmark{
				Type:        BookmarkStrategyExtinct,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("%s went extinct (was %d)", s, before),
			})
		}
	}
	return out
}

func (bd *BookmarkDetector) checkDominance(stats WindowStats) []Bookmark {
	var out []Bookmark
	for _, s := range strategy.All() {
		share := 0.0
		if stats.Population > 0 {
			share = float64(stats.Count(s)) / float64(stats.Population)
		}
		isDominant := stats.Population >= minDominantPopulation && share >= bd.dominanceShare
		if isDominant && !bd.dominant[s] {
			out = append(out, Bookmark{
				Type:        BookmarkStrategyDominant,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("%s holds %.0f%% of %d agents", s, share*100, stats.Population),
			})
		}
		bd.dominant[s] = isDominant
	}
	return out
}

func (bd *BookmarkDetector) checkCrash(stats WindowStats) *Bookmark {
	if bd.recentPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Population)/float64(bd.recentPeak)
	if drop > bd.crashDropPercent && stats.Population < bd.recentPeak-minCrashDrop {
		oldPeak := bd.recentPeak
		bd.recentPeak = stats.Population

		return &Bookmark{
			Type:        BookmarkPopulationCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Population crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Population),
		}
	}
	return nil
}
