package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHuntBreakthrough BookmarkType = "hunt_breakthrough"
	BookmarkFloorRescue      BookmarkType = "floor_rescue"
	BookmarkHunterRecovery   BookmarkType = "hunter_recovery"
	BookmarkGrazerCrash      BookmarkType = "grazer_crash"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `json:"type" csv:"type"`
	Tick        int32        `json:"tick" csv:"tick"`
	Description string       `json:"description" csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// stableWindows is how many consecutive calm windows mark a stable ecosystem.
const stableWindows = 5

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentHunterMin    int // minimum hunter count since the last recovery
	recentGrazerPeak   int // peak grazer count since the last crash
	stableWindowsCount int // consecutive windows with stable populations
	lastFloorSpawns    int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < stableWindows {
		historySize = stableWindows
	}
	return &BookmarkDetector{
		history:         make([]WindowStats, historySize),
		historySize:     historySize,
		recentHunterMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		for _, check := range []func(WindowStats) *Bookmark{
			bd.checkHuntBreakthrough,
			bd.checkFloorRescue,
			bd.checkHunterRecovery,
			bd.checkGrazerCrash,
			bd.checkStableEcosystem,
		} {
			if b := check(stats); b != nil {
				bookmarks = append(bookmarks, *b)
			}
		}
	}

	bd.addToHistory(stats)

	if bd.recentHunterMin < 0 || stats.Hunters < bd.recentHunterMin {
		bd.recentHunterMin = stats.Hunters
	}
	if stats.Grazers > bd.recentGrazerPeak {
		bd.recentGrazerPeak = stats.Grazers
	}
	bd.lastFloorSpawns = stats.FloorSpawns

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n of the latest windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	n = min(n, count)
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkHuntBreakthrough(stats WindowStats) *Bookmark {
	history := bd.recent(bd.historySize)
	if len(history) < 3 {
		return nil
	}

	var totalKills, totalAttempts int
	for _, h := range history {
		totalKills += h.Kills
		totalAttempts += h.PredationAttempts
	}
	if totalAttempts == 0 || stats.PredationAttempts == 0 {
		return nil
	}

	avgKillRate := float64(totalKills) / float64(totalAttempts)
	if avgKillRate == 0 {
		return nil
	}

	if stats.KillRate > avgKillRate*2.0 && stats.Kills >= 3 {
		return &Bookmark{
			Type:        BookmarkHuntBreakthrough,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Kill rate %.2f is %.1fx average (%.2f)", stats.KillRate, stats.KillRate/avgKillRate, avgKillRate),
		}
	}
	return nil
}

// checkFloorRescue fires on the first window that needed floor spawns after
// one that did not.
func (bd *BookmarkDetector) checkFloorRescue(stats WindowStats) *Bookmark {
	if stats.FloorSpawns == 0 || bd.lastFloorSpawns > 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkFloorRescue,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Population floors spawned %d founders", stats.FloorSpawns),
	}
}

func (bd *BookmarkDetector) checkHunterRecovery(stats WindowStats) *Bookmark {
	if bd.recentHunterMin < 1 || bd.recentHunterMin > 3 {
		return nil
	}

	if stats.Hunters >= bd.recentHunterMin*3 && stats.Hunters >= 6 {
		oldMin := bd.recentHunterMin
		bd.recentHunterMin = stats.Hunters

		return &Bookmark{
			Type:        BookmarkHunterRecovery,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Hunter population recovered from %d to %d", oldMin, stats.Hunters),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkGrazerCrash(stats WindowStats) *Bookmark {
	if bd.recentGrazerPeak == 0 {
		return nil
	}

	drop := 1.0 - float64(stats.Grazers)/float64(bd.recentGrazerPeak)
	if drop > 0.30 && stats.Grazers < bd.recentGrazerPeak-10 {
		oldPeak := bd.recentGrazerPeak
		bd.recentGrazerPeak = stats.Grazers

		return &Bookmark{
			Type:        BookmarkGrazerCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Grazers crashed %.0f%% from peak %d to %d", drop*100, oldPeak, stats.Grazers),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	if stats.Grazers < 10 || stats.Hunters < 3 || stats.Cannibals < 1 {
		bd.stableWindowsCount = 0
		return nil
	}

	history := bd.recent(4)
	if len(history) < 4 {
		return nil
	}

	grazers := make([]float64, len(history))
	hunters := make([]float64, len(history))
	for i, h := range history {
		grazers[i] = float64(h.Grazers)
		hunters[i] = float64(h.Hunters)
	}

	// Squared coefficient of variation below 0.04 means CV < 0.2.
	if squaredCV(grazers) < 0.04 && squaredCV(hunters) < 0.04 {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == stableWindows {
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Stable ecosystem with %d grazers, %d hunters, %d cannibals", stats.Grazers, stats.Hunters, stats.Cannibals),
		}
	}
	return nil
}

func squaredCV(values []float64) float64 {
	mean, variance := stat.PopMeanVariance(values, nil)
	if mean == 0 {
		return 0
	}
	return variance / (mean * mean)
}
