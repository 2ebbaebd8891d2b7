package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_HuntBreakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{
			WindowEndTick:     int32(i * 600),
			PredationAttempts: 10,
			Kills:             2,
			KillRate:          0.2,
		})
	}

	bookmarks := bd.Check(WindowStats{
		WindowEndTick:     3000,
		PredationAttempts: 10,
		Kills:             8,
		KillRate:          0.8,
	})
	if !hasBookmark(bookmarks, BookmarkHuntBreakthrough) {
		t.Error("expected hunt_breakthrough bookmark")
	}
}

func TestBookmarkDetector_GrazerCrash(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Grazers: 100, Hunters: 10})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Grazers: 50, Hunters: 10})
	if !hasBookmark(bookmarks, BookmarkGrazerCrash) {
		t.Error("expected grazer_crash bookmark")
	}

	// Peak resets after a crash.
	bookmarks = bd.Check(WindowStats{WindowEndTick: 3600, Grazers: 45, Hunters: 10})
	if hasBookmark(bookmarks, BookmarkGrazerCrash) {
		t.Error("crash fired twice against the old peak")
	}
}

func TestBookmarkDetector_HunterRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Grazers: 100, Hunters: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 2400, Grazers: 100, Hunters: 10})
	if !hasBookmark(bookmarks, BookmarkHunterRecovery) {
		t.Error("expected hunter_recovery bookmark")
	}
}

func TestBookmarkDetector_FloorRescue(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEndTick: 600, Grazers: 30})
	bookmarks := bd.Check(WindowStats{WindowEndTick: 1200, Grazers: 5, FloorSpawns: 3})
	if !hasBookmark(bookmarks, BookmarkFloorRescue) {
		t.Error("expected floor_rescue bookmark")
	}

	bookmarks = bd.Check(WindowStats{WindowEndTick: 1800, Grazers: 5, FloorSpawns: 3})
	if hasBookmark(bookmarks, BookmarkFloorRescue) {
		t.Error("floor_rescue fired on consecutive windows")
	}
}

func TestBookmarkDetector_StableEcosystem(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 12; i++ {
		bookmarks := bd.Check(WindowStats{
			WindowEndTick: int32(i * 600),
			Grazers:       100,
			Hunters:       20,
			Cannibals:     4,
		})
		if hasBookmark(bookmarks, BookmarkStableEcosystem) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("stable_ecosystem fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_RecentOrder(t *testing.T) {
	bd := NewBookmarkDetector(5)
	for i := 1; i <= 7; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i)})
	}

	got := bd.recent(3)
	if len(got) != 3 {
		t.Fatalf("recent(3) returned %d windows", len(got))
	}
	for i, want := range []int32{5, 6, 7} {
		if got[i].WindowEndTick != want {
			t.Errorf("recent(3)[%d] = %d, want %d", i, got[i].WindowEndTick, want)
		}
	}
}
