package game

import (
	"log/slog"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	stats := s.collector.Flush(s.tick, s.sample())
	perfStats := s.perfCollector.Stats()
	s.lastStats = &stats

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.outputManager != nil {
		if err := s.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := s.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range s.bookmarkDetector.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if s.outputManager != nil {
			if err := s.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
		s.saveSnapshot(&bm)
	}
}

// sample measures the live population for a stats window.
func (s *Simulation) sample() telemetry.Sample {
	var smp telemetry.Sample
	query := s.agentFilter.Query()
	for query.Next() {
		_, _, _, _, vitals, org := query.Get()
		if !vitals.Alive {
			continue
		}
		smp.Add(org.Variant, vitals.Fraction(), org.Genome, org.Generation)
		s.lifetimeTracker.UpdateSurvivalTime(org.ID, s.tick, s.tuning.DT)
	}
	return smp
}

// periodicSnapshot saves a snapshot every telemetry.snapshot_every seconds.
func (s *Simulation) periodicSnapshot() {
	every := s.cfg.Derived.SnapshotTick
	if every <= 0 || s.tick%every != 0 {
		return
	}
	s.saveSnapshot(nil)
}

// saveSnapshot writes a snapshot to the snapshot directory, or to the output
// directory when only that is set.
func (s *Simulation) saveSnapshot(bookmark *telemetry.Bookmark) {
	if s.snapshotDir == "" && s.outputManager == nil {
		return
	}

	snapshot := s.CreateSnapshot(bookmark)

	var (
		path string
		err  error
	)
	if s.snapshotDir != "" {
		path, err = telemetry.SaveSnapshot(snapshot, s.snapshotDir)
	} else {
		path, err = s.outputManager.WriteSnapshot(snapshot)
	}
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", s.tick)
}

// CreateSnapshot builds a serializable snapshot of the live population.
func (s *Simulation) CreateSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RunID:       s.runID,
		RNGSeed:     s.seed,
		WorldWidth:  s.terrain.Width(),
		WorldHeight: s.terrain.Height(),
		Tick:        s.tick,
		Counts:      make(map[string]int, components.VariantCount),
		Bookmark:    bookmark,
	}
	for _, v := range components.Variants() {
		snapshot.Counts[v.String()] = s.counts[v]
	}

	query := s.agentFilter.Query()
	for query.Next() {
		pos, vel, rot, body, vitals, org := query.Get()
		if !vitals.Alive {
			continue
		}

		snapshot.Agents = append(snapshot.Agents, telemetry.AgentState{
			ID:         org.ID,
			Variant:    org.Variant,
			X:          pos.X,
			Y:          pos.Y,
			VelX:       vel.X,
			VelY:       vel.Y,
			Angle:      rot.Angle,
			Size:       body.Size,
			Energy:     vitals.Energy,
			MaxEnergy:  vitals.MaxEnergy,
			Age:        vitals.Age,
			MaxAge:     vitals.MaxAge,
			ReproTimer: org.ReproTimer,
			Generation: org.Generation,
			Genome:     org.Genome.Clone(),
			Lifetime:   s.lifetimeTracker.Get(org.ID).ToJSON(),
		})
	}

	return snapshot
}
