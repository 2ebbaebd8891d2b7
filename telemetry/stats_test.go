package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/genetics"
	"github.com/pthm-cable/terrarium/traits"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.0},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	mean, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(p10-0.1) > 0.001 {
		t.Errorf("p10 = %v, want 0.1", p10)
	}
	if math.Abs(p50-0.5) > 0.001 {
		t.Errorf("p50 = %v, want 0.5", p50)
	}
	if math.Abs(p90-0.9) > 0.001 {
		t.Errorf("p90 = %v, want 0.9", p90)
	}
	if values[0] != 1.0 {
		t.Error("input slice was reordered")
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeEnergyStats([]float64{})

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeTraitStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{0.4}, 0.4, 0},
		{"pair", []float64{0, 1}, 0.5, math.Sqrt(0.5)},
		{"constant", []float64{0.3, 0.3, 0.3}, 0.3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := ComputeTraitStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 || math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("got (%v, %v), want (%v, %v)", mean, std, tt.wantMean, tt.wantStd)
			}
		})
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("WindowDurationTicks() = %d, want 10", c.WindowDurationTicks())
	}

	c.RecordBirth(components.Grazer, true)
	c.RecordBirth(components.Hunter, false)
	c.RecordDeath(components.Grazer)
	c.RecordFloorSpawn(components.Cannibal)
	c.RecordPredation(components.Hunter, true)
	c.RecordPredation(components.Hunter, false)
	c.RecordPredation(components.Cannibal, true)
	c.RecordPredation(components.Cannibal, false)
	c.RecordAttack()

	if c.ShouldFlush(9) {
		t.Error("ShouldFlush(9) = true before the window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("ShouldFlush(10) = false after the window elapsed")
	}

	g := genetics.New()
	g.Set(traits.Size, 0.2)
	var sample Sample
	sample.Add(components.Grazer, 0.5, g, 3)
	sample.Add(components.Hunter, 1.0, nil, 7)

	stats := c.Flush(10, sample)

	if stats.Grazers != 1 || stats.Hunters != 1 || stats.Cannibals != 0 || stats.Total() != 2 {
		t.Errorf("counts = %d/%d/%d", stats.Grazers, stats.Hunters, stats.Cannibals)
	}
	if stats.GrazerBirths != 1 || stats.HunterBirths != 1 || stats.SexualBirths != 1 {
		t.Errorf("births = %d/%d sexual %d", stats.GrazerBirths, stats.HunterBirths, stats.SexualBirths)
	}
	if stats.GrazerDeaths != 1 || stats.FloorSpawns != 1 || stats.AttacksLanded != 1 {
		t.Errorf("deaths %d, floor spawns %d, attacks %d", stats.GrazerDeaths, stats.FloorSpawns, stats.AttacksLanded)
	}
	if stats.PredationAttempts != 4 || stats.Kills != 2 || stats.CannibalKills != 1 {
		t.Errorf("predation = %d attempts, %d kills, %d cannibal", stats.PredationAttempts, stats.Kills, stats.CannibalKills)
	}
	if math.Abs(stats.KillRate-0.5) > 1e-9 {
		t.Errorf("KillRate = %v, want 0.5", stats.KillRate)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-6 {
		t.Errorf("SimTimeSec = %v, want 1", stats.SimTimeSec)
	}
	// Missing genome reads as neutral.
	if math.Abs(stats.SizeMean-0.35) > 1e-6 {
		t.Errorf("SizeMean = %v, want 0.35", stats.SizeMean)
	}
	if stats.GenerationMax != 7 || math.Abs(stats.GenerationMean-5) > 1e-9 {
		t.Errorf("generations mean %v max %d", stats.GenerationMean, stats.GenerationMax)
	}

	next := c.Flush(20, Sample{})
	if next.Kills != 0 || next.GrazerBirths != 0 || next.WindowStartTick != 10 {
		t.Errorf("counters not reset: %+v", next)
	}
}
