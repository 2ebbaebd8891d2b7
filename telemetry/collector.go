// Package telemetry provides ecosystem health tracking, bookmarking, and snapshots.
package telemetry

import (
	"math"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/genetics"
	"github.com/pthm-cable/terrarium/traits"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births            [components.VariantCount]int
	deaths            [components.VariantCount]int
	sexualBirths      int
	floorSpawns       int
	predationAttempts int
	kills             int
	cannibalKills     int
	attacksLanded     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordPredation records one resolved predation attempt.
func (c *Collector) RecordPredation(attacker components.Variant, success bool) {
	c.predationAttempts++
	if !success {
		return
	}
	c.kills++
	if attacker == components.Cannibal {
		c.cannibalKills++
	}
}

// RecordAttack records a hunting attack reward.
func (c *Collector) RecordAttack() {
	c.attacksLanded++
}

// RecordBirth records an offspring joining the population.
func (c *Collector) RecordBirth(v components.Variant, sexual bool) {
	c.births[v]++
	if sexual {
		c.sexualBirths++
	}
}

// RecordFloorSpawn records a founder added to hold a population floor.
func (c *Collector) RecordFloorSpawn(v components.Variant) {
	c.floorSpawns++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(v components.Variant) {
	c.deaths[v]++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the live population measured at the end of a window.
type Sample struct {
	Counts      [components.VariantCount]int
	Energy      [components.VariantCount][]float64 // energy fraction of max
	Traits      map[string][]float64
	Generations []float64
}

// sampledTraits are the genome traits summarized per window.
var sampledTraits = []string{traits.Size, traits.Speed, traits.Strength, traits.Perception}

// Add records one live agent.
func (s *Sample) Add(v components.Variant, energyFraction float32, g *genetics.Genome, generation uint32) {
	if s.Traits == nil {
		s.Traits = make(map[string][]float64, len(sampledTraits))
	}
	s.Counts[v]++
	s.Energy[v] = append(s.Energy[v], float64(energyFraction))
	for _, name := range sampledTraits {
		s.Traits[name] = append(s.Traits[name], float64(g.Get(name, traits.Neutral)))
	}
	s.Generations = append(s.Generations, float64(generation))
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample Sample) WindowStats {
	var killRate float64
	if c.predationAttempts > 0 {
		killRate = float64(c.kills) / float64(c.predationAttempts)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Grazers:   sample.Counts[components.Grazer],
		Hunters:   sample.Counts[components.Hunter],
		Cannibals: sample.Counts[components.Cannibal],

		GrazerBirths:   c.births[components.Grazer],
		HunterBirths:   c.births[components.Hunter],
		CannibalBirths: c.births[components.Cannibal],
		GrazerDeaths:   c.deaths[components.Grazer],
		HunterDeaths:   c.deaths[components.Hunter],
		CannibalDeaths: c.deaths[components.Cannibal],
		SexualBirths:   c.sexualBirths,
		FloorSpawns:    c.floorSpawns,

		PredationAttempts: c.predationAttempts,
		Kills:             c.kills,
		CannibalKills:     c.cannibalKills,
		KillRate:          killRate,
		AttacksLanded:     c.attacksLanded,
	}

	stats.GrazerEnergyMean, stats.GrazerEnergyP10, stats.GrazerEnergyP50, stats.GrazerEnergyP90 =
		ComputeEnergyStats(sample.Energy[components.Grazer])
	stats.HunterEnergyMean, stats.HunterEnergyP10, stats.HunterEnergyP50, stats.HunterEnergyP90 =
		ComputeEnergyStats(sample.Energy[components.Hunter])
	stats.CannibalEnergyMean, stats.CannibalEnergyP10, stats.CannibalEnergyP50, stats.CannibalEnergyP90 =
		ComputeEnergyStats(sample.Energy[components.Cannibal])

	stats.SizeMean, stats.SizeStd = ComputeTraitStats(sample.Traits[traits.Size])
	stats.SpeedMean, stats.SpeedStd = ComputeTraitStats(sample.Traits[traits.Speed])
	stats.StrengthMean, stats.StrengthStd = ComputeTraitStats(sample.Traits[traits.Strength])
	stats.PerceptionMean, stats.PerceptionStd = ComputeTraitStats(sample.Traits[traits.Perception])

	stats.GenerationMean, _ = ComputeTraitStats(sample.Generations)
	for _, g := range sample.Generations {
		stats.GenerationMax = max(stats.GenerationMax, int(g))
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [components.VariantCount]int{}
	c.deaths = [components.VariantCount]int{}
	c.sexualBirths = 0
	c.floorSpawns = 0
	c.predationAttempts = 0
	c.kills = 0
	c.cannibalKills = 0
	c.attacksLanded = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
