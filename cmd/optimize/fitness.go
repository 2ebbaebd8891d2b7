package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastQuality    float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// A variant held at its floor for collapseGraceSec consecutive seconds
// only survives through rescue spawns and counts as collapsed.
const (
	collapseGraceSec = 30.0
	warmupSec        = 5.0
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before collapse (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
	hallOfFame    *telemetry.HallOfFame
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness    float64
	quality    float64
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runSimulation(x, s)
			if err != nil {
				slog.Error("evaluation run failed", "seed", s, "error", err)
				results[idx] = seedResult{}
				return
			}
			results[idx] = seedResult{
				fitness:    fe.computeFitness(result),
				quality:    fe.computeQuality(result.windowStats),
				hallOfFame: result.hallOfFame,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedHallOfFame *telemetry.HallOfFame

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedHallOfFame = r.hallOfFame
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHallOfFame = bestSeedHallOfFame
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run.
// Runs until grazers or hunters collapse, or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (*runResult, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	sim, err := game.New(game.Options{
		Seed:           seed,
		Config:         cfg,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer sim.Close()

	dt := cfg.World.DT
	graceTicks := int32(collapseGraceSec / dt)
	warmupTicks := int32(warmupSec / dt)
	floors := [components.VariantCount]int{
		components.Grazer: cfg.Population.MinGrazers,
		components.Hunter: cfg.Population.MinHunters,
	}
	var atFloor [components.VariantCount]int32

	for sim.Tick() < fe.maxTicks {
		sim.Step()

		tick := sim.Tick()
		if tick < warmupTicks {
			continue
		}

		counts := sim.Counts()
		for _, v := range []components.Variant{components.Grazer, components.Hunter} {
			if counts[v] <= floors[v] {
				atFloor[v]++
			} else {
				atFloor[v] = 0
			}
			if counts[v] == 0 || atFloor[v] >= graceTicks {
				result.survivalTicks = tick
				result.hallOfFame = sim.HallOfFame()
				return result, nil
			}
		}
	}

	result.survivalTicks = fe.maxTicks
	result.hallOfFame = sim.HallOfFame()
	return result, nil
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% to separate configs with
// similar survival.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survival := float64(r.survivalTicks)
	quality := fe.computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.25
	qualityWeightStability = 0.20
	qualityWeightEnergy    = 0.20
	qualityWeightHunting   = 0.15
	qualityWeightRescue    = 0.20

	qualityWarmupWindows = 3 // skip first N windows
	qualityMinPop        = 3 // exclude windows where grazers or predators < this

	targetGrazerRatio = 3.0  // grazers per predator
	targetEnergy      = 0.5  // median energy fraction
	targetKillRate    = 0.35 // kills per predation attempt
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func (fe *FitnessEvaluator) computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	valid := windows[qualityWarmupWindows:]

	var ratioSum, energySum, huntSum, rescueSum float64
	var ratioCount, huntCount int

	grazerCounts := make([]float64, 0, len(valid))
	predCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		preds := w.Hunters + w.Cannibals
		if w.Grazers < qualityMinPop || preds < qualityMinPop {
			continue
		}

		grazerCounts = append(grazerCounts, float64(w.Grazers))
		predCounts = append(predCounts, float64(preds))

		// 1. Population ratio
		logErr := math.Log(float64(w.Grazers) / float64(preds) / targetGrazerRatio)
		ratioSum += math.Exp(-logErr * logErr)
		ratioCount++

		// 3. Energy health
		grazerH := gaussian(w.GrazerEnergyP50, targetEnergy, 0.2)
		hunterH := gaussian(w.HunterEnergyP50, targetEnergy, 0.2)
		energySum += (grazerH + hunterH) / 2.0

		// 4. Hunting activity
		if w.PredationAttempts > 0 {
			huntSum += gaussian(w.KillRate, targetKillRate, 0.2)
			huntCount++
		}

		// 5. Rescue spawns mean the floors are doing the work
		rescueSum += math.Exp(-float64(w.FloorSpawns) / 3.0)
	}

	if ratioCount == 0 {
		return 0
	}
	n := float64(ratioCount)

	// 2. Population stability (CV across valid windows)
	stabilityScore := 0.0
	if len(grazerCounts) >= 2 {
		cvGrazer := cv(grazerCounts)
		cvPred := cv(predCounts)
		stabilityScore = math.Exp(-(cvGrazer*cvGrazer + cvPred*cvPred))
	}

	huntScore := 0.0
	if huntCount > 0 {
		huntScore = huntSum / float64(huntCount)
	}

	quality := qualityWeightRatio*ratioSum/n +
		qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/n +
		qualityWeightHunting*huntScore +
		qualityWeightRescue*rescueSum/n

	return max(0, min(quality, 1))
}

func gaussian(x, mean, width float64) float64 {
	d := (x - mean) / width
	return math.Exp(-d * d)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
