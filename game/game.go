// Package game owns the ECS world and drives the per-tick ecosystem phases.
//
// A Simulation is single-threaded: every phase of Step runs to completion
// before the next begins, and all randomness is drawn from one seeded source
// so a run can be replayed from its seed.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
	"github.com/pthm-cable/terrarium/terrain"
)

const (
	hallOfFameSize      = 20
	interactionCellSize = 32
)

// MaxStepsPerUpdate bounds the speed multiplier.
const MaxStepsPerUpdate = 64

// Options configures a Simulation.
type Options struct {
	Seed   int64          // 0 picks a time-based seed
	Config *config.Config // nil uses config.Cfg()

	// Terrain overrides the map built from the config.
	Terrain terrain.Query

	LogStats       bool
	StatsWindowSec float64 // 0 uses telemetry.stats_window
	SnapshotDir    string
	OutputDir      string

	// HallOfFamePath seeds initial founders from a saved hall of fame.
	HallOfFamePath string

	Headless       bool
	StepsPerUpdate int

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)

	// Empty skips the initial population. Floors still apply.
	Empty bool
}

type stagedChild struct {
	variant components.Variant
	systems.Offspring
}

// Simulation is the tick driver and population controller.
type Simulation struct {
	cfg    *config.Config
	tuning *systems.Tuning
	rng    *rand.Rand
	seed   int64
	runID  string

	// ECS
	world          *ecs.World
	grazerMapper   *ecs.Map7[components.Position, components.Velocity, components.Rotation, components.Body, components.Vitals, components.Organism, components.Forager]
	predatorMapper *ecs.Map7[components.Position, components.Velocity, components.Rotation, components.Body, components.Vitals, components.Organism, components.Predator]
	agentFilter    *ecs.Filter6[components.Position, components.Velocity, components.Rotation, components.Body, components.Vitals, components.Organism]
	foragerMap     *ecs.Map[components.Forager]
	predatorMap    *ecs.Map[components.Predator]

	terrain       terrain.Query
	terrainSource string
	width, height float32
	env           *systems.Env
	view          *systems.Snapshot
	grid          *systems.SpatialGrid

	// Per-tick scratch
	agents    []systems.Agent
	events    []systems.PredationEvent
	neighbors []systems.Neighbor
	staged    []stagedChild
	dead      []ecs.Entity

	tick       int32
	nextID     uint32
	counts     [components.VariantCount]int
	population PopulationSnapshot

	paused         bool
	stepsPerUpdate int

	// Telemetry
	collector        *telemetry.Collector
	lifetimeTracker  *telemetry.LifetimeTracker
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	hallOfFame       *telemetry.HallOfFame
	founderPool      *telemetry.HallOfFame
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)
	lastStats        *telemetry.WindowStats
}

// New builds a simulation and seeds its initial population.
func New(opts Options) (*Simulation, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	q := opts.Terrain
	source := "custom"
	if q == nil {
		grid, src, err := BuildTerrain(cfg, seed)
		if err != nil {
			return nil, err
		}
		q, source = grid, src
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))
	tuning := systems.NewTuning(cfg)
	width, height := terrain.Extent(q)

	env := systems.NewEnv(q, tuning, rng)
	view := systems.NewSnapshot(width, height)
	env.View = view

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	s := &Simulation{
		cfg:    cfg,
		tuning: tuning,
		rng:    rng,
		seed:   seed,
		runID:  uuid.NewString(),

		world:          world,
		grazerMapper:   ecs.NewMap7[components.Position, components.Velocity, components.Rotation, components.Body, components.Vitals, components.Organism, components.Forager](world),
		predatorMapper: ecs.NewMap7[components.Position, components.Velocity, components.Rotation, components.Body, components.Vitals, components.Organism, components.Predator](world),
		agentFilter:    ecs.NewFilter6[components.Position, components.Velocity, components.Rotation, components.Body, components.Vitals, components.Organism](world),
		foragerMap:     ecs.NewMap[components.Forager](world),
		predatorMap:    ecs.NewMap[components.Predator](world),

		terrain:       q,
		terrainSource: source,
		width:         width,
		height:        height,
		env:           env,
		view:          view,
		grid:          systems.NewSpatialGrid(width, height, interactionCellSize),

		stepsPerUpdate: min(steps, MaxStepsPerUpdate),

		collector:        telemetry.NewCollector(statsWindow, tuning.DT),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		hallOfFame:       telemetry.NewHallOfFame(hallOfFameSize, rng),
		logStats:         opts.LogStats,
		snapshotDir:      opts.SnapshotDir,
		statsCallback:    opts.StatsCallback,
	}

	if opts.HallOfFamePath != "" {
		pool, err := telemetry.LoadHallOfFame(opts.HallOfFamePath, hallOfFameSize, rng)
		if err != nil {
			return nil, err
		}
		s.founderPool = pool
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	s.outputManager = om
	if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		info := telemetry.RunInfo{
			RunID:     s.runID,
			Seed:      seed,
			StartedAt: time.Now(),
			Terrain:   source,
			Headless:  opts.Headless,
		}
		if err := om.WriteRunInfo(info); err != nil {
			slog.Error("failed to write run info", "error", err)
		}
	}

	if !opts.Empty {
		s.seedPopulation()
	}
	s.refreshPopulation()

	slog.Info("simulation created",
		"run_id", s.runID,
		"seed", seed,
		"terrain", source,
		"world_tiles", fmt.Sprintf("%dx%d", q.Width(), q.Height()),
		"agents", s.population.Total(),
	)
	return s, nil
}

// Update advances the simulation by the configured number of steps unless
// paused. Viewers call it once per frame.
func (s *Simulation) Update() {
	if !s.paused {
		for range s.stepsPerUpdate {
			s.Step()
		}
	}
	s.perfCollector.RecordFrame()
}

// Tick returns the number of completed steps.
func (s *Simulation) Tick() int32 {
	return s.tick
}

// SimTime returns the simulated seconds elapsed.
func (s *Simulation) SimTime() float32 {
	return float32(s.tick) * s.tuning.DT
}

// Seed returns the seed of the random source.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// RunID returns the run identifier stamped on output and snapshots.
func (s *Simulation) RunID() string {
	return s.runID
}

// Config returns the configuration the simulation was built from.
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// Terrain returns the map agents live on.
func (s *Simulation) Terrain() terrain.Query {
	return s.terrain
}

// WorldSize returns the world extent in world units.
func (s *Simulation) WorldSize() (width, height float32) {
	return s.width, s.height
}

// Counts returns the live count per variant.
func (s *Simulation) Counts() [components.VariantCount]int {
	return s.counts
}

// Population returns a copy of the end-of-tick population.
func (s *Simulation) Population() PopulationSnapshot {
	p := s.population
	p.Agents = slices.Clone(s.population.Agents)
	return p
}

// Paused reports whether Update is suspended.
func (s *Simulation) Paused() bool {
	return s.paused
}

// SetPaused suspends or resumes Update.
func (s *Simulation) SetPaused(paused bool) {
	s.paused = paused
}

// TogglePause flips the paused state.
func (s *Simulation) TogglePause() {
	s.paused = !s.paused
}

// StepsPerUpdate returns how many steps each Update runs.
func (s *Simulation) StepsPerUpdate() int {
	return s.stepsPerUpdate
}

// SetStepsPerUpdate sets the speed multiplier, clamped to [1, 64].
func (s *Simulation) SetStepsPerUpdate(n int) {
	s.stepsPerUpdate = max(1, min(n, MaxStepsPerUpdate))
}

// SpeedUp doubles the speed multiplier.
func (s *Simulation) SpeedUp() {
	s.SetStepsPerUpdate(s.stepsPerUpdate * 2)
}

// SlowDown halves the speed multiplier.
func (s *Simulation) SlowDown() {
	s.SetStepsPerUpdate(s.stepsPerUpdate / 2)
}

// LastStats returns the most recent stats window, if one was flushed.
func (s *Simulation) LastStats() (telemetry.WindowStats, bool) {
	if s.lastStats == nil {
		return telemetry.WindowStats{}, false
	}
	return *s.lastStats, true
}

// PerfStats returns timing over the recent ticks.
func (s *Simulation) PerfStats() telemetry.PerfStats {
	return s.perfCollector.Stats()
}

// HallOfFame returns the best genomes of agents that have died.
func (s *Simulation) HallOfFame() *telemetry.HallOfFame {
	return s.hallOfFame
}

// Close writes the hall of fame and closes output files.
func (s *Simulation) Close() error {
	if s.outputManager == nil {
		return nil
	}
	if err := s.outputManager.WriteHallOfFame(s.hallOfFame); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
	}
	return s.outputManager.Close()
}

// Inspect copies the components of the agent with the given ID.
func (s *Simulation) Inspect(id uint32) (AgentDetail, bool) {
	var (
		detail AgentDetail
		found  bool
	)
	query := s.agentFilter.Query()
	for query.Next() {
		pos, vel, rot, body, vitals, org := query.Get()
		if found || org.ID != id {
			continue
		}
		e := query.Entity()
		detail = AgentDetail{
			Position: *pos,
			Velocity: *vel,
			Rotation: *rot,
			Body:     *body,
			Vitals:   *vitals,
			Organism: *org,
		}
		detail.Organism.Genome = org.Genome.Clone()
		if org.Variant.IsPredator() {
			c := *s.predatorMap.Get(e)
			detail.Predator = &c
		} else {
			c := *s.foragerMap.Get(e)
			detail.Forager = &c
		}
		found = true
	}
	return detail, found
}
