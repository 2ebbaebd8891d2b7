package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/renderer"
	"github.com/pthm-cable/terrarium/terminal"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	term := flag.Bool("terminal", false, "Render in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	hallOfFame := flag.String("hall-of-fame", "", "Seed founders from a saved hall_of_fame.json")
	terrainPath := flag.String("terrain", "", "Load the map from a JSON file (overrides config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	// The terminal viewer owns stdout, so logs go to stderr.
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logOut := os.Stdout
	if *term {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *terrainPath != "" {
		cfg.Terrain.Path = *terrainPath
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		Config:         cfg,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
		HallOfFamePath: *hallOfFame,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	sim, err := game.New(opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sim.Close(); err != nil {
			slog.Error("failed to close simulation", "error", err)
		}
	}()

	switch {
	case *headless:
		runHeadless(sim, *maxTicks)
	case *term:
		if err := runTerminal(sim, *maxTicks); err != nil {
			slog.Error("terminal viewer failed", "error", err)
		}
	default:
		renderer.NewWindow(sim, *maxTicks).Run()
	}
}

// runHeadless steps the simulation without any viewer.
func runHeadless(sim *game.Simulation, maxTicks int) {
	slog.Info("starting headless simulation",
		"seed", sim.Seed(),
		"run_id", sim.RunID(),
		"max_ticks", maxTicks,
		"steps_per_update", sim.StepsPerUpdate(),
	)

	for {
		sim.Update()

		if maxTicks > 0 && int(sim.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", sim.Tick())
			return
		}
	}
}

func runTerminal(sim *game.Simulation, maxTicks int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	terminal.NewViewer(screen, sim).Run(maxTicks)
	return nil
}
