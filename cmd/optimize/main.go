// Command optimize searches config parameters with CMA-ES for runs where
// grazers and hunters coexist without leaning on the population floors.
//
// Every evaluation runs the same parameter vector on several seeds in
// parallel. Results land in the output directory: optimize_log.csv with one
// row per evaluation, best_config.yaml, and the hall of fame of the best run.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/terrarium/config"
)

// formatDuration formats a duration as 1h02m03s, or 2m03s under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// evalLog appends one CSV row per evaluation and tracks the best result.
type evalLog struct {
	w      *csv.Writer
	params *ParamVector

	count       int
	bestFitness float64
	bestParams  []float64
}

func newEvalLog(f *os.File, params *ParamVector) (*evalLog, error) {
	w := csv.NewWriter(f)
	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing log header: %w", err)
	}
	w.Flush()
	return &evalLog{w: w, params: params, bestFitness: math.Inf(1)}, w.Error()
}

// record logs the clamped values actually applied to the config.
func (l *evalLog) record(x []float64, fitness, quality float64) {
	l.count++
	clamped := l.params.Clamp(l.params.Denormalize(x))
	if fitness < l.bestFitness {
		l.bestFitness = fitness
		l.bestParams = clamped
	}

	row := []string{strconv.Itoa(l.count), fmt.Sprintf("%.6f", fitness), fmt.Sprintf("%.4f", quality)}
	for _, v := range clamped {
		row = append(row, fmt.Sprintf("%.6f", v))
	}
	if err := l.w.Write(row); err != nil {
		slog.Error("failed to write log row", "eval", l.count, "error", err)
	}
	l.w.Flush()
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 216000, "Maximum simulation duration in ticks (cap)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if *outputDir == "" {
		fmt.Fprintln(os.Stderr, "--output is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, int32(*maxTicks), evalSeeds, baseCfg)

	logFile, err := os.Create(filepath.Join(*outputDir, "optimize_log.csv"))
	if err != nil {
		slog.Error("failed to create log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()
	evals, err := newEvalLog(logFile, params)
	if err != nil {
		slog.Error("failed to start log", "error", err)
		os.Exit(1)
	}

	dim := params.Dim()
	popSize := *population
	if popSize == 0 {
		// Auto-size: 4 + floor(3*ln(n))
		popSize = 4 + int(3.0*math.Log(float64(dim)))
	}

	start := time.Now()
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			fitness := evaluator.Evaluate(params.Denormalize(x))
			quality := evaluator.LastQuality()
			evals.record(x, fitness, quality)

			elapsed := time.Since(start)
			remaining := time.Duration(*maxEvals-evals.count) * (elapsed / time.Duration(evals.count))
			// fitness = -(survivalTicks × (1 + 0.2×quality))
			survivalSec := -fitness / (1.0 + 0.2*quality) * baseCfg.World.DT
			fmt.Printf("Eval %d/%d: survived=%.0fs quality=%.2f (best=%.0f) | elapsed: %s, ETA: %s\n",
				evals.count, *maxEvals, survivalSec, quality, evals.bestFitness,
				formatDuration(elapsed), formatDuration(remaining))
			return fitness
		},
	}
	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	method := &optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n", dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	best := evals.bestParams
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		slog.Error("no evaluation completed")
		os.Exit(1)
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evals.count, formatDuration(time.Since(start)))
	fmt.Printf("Best fitness: %.0f\n\nBest parameters:\n", evals.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %-24s %.6f\n", spec.Path, best[i])
	}

	saveResults(*outputDir, baseCfg, params, best, evaluator)
}

// saveResults writes the best config and the best run's hall of fame.
func saveResults(dir string, base *config.Config, params *ParamVector, best []float64, evaluator *FitnessEvaluator) {
	bestCfg := base.Clone()
	params.ApplyToConfig(bestCfg, best)

	configPath := filepath.Join(dir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configPath); err != nil {
		slog.Error("failed to write best config", "error", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configPath)
	}

	hof := evaluator.BestHallOfFame()
	if hof == nil {
		return
	}
	data, err := json.MarshalIndent(hof, "", "  ")
	if err != nil {
		slog.Error("failed to marshal hall of fame", "error", err)
		return
	}
	hofPath := filepath.Join(dir, "hall_of_fame.json")
	if err := os.WriteFile(hofPath, data, 0644); err != nil {
		slog.Error("failed to write hall of fame", "error", err)
		return
	}
	fmt.Printf("Hall of fame saved to: %s (use with --hall-of-fame)\n", hofPath)
}
