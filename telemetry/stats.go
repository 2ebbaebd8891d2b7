package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	Grazers   int `csv:"grazers"`
	Hunters   int `csv:"hunters"`
	Cannibals int `csv:"cannibals"`

	// Events during window
	GrazerBirths   int `csv:"grazer_births"`
	HunterBirths   int `csv:"hunter_births"`
	CannibalBirths int `csv:"cannibal_births"`
	GrazerDeaths   int `csv:"grazer_deaths"`
	HunterDeaths   int `csv:"hunter_deaths"`
	CannibalDeaths int `csv:"cannibal_deaths"`
	SexualBirths   int `csv:"sexual_births"`
	FloorSpawns    int `csv:"floor_spawns"`

	// Predation
	PredationAttempts int     `csv:"predation_attempts"`
	Kills             int     `csv:"kills"`
	CannibalKills     int     `csv:"cannibal_kills"` // hunters killed by cannibals
	KillRate          float64 `csv:"kill_rate"`
	AttacksLanded     int     `csv:"attacks_landed"` // hunting rewards, never lethal

	// Energy fraction distribution (sampled at window end)
	GrazerEnergyMean float64 `csv:"grazer_energy_mean"`
	GrazerEnergyP10  float64 `csv:"grazer_energy_p10"`
	GrazerEnergyP50  float64 `csv:"grazer_energy_p50"`
	GrazerEnergyP90  float64 `csv:"grazer_energy_p90"`

	HunterEnergyMean float64 `csv:"hunter_energy_mean"`
	HunterEnergyP10  float64 `csv:"hunter_energy_p10"`
	HunterEnergyP50  float64 `csv:"hunter_energy_p50"`
	HunterEnergyP90  float64 `csv:"hunter_energy_p90"`

	CannibalEnergyMean float64 `csv:"cannibal_energy_mean"`
	CannibalEnergyP10  float64 `csv:"cannibal_energy_p10"`
	CannibalEnergyP50  float64 `csv:"cannibal_energy_p50"`
	CannibalEnergyP90  float64 `csv:"cannibal_energy_p90"`

	// Trait distribution across all live agents
	SizeMean       float64 `csv:"size_mean"`
	SizeStd        float64 `csv:"size_std"`
	SpeedMean      float64 `csv:"speed_mean"`
	SpeedStd       float64 `csv:"speed_std"`
	StrengthMean   float64 `csv:"strength_mean"`
	StrengthStd    float64 `csv:"strength_std"`
	PerceptionMean float64 `csv:"perception_mean"`
	PerceptionStd  float64 `csv:"perception_std"`

	// Lineage depth
	GenerationMean float64 `csv:"generation_mean"`
	GenerationMax  int     `csv:"generation_max"`
}

// Total returns the live count across every variant.
func (s WindowStats) Total() int {
	return s.Grazers + s.Hunters + s.Cannibals
}

// Percentile returns the empirical p-th quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// ComputeTraitStats returns the mean and sample standard deviation.
// The deviation is 0 for fewer than two values.
func ComputeTraitStats(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("grazers", s.Grazers),
		slog.Int("hunters", s.Hunters),
		slog.Int("cannibals", s.Cannibals),
		slog.Int("grazer_births", s.GrazerBirths),
		slog.Int("hunter_births", s.HunterBirths),
		slog.Int("cannibal_births", s.CannibalBirths),
		slog.Int("grazer_deaths", s.GrazerDeaths),
		slog.Int("hunter_deaths", s.HunterDeaths),
		slog.Int("cannibal_deaths", s.CannibalDeaths),
		slog.Int("sexual_births", s.SexualBirths),
		slog.Int("floor_spawns", s.FloorSpawns),
		slog.Int("predation_attempts", s.PredationAttempts),
		slog.Int("kills", s.Kills),
		slog.Int("cannibal_kills", s.CannibalKills),
		slog.Float64("kill_rate", s.KillRate),
		slog.Int("attacks_landed", s.AttacksLanded),
		slog.Float64("grazer_energy_mean", s.GrazerEnergyMean),
		slog.Float64("grazer_energy_p50", s.GrazerEnergyP50),
		slog.Float64("hunter_energy_mean", s.HunterEnergyMean),
		slog.Float64("hunter_energy_p50", s.HunterEnergyP50),
		slog.Float64("cannibal_energy_mean", s.CannibalEnergyMean),
		slog.Float64("cannibal_energy_p50", s.CannibalEnergyP50),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("strength_mean", s.StrengthMean),
		slog.Float64("perception_mean", s.PerceptionMean),
		slog.Float64("generation_mean", s.GenerationMean),
		slog.Int("generation_max", s.GenerationMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"grazers", s.Grazers,
		"hunters", s.Hunters,
		"cannibals", s.Cannibals,
		"births", s.GrazerBirths+s.HunterBirths+s.CannibalBirths,
		"deaths", s.GrazerDeaths+s.HunterDeaths+s.CannibalDeaths,
		"floor_spawns", s.FloorSpawns,
		"predation_attempts", s.PredationAttempts,
		"kills", s.Kills,
		"kill_rate", s.KillRate,
		"attacks_landed", s.AttacksLanded,
		"grazer_energy_p50", s.GrazerEnergyP50,
		"hunter_energy_p50", s.HunterEnergyP50,
		"cannibal_energy_p50", s.CannibalEnergyP50,
		"generation_max", s.GenerationMax,
	)
}
