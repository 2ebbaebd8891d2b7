package main

import (
	"github.com/pthm-cable/terrarium/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	field func(cfg *config.Config) *float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Defaults match defaults.yaml.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Metabolism
			{Name: "base_consumption", Path: "movement.base_consumption", Min: 0.2, Max: 1.0, Default: 0.5,
				field: func(c *config.Config) *float64 { return &c.Movement.BaseConsumption }},
			{Name: "size_consumption", Path: "movement.size_consumption", Min: 0.02, Max: 0.3, Default: 0.1,
				field: func(c *config.Config) *float64 { return &c.Movement.SizeConsumption }},
			// Grazer
			{Name: "grazer_feed_rate", Path: "grazer.feed_rate", Min: 4, Max: 20, Default: 10,
				field: func(c *config.Config) *float64 { return &c.Grazer.FeedRate }},
			{Name: "grazer_flee_drain", Path: "grazer.flee_drain", Min: 0, Max: 2, Default: 0.5,
				field: func(c *config.Config) *float64 { return &c.Grazer.FleeDrain }},
			{Name: "grazer_cooldown", Path: "grazer.repro_cooldown", Min: 4, Max: 20, Default: 10,
				field: func(c *config.Config) *float64 { return &c.Grazer.ReproCooldown }},
			// Hunter
			{Name: "hunter_cooldown", Path: "hunter.repro_cooldown", Min: 6, Max: 25, Default: 15,
				field: func(c *config.Config) *float64 { return &c.Hunter.ReproCooldown }},
			{Name: "hunter_hunt_chance", Path: "hunter.hunt_chance", Min: 0.2, Max: 1.0, Default: 0.7,
				field: func(c *config.Config) *float64 { return &c.Hunter.HuntChance }},
			{Name: "hunter_attack_strength", Path: "hunter.attack_strength", Min: 10, Max: 60, Default: 30,
				field: func(c *config.Config) *float64 { return &c.Hunter.AttackStrength }},
			// Cannibal
			{Name: "cannibal_cooldown", Path: "cannibal.repro_cooldown", Min: 6, Max: 25, Default: 15,
				field: func(c *config.Config) *float64 { return &c.Cannibal.ReproCooldown }},
			{Name: "cannibal_base", Path: "cannibal.cannibal_base", Min: 0, Max: 0.8, Default: 0.3,
				field: func(c *config.Config) *float64 { return &c.Cannibal.CannibalBase }},
			// Predation
			{Name: "kill_base_chance", Path: "interaction.base_chance", Min: 0.2, Max: 0.9, Default: 0.6,
				field: func(c *config.Config) *float64 { return &c.Interaction.BaseChance }},
			{Name: "energy_per_size", Path: "interaction.energy_per_size", Min: 5, Max: 30, Default: 15,
				field: func(c *config.Config) *float64 { return &c.Interaction.EnergyPerSize }},
			// Reproduction
			{Name: "repro_chance", Path: "reproduction.chance", Min: 0.002, Max: 0.05, Default: 0.01,
				field: func(c *config.Config) *float64 { return &c.Reproduction.Chance }},
			{Name: "repro_eligibility", Path: "reproduction.eligibility", Min: 0.4, Max: 0.9, Default: 0.7,
				field: func(c *config.Config) *float64 { return &c.Reproduction.Eligibility }},
			// Genetics
			{Name: "mutation_chance", Path: "genetics.mutation_chance", Min: 0.05, Max: 0.5, Default: 0.2,
				field: func(c *config.Config) *float64 { return &c.Genetics.MutationChance }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(v[i], spec.Max))
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg and refreshes
// its derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		*spec.field(cfg) = clamped[i]
	}
	cfg.Recompute()
}

// ExtractFromConfig reads current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = *spec.field(cfg)
	}
	return v
}
