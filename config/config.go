// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/terrarium/terrain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Interaction  InteractionConfig  `yaml:"interaction"`
	Genetics     GeneticsConfig     `yaml:"genetics"`
	Movement     MovementConfig     `yaml:"movement"`
	Grazer       VariantConfig      `yaml:"grazer"`
	Hunter       VariantConfig      `yaml:"hunter"`
	Cannibal     VariantConfig      `yaml:"cannibal"`
	Terrain      TerrainConfig      `yaml:"terrain"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world extent in tiles and the fixed step size.
type WorldConfig struct {
	Width  int     `yaml:"width"`  // tiles
	Height int     `yaml:"height"` // tiles
	DT     float64 `yaml:"dt"`     // seconds per tick
}

// PopulationConfig holds initial counts, floors and floor top-up batch sizes.
type PopulationConfig struct {
	InitialGrazers  int `yaml:"initial_grazers"`
	InitialHunters  int `yaml:"initial_hunters"`
	InitialCannibal int `yaml:"initial_cannibals"`

	MinGrazers   int `yaml:"min_grazers"`
	MinHunters   int `yaml:"min_hunters"`
	MinCannibals int `yaml:"min_cannibals"`

	TopUpGrazers   int `yaml:"top_up_grazers"`
	TopUpHunters   int `yaml:"top_up_hunters"`
	TopUpCannibals int `yaml:"top_up_cannibals"`

	SpawnAttempts int `yaml:"spawn_attempts"` // rejection sampling budget per spawn
}

// ReproductionConfig holds pairing and offspring placement parameters.
type ReproductionConfig struct {
	Chance        float64 `yaml:"chance"`         // per-tick attempt probability
	PairingRadius float64 `yaml:"pairing_radius"` // world units
	SpawnOffset   float64 `yaml:"spawn_offset"`   // max offset per axis
	Eligibility   float64 `yaml:"eligibility"`    // energy fraction required
}

// InteractionConfig holds predation outcome parameters.
type InteractionConfig struct {
	BaseChance     float64 `yaml:"base_chance"`
	StrengthWeight float64 `yaml:"strength_weight"`
	SpeedWeight    float64 `yaml:"speed_weight"`
	EnergyPerSize  float64 `yaml:"energy_per_size"`
	ClampChance    bool    `yaml:"clamp_chance"`
}

// GeneticsConfig holds mutation parameters.
type GeneticsConfig struct {
	MutationChance float64 `yaml:"mutation_chance"`
	MutationAmount float64 `yaml:"mutation_amount"`
}

// MovementConfig holds shared steering and metabolism constants.
type MovementConfig struct {
	TurnRate        float64 `yaml:"turn_rate"`        // interpolation factor per second
	FleeTurnRate    float64 `yaml:"flee_turn_rate"`   // interpolation factor per second under threat
	WanderChance    float64 `yaml:"wander_chance"`    // heading perturbation probability per second
	WanderAngle     float64 `yaml:"wander_angle"`     // max heading perturbation in degrees
	WanderSpeed     float64 `yaml:"wander_speed"`     // fraction of max speed while wandering
	BaseConsumption float64 `yaml:"base_consumption"` // energy per second
	SizeConsumption float64 `yaml:"size_consumption"` // extra energy per second per unit size
}

// VariantConfig holds the base tuning of one agent variant.
// Fields that do not apply to a variant are left zero.
type VariantConfig struct {
	MaxSpeed      float64 `yaml:"max_speed"`
	Size          float64 `yaml:"size"`
	Energy        float64 `yaml:"energy"`
	MaxEnergy     float64 `yaml:"max_energy"`
	MaxAge        float64 `yaml:"max_age"`
	ReproCooldown float64 `yaml:"repro_cooldown"`
	Retention     float64 `yaml:"retention"` // energy kept after reproducing
	SizeScale     float64 `yaml:"size_scale"`
	SpeedScale    float64 `yaml:"speed_scale"`
	EnergyScale   float64 `yaml:"energy_scale"`

	// Grazer
	PlantRange  float64 `yaml:"plant_range"`
	ThreatRange float64 `yaml:"threat_range"`
	PlantScale  float64 `yaml:"plant_scale"`
	ThreatScale float64 `yaml:"threat_scale"`
	FeedRate    float64 `yaml:"feed_rate"`
	FeedDamping float64 `yaml:"feed_damping"`
	HungerLevel float64 `yaml:"hunger_level"` // energy fraction below which food is sought
	FleeSpeed   float64 `yaml:"flee_speed"`   // fraction of max speed while fleeing
	FleeDrain   float64 `yaml:"flee_drain"`   // extra energy per second while fleeing

	// Hunter and Cannibal
	PreyRange      float64 `yaml:"prey_range"`
	PreyScale      float64 `yaml:"prey_scale"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackStrength float64 `yaml:"attack_strength"`
	StrengthScale  float64 `yaml:"strength_scale"`
	HuntCooldown   float64 `yaml:"hunt_cooldown"`
	HuntBelow      float64 `yaml:"hunt_below"`     // energy fraction that forces hunting
	SatedAbove     float64 `yaml:"sated_above"`    // energy fraction that allows mate seeking
	HuntChance     float64 `yaml:"hunt_chance"`    // per-tick hunt probability otherwise
	CannibalBase   float64 `yaml:"cannibal_base"`  // base preference for same-kind targets
	CannibalScale  float64 `yaml:"cannibal_scale"` // genome scale factor for the preference
}

// TerrainConfig holds terrain source, effects and generator settings.
type TerrainConfig struct {
	Path      string         `yaml:"path"`      // JSON map to load (empty = generate)
	Generator string         `yaml:"generator"` // "patches" or "noise"
	Effects   TerrainEffects `yaml:"effects"`
	Patches   []PatchConfig  `yaml:"patches"`
	Noise     NoiseConfig    `yaml:"noise"`
}

// TerrainEffects holds per-tick modifiers applied at an agent's tile.
type TerrainEffects struct {
	WaterDamping    float64 `yaml:"water_damping"`
	MountainDamping float64 `yaml:"mountain_damping"`
	SnowDamping     float64 `yaml:"snow_damping"`
	SnowDrain       float64 `yaml:"snow_drain"`
}

// PatchConfig describes one layer of the patch generator.
type PatchConfig struct {
	Kind     string  `yaml:"kind"`
	Coverage float64 `yaml:"coverage"`
	MinSize  int     `yaml:"min_size"`
	MaxSize  int     `yaml:"max_size"`
}

// NoiseConfig holds opensimplex generator parameters.
type NoiseConfig struct {
	Scale      float64 `yaml:"scale"`
	Octaves    int     `yaml:"octaves"`
	Lacunarity float64 `yaml:"lacunarity"`
	Gain       float64 `yaml:"gain"`
	WaterLevel float64 `yaml:"water_level"`
	SandLevel  float64 `yaml:"sand_level"`
	HillLevel  float64 `yaml:"hill_level"`
	PeakLevel  float64 `yaml:"peak_level"`
	ForestWet  float64 `yaml:"forest_wet"`
	DirtDry    float64 `yaml:"dirt_dry"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	SnapshotEvery       float64 `yaml:"snapshot_every"` // seconds between snapshots (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32         float32 // World.DT as float32
	WorldW32     float32 // world width in world units
	WorldH32     float32 // world height in world units
	WindowTicks  int32   // ticks per stats window
	SnapshotTick int32   // ticks between snapshots (0 = off)
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Terrain.Patches = append([]PatchConfig(nil), c.Terrain.Patches...)
	return &cp
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.World.DT <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.World.DT)
	}
	if c.Population.MinGrazers < 0 || c.Population.MinHunters < 0 || c.Population.MinCannibals < 0 {
		return fmt.Errorf("population floors must not be negative")
	}
	for name, topUp := range map[string]int{
		"grazers":   c.Population.TopUpGrazers,
		"hunters":   c.Population.TopUpHunters,
		"cannibals": c.Population.TopUpCannibals,
	} {
		if topUp < 1 {
			return fmt.Errorf("top_up_%s must be at least 1, got %d", name, topUp)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.World.DT)
	c.Derived.WorldW32 = float32(c.World.Width) * terrain.TileSize
	c.Derived.WorldH32 = float32(c.World.Height) * terrain.TileSize

	c.Derived.WindowTicks = int32(math.Round(c.Telemetry.StatsWindow / c.World.DT))
	if c.Derived.WindowTicks < 1 {
		c.Derived.WindowTicks = 1
	}
	c.Derived.SnapshotTick = 0
	if c.Telemetry.SnapshotEvery > 0 {
		c.Derived.SnapshotTick = int32(math.Round(c.Telemetry.SnapshotEvery / c.World.DT))
		if c.Derived.SnapshotTick < 1 {
			c.Derived.SnapshotTick = 1
		}
	}
}

// Recompute refreshes derived values after fields were edited in code.
func (c *Config) Recompute() {
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
