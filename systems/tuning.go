package systems

import (
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/genetics"
)

// VariantTuning holds the base attributes of one variant before genome scaling.
type VariantTuning struct {
	MaxSpeed      float32
	Size          float32
	Energy        float32
	MaxEnergy     float32
	MaxAge        float32
	ReproCooldown float32
	Retention     float32
	SizeScale     float32
	SpeedScale    float32
	EnergyScale   float32

	// Grazer
	PlantRange  float32
	ThreatRange float32
	PlantScale  float32
	ThreatScale float32
	FeedRate    float32
	FeedDamping float32
	HungerLevel float32
	FleeSpeed   float32
	FleeDrain   float32

	// Hunter and Cannibal
	PreyRange      float32
	PreyScale      float32
	AttackRange    float32
	AttackStrength float32
	StrengthScale  float32
	HuntCooldown   float32
	HuntBelow      float32
	SatedAbove     float32
	HuntChance     float32
	CannibalBase   float32
	CannibalScale  float32
}

// Tuning is the float32 view of the configuration used by every system.
// Systems take it explicitly so they can run without the global config.
type Tuning struct {
	DT float32

	TurnRate        float32
	FleeTurnRate    float32
	WanderChance    float32
	WanderAngle     float32
	WanderSpeed     float32
	BaseConsumption float32
	SizeConsumption float32

	WaterDamping    float32
	MountainDamping float32
	SnowDamping     float32
	SnowDrain       float32

	ReproChance   float32
	PairingRadius float32
	SpawnOffset   float32
	Eligibility   float32

	BaseChance     float32
	StrengthWeight float32
	SpeedWeight    float32
	EnergyPerSize  float32
	ClampChance    bool

	Rates genetics.Rates

	Variants [components.VariantCount]VariantTuning
}

// NewTuning converts a loaded configuration.
func NewTuning(cfg *config.Config) *Tuning {
	t := &Tuning{
		DT: cfg.Derived.DT32,

		TurnRate:        float32(cfg.Movement.TurnRate),
		FleeTurnRate:    float32(cfg.Movement.FleeTurnRate),
		WanderChance:    float32(cfg.Movement.WanderChance),
		WanderAngle:     float32(cfg.Movement.WanderAngle),
		WanderSpeed:     float32(cfg.Movement.WanderSpeed),
		BaseConsumption: float32(cfg.Movement.BaseConsumption),
		SizeConsumption: float32(cfg.Movement.SizeConsumption),

		WaterDamping:    float32(cfg.Terrain.Effects.WaterDamping),
		MountainDamping: float32(cfg.Terrain.Effects.MountainDamping),
		SnowDamping:     float32(cfg.Terrain.Effects.SnowDamping),
		SnowDrain:       float32(cfg.Terrain.Effects.SnowDrain),

		ReproChance:   float32(cfg.Reproduction.Chance),
		PairingRadius: float32(cfg.Reproduction.PairingRadius),
		SpawnOffset:   float32(cfg.Reproduction.SpawnOffset),
		Eligibility:   float32(cfg.Reproduction.Eligibility),

		BaseChance:     float32(cfg.Interaction.BaseChance),
		StrengthWeight: float32(cfg.Interaction.StrengthWeight),
		SpeedWeight:    float32(cfg.Interaction.SpeedWeight),
		EnergyPerSize:  float32(cfg.Interaction.EnergyPerSize),
		ClampChance:    cfg.Interaction.ClampChance,

		Rates: genetics.Rates{
			Chance: float32(cfg.Genetics.MutationChance),
			Amount: float32(cfg.Genetics.MutationAmount),
		},
	}
	t.Variants[components.Grazer] = variantTuning(&cfg.Grazer)
	t.Variants[components.Hunter] = variantTuning(&cfg.Hunter)
	t.Variants[components.Cannibal] = variantTuning(&cfg.Cannibal)
	return t
}

// DefaultTuning returns the tuning of the embedded default configuration.
func DefaultTuning() *Tuning {
	cfg, err := config.Load("")
	if err != nil {
		panic("systems: embedded defaults: " + err.Error())
	}
	return NewTuning(cfg)
}

// Variant returns the tuning for v.
func (t *Tuning) Variant(v components.Variant) *VariantTuning {
	return &t.Variants[v]
}

// MaxSize returns the largest collision radius any variant can reach.
func (t *Tuning) MaxSize() float32 {
	var m float32
	for i := range t.Variants {
		vt := &t.Variants[i]
		if s := vt.Size * (1 + vt.SizeScale/2); s > m {
			m = s
		}
	}
	return m
}

func variantTuning(c *config.VariantConfig) VariantTuning {
	return VariantTuning{
		MaxSpeed:      float32(c.MaxSpeed),
		Size:          float32(c.Size),
		Energy:        float32(c.Energy),
		MaxEnergy:     float32(c.MaxEnergy),
		MaxAge:        float32(c.MaxAge),
		ReproCooldown: float32(c.ReproCooldown),
		Retention:     float32(c.Retention),
		SizeScale:     float32(c.SizeScale),
		SpeedScale:    float32(c.SpeedScale),
		EnergyScale:   float32(c.EnergyScale),

		PlantRange:  float32(c.PlantRange),
		ThreatRange: float32(c.ThreatRange),
		PlantScale:  float32(c.PlantScale),
		ThreatScale: float32(c.ThreatScale),
		FeedRate:    float32(c.FeedRate),
		FeedDamping: float32(c.FeedDamping),
		HungerLevel: float32(c.HungerLevel),
		FleeSpeed:   float32(c.FleeSpeed),
		FleeDrain:   float32(c.FleeDrain),

		PreyRange:      float32(c.PreyRange),
		PreyScale:      float32(c.PreyScale),
		AttackRange:    float32(c.AttackRange),
		AttackStrength: float32(c.AttackStrength),
		StrengthScale:  float32(c.StrengthScale),
		HuntCooldown:   float32(c.HuntCooldown),
		HuntBelow:      float32(c.HuntBelow),
		SatedAbove:     float32(c.SatedAbove),
		HuntChance:     float32(c.HuntChance),
		CannibalBase:   float32(c.CannibalBase),
		CannibalScale:  float32(c.CannibalScale),
	}
}
