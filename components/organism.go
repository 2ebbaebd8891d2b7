package components

import (
	"fmt"

	"github.com/pthm-cable/terrarium/genetics"
)

// Variant identifies which of the three agent kinds an entity is.
type Variant uint8

const (
	Grazer Variant = iota
	Hunter
	Cannibal
)

// VariantCount is the number of agent variants.
const VariantCount = 3

// Variants returns every variant in declaration order.
func Variants() []Variant {
	return []Variant{Grazer, Hunter, Cannibal}
}

func (v Variant) String() string {
	switch v {
	case Grazer:
		return "grazer"
	case Hunter:
		return "hunter"
	case Cannibal:
		return "cannibal"
	}
	return "unknown"
}

// ParseVariant accepts the lowercase variant name.
func ParseVariant(s string) (Variant, bool) {
	for _, v := range Variants() {
		if v.String() == s {
			return v, true
		}
	}
	return 0, false
}

// MarshalText encodes the variant by name.
func (v Variant) MarshalText() ([]byte, error) {
	if v >= VariantCount {
		return nil, fmt.Errorf("invalid variant %d", uint8(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes a variant name.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, ok := ParseVariant(string(text))
	if !ok {
		return fmt.Errorf("unknown variant %q", text)
	}
	*v = parsed
	return nil
}

// IsPredator reports whether the variant carries a Predator payload.
func (v Variant) IsPredator() bool {
	return v == Hunter || v == Cannibal
}

// Vitals tracks an entity's metabolic state.
// Energy stays within [0, MaxEnergy]; once Alive is false it never flips back.
type Vitals struct {
	Energy    float32 `inspect:"bar,maxfield:MaxEnergy"`
	MaxEnergy float32 `inspect:"label,fmt:%.1f"`
	Age       float32 `inspect:"label,fmt:%.1fs"` // seconds alive
	MaxAge    float32 `inspect:"label,fmt:%.1fs"`
	Alive     bool    `inspect:"bool"`
}

// AddEnergy adds amount and clamps the result to [0, MaxEnergy].
func (v *Vitals) AddEnergy(amount float32) {
	v.SetEnergy(v.Energy + amount)
}

// SetEnergy stores e clamped to [0, MaxEnergy].
func (v *Vitals) SetEnergy(e float32) {
	if e < 0 {
		e = 0
	} else if e > v.MaxEnergy {
		e = v.MaxEnergy
	}
	v.Energy = e
}

// Fraction returns Energy / MaxEnergy.
func (v *Vitals) Fraction() float32 {
	if v.MaxEnergy <= 0 {
		return 0
	}
	return v.Energy / v.MaxEnergy
}

// Die marks the entity dead. Removal happens at the next cull.
func (v *Vitals) Die() {
	v.Alive = false
}

// Organism bundles identity, genome and reproduction state.
type Organism struct {
	ID            uint32           `inspect:"label"`
	Variant       Variant          `inspect:"skip"`
	Genome        *genetics.Genome `inspect:"skip"`
	ReproTimer    float32          `inspect:"label,fmt:%.1fs"` // seconds until reproduction is allowed
	ReproCooldown float32          `inspect:"skip"`
	Retention     float32          `inspect:"skip"` // energy multiplier paid per reproduction
	Generation    uint32           `inspect:"label"`
}
