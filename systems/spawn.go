package systems

import (
	"math/rand"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/genetics"
	"github.com/pthm-cable/terrarium/traits"
)

// Blueprint holds the components of an agent about to be created.
// Predator is unused for grazers and Forager for the other variants.
type Blueprint struct {
	Pos      components.Position
	Vel      components.Velocity
	Rot      components.Rotation
	Body     components.Body
	Vitals   components.Vitals
	Org      components.Organism
	Forager  components.Forager
	Predator components.Predator
}

// FounderGenome returns a randomized genome for an agent with no parents.
// Cannibal founders also draw the cannibalism trait.
func FounderGenome(rng *rand.Rand, v components.Variant) *genetics.Genome {
	g := genetics.Random(rng)
	if v == components.Cannibal {
		g.Set(traits.Cannibalism, rng.Float32())
	}
	return g
}

// NewBlueprint scales the variant's base attributes by genome and places the
// agent at (x, y) with age zero and a random facing. A nil genome leaves
// every attribute at its base value.
func NewBlueprint(rng *rand.Rand, t *Tuning, v components.Variant, g *genetics.Genome, x, y float32) Blueprint {
	vt := t.Variant(v)

	maxEnergy := traits.Scale(vt.MaxEnergy, g.Get(traits.Energy, traits.Neutral), vt.EnergyScale)
	b := Blueprint{
		Pos: components.Position{X: x, Y: y},
		Rot: components.Rotation{Angle: rng.Float32() * 360},
		Body: components.Body{
			Size:     traits.Scale(vt.Size, g.Get(traits.Size, traits.Neutral), vt.SizeScale),
			MaxSpeed: traits.Scale(vt.MaxSpeed, g.Get(traits.Speed, traits.Neutral), vt.SpeedScale),
		},
		Vitals: components.Vitals{
			Energy:    min(vt.Energy, maxEnergy),
			MaxEnergy: maxEnergy,
			MaxAge:    vt.MaxAge,
			Alive:     true,
		},
		Org: components.Organism{
			Variant:       v,
			Genome:        g,
			ReproCooldown: vt.ReproCooldown,
			Retention:     vt.Retention,
		},
	}

	perception := g.Get(traits.Perception, traits.Neutral)
	switch v {
	case components.Grazer:
		b.Forager = components.Forager{
			PlantRange:  traits.Scale(vt.PlantRange, perception, vt.PlantScale),
			ThreatRange: traits.Scale(vt.ThreatRange, perception, vt.ThreatScale),
		}
	case components.Hunter, components.Cannibal:
		b.Predator = components.Predator{
			PreyRange:      traits.Scale(vt.PreyRange, perception, vt.PreyScale),
			AttackRange:    vt.AttackRange,
			AttackStrength: traits.Scale(vt.AttackStrength, g.Get(traits.Strength, traits.Neutral), vt.StrengthScale),
			HuntCooldown:   vt.HuntCooldown,
		}
		if v == components.Cannibal {
			b.Predator.CannibalFactor = traits.Scale(vt.CannibalBase, g.Get(traits.Cannibalism, traits.Neutral), vt.CannibalScale)
		}
	}
	return b
}

// Agent returns a view over the blueprint's own components.
// The blueprint must not move while the view is in use.
func (b *Blueprint) Agent() Agent {
	a := Agent{
		Pos:    &b.Pos,
		Vel:    &b.Vel,
		Rot:    &b.Rot,
		Body:   &b.Body,
		Vitals: &b.Vitals,
		Org:    &b.Org,
	}
	if b.Org.Variant == components.Grazer {
		a.Forager = &b.Forager
	} else {
		a.Predator = &b.Predator
	}
	return a
}
