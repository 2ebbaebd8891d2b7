package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/genetics"
	"github.com/pthm-cable/terrarium/traits"
)

func TestNewBlueprint_BaseAttributes(t *testing.T) {
	tun := DefaultTuning()
	rng := rand.New(rand.NewSource(1))
	tests := []struct {
		variant   components.Variant
		size      float32
		speed     float32
		energy    float32
		maxEnergy float32
	}{
		{components.Grazer, 4, 60, 50, 80},
		{components.Hunter, 6, 70, 100, 150},
		{components.Cannibal, 7, 65, 120, 180},
	}
	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			b := NewBlueprint(rng, tun, tt.variant, nil, 10, 20)
			if !approxEqual(b.Body.Size, tt.size, 1e-4) || !approxEqual(b.Body.MaxSpeed, tt.speed, 1e-3) {
				t.Errorf("body = %+v", b.Body)
			}
			if !approxEqual(b.Vitals.Energy, tt.energy, 1e-3) || !approxEqual(b.Vitals.MaxEnergy, tt.maxEnergy, 1e-3) {
				t.Errorf("vitals = %+v", b.Vitals)
			}
			if !b.Vitals.Alive || b.Vitals.Age != 0 {
				t.Errorf("new agent should be alive at age 0: %+v", b.Vitals)
			}
			if b.Rot.Angle < 0 || b.Rot.Angle >= 360 {
				t.Errorf("angle %v outside [0,360)", b.Rot.Angle)
			}
			a := b.Agent()
			if (a.Forager != nil) != (tt.variant == components.Grazer) || (a.Predator != nil) == (tt.variant == components.Grazer) {
				t.Error("payload does not match variant")
			}
		})
	}
}

func TestNewBlueprint_GenomeScaling(t *testing.T) {
	tun := DefaultTuning()
	rng := rand.New(rand.NewSource(1))

	low := genetics.New()
	high := genetics.New()
	for _, name := range traits.Canonical {
		low.Set(name, 0)
		high.Set(name, 1)
	}

	lo := NewBlueprint(rng, tun, components.Hunter, low, 0, 0)
	hi := NewBlueprint(rng, tun, components.Hunter, high, 0, 0)

	tests := []struct {
		name   string
		lo, hi float32
		wantLo float32
		wantHi float32
	}{
		{"size", lo.Body.Size, hi.Body.Size, 6 * 0.9, 6 * 1.1},
		{"speed", lo.Body.MaxSpeed, hi.Body.MaxSpeed, 70 * 0.85, 70 * 1.15},
		{"max energy", lo.Vitals.MaxEnergy, hi.Vitals.MaxEnergy, 150 * 0.9, 150 * 1.1},
		{"prey range", lo.Predator.PreyRange, hi.Predator.PreyRange, 200 * 0.8, 200 * 1.2},
		{"strength", lo.Predator.AttackStrength, hi.Predator.AttackStrength, 30 * 0.85, 30 * 1.15},
	}
	for _, tt := range tests {
		if !approxEqual(tt.lo, tt.wantLo, 1e-3) || !approxEqual(tt.hi, tt.wantHi, 1e-3) {
			t.Errorf("%s: got [%v, %v], want [%v, %v]", tt.name, tt.lo, tt.hi, tt.wantLo, tt.wantHi)
		}
	}

	// Starting energy never exceeds the scaled ceiling.
	if lo.Vitals.Energy > lo.Vitals.MaxEnergy {
		t.Errorf("energy %v above max %v", lo.Vitals.Energy, lo.Vitals.MaxEnergy)
	}
}

func TestFounderGenome(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, v := range components.Variants() {
		g := FounderGenome(rng, v)
		for _, name := range traits.Canonical {
			if !g.Has(name) {
				t.Errorf("%v founder missing %s", v, name)
			}
		}
		if got := g.Has(traits.Cannibalism); got != (v == components.Cannibal) {
			t.Errorf("%v founder has cannibalism = %v", v, got)
		}
	}
}

func TestCannibalFactor(t *testing.T) {
	tun := DefaultTuning()
	rng := rand.New(rand.NewSource(1))
	g := genetics.New()
	g.Set(traits.Cannibalism, 1)
	b := NewBlueprint(rng, tun, components.Cannibal, g, 0, 0)
	if want := float32(0.3 * 1.25); !approxEqual(b.Predator.CannibalFactor, want, 1e-5) {
		t.Errorf("cannibal factor = %v, want %v", b.Predator.CannibalFactor, want)
	}
	h := NewBlueprint(rng, tun, components.Hunter, g, 0, 0)
	if h.Predator.CannibalFactor != 0 {
		t.Errorf("hunter cannibal factor = %v, want 0", h.Predator.CannibalFactor)
	}
}
