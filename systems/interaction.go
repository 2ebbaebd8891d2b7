package systems

import (
	"math/rand"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/traits"
)

// PredationEvent records one resolved predation attempt.
type PredationEvent struct {
	Attacker int // slot
	Victim   int // slot
	Chance   float32
	Success  bool
	Gain     float32 // energy credited to the attacker, after capping
}

// Attacks reports whether a collision between attacker and victim variants is
// a predation attempt by attacker. Only hunter on grazer and cannibal on
// hunter qualify.
func Attacks(attacker, victim components.Variant) bool {
	return (attacker == components.Hunter && victim == components.Grazer) ||
		(attacker == components.Cannibal && victim == components.Hunter)
}

// PredationChance is the raw success probability
// BaseChance + strength*StrengthWeight - preySpeed*SpeedWeight.
// It is not clamped and may leave [0,1] for extreme weights.
func PredationChance(t *Tuning, strength, preySpeed float32) float32 {
	return t.BaseChance + strength*t.StrengthWeight - preySpeed*t.SpeedWeight
}

// chanceFor evaluates PredationChance from the genomes of the pair. Only a
// grazer victim contributes its speed.
func chanceFor(t *Tuning, attacker, victim Agent) float32 {
	strength := attacker.Org.Genome.Get(traits.Strength, traits.Neutral)
	var speed float32
	if victim.Org.Variant == components.Grazer {
		speed = victim.Org.Genome.Get(traits.Speed, traits.Neutral)
	}
	p := PredationChance(t, strength, speed)
	if t.ClampChance {
		p = clamp01(p)
	}
	return p
}

// Colliding reports circle overlap between two agents.
func Colliding(a, b Agent) bool {
	r := a.Body.Size + b.Body.Size
	return distanceSq(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y) < r*r
}

// ResolveInteractions tests every unordered pair of live agents for
// collision and resolves predation, appending one event per attempt to dst.
//
// Pairs are visited in ascending (i, j) slot order. When grid is non-nil it
// must hold every live agent at its current position and is used only to
// skip distant pairs; the visiting order and therefore the random draws are
// the same as the exhaustive scan.
func ResolveInteractions(dst []PredationEvent, rng *rand.Rand, t *Tuning, agents []Agent, grid *SpatialGrid) []PredationEvent {
	if grid == nil {
		for i := range agents {
			for j := i + 1; j < len(agents); j++ {
				dst = resolvePair(dst, rng, t, agents, i, j)
			}
		}
		return dst
	}

	maxSize := float32(0)
	for i := range agents {
		maxSize = max(maxSize, agents[i].Body.Size)
	}

	var near []Neighbor
	for i := range agents {
		a := agents[i]
		if !a.Vitals.Alive {
			continue
		}
		near = grid.QueryRadiusInto(near[:0], a.Pos.X, a.Pos.Y, a.Body.Size+maxSize, i)
		SortByIndex(near)
		for _, n := range near {
			if n.Index > i {
				dst = resolvePair(dst, rng, t, agents, i, n.Index)
			}
		}
	}
	return dst
}

func resolvePair(dst []PredationEvent, rng *rand.Rand, t *Tuning, agents []Agent, i, j int) []PredationEvent {
	a, b := agents[i], agents[j]
	if !a.Vitals.Alive || !b.Vitals.Alive || !Colliding(a, b) {
		return dst
	}

	var attacker, victim int
	switch {
	case Attacks(a.Org.Variant, b.Org.Variant):
		attacker, victim = i, j
	case Attacks(b.Org.Variant, a.Org.Variant):
		attacker, victim = j, i
	default:
		return dst
	}

	att, vic := agents[attacker], agents[victim]
	ev := PredationEvent{Attacker: attacker, Victim: victim, Chance: chanceFor(t, att, vic)}
	if rng.Float32() < ev.Chance {
		ev.Success = true
		vic.Vitals.Die()
		before := att.Vitals.Energy
		att.Vitals.AddEnergy(vic.Body.Size * t.EnergyPerSize)
		ev.Gain = att.Vitals.Energy - before
	}
	return append(dst, ev)
}
