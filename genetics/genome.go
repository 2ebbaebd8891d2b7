// Package genetics provides the heritable trait map carried by every agent.
package genetics

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/pthm-cable/terrarium/traits"
)

// Rates controls how often and how far traits drift during mutation.
type Rates struct {
	Chance float32 // per-trait probability of mutating
	Amount float32 // max absolute delta of a single mutation
}

// DefaultRates are the rates used when no configuration is supplied.
var DefaultRates = Rates{Chance: 0.2, Amount: 0.2}

// Genome maps trait names to values in [0,1].
// Values are clamped on every write.
type Genome struct {
	traits map[string]float32
}

// New returns an empty genome.
func New() *Genome {
	return &Genome{traits: make(map[string]float32, len(traits.Canonical))}
}

// Random returns a genome with every canonical trait drawn uniformly from [0,1].
func Random(rng *rand.Rand) *Genome {
	g := New()
	g.Randomize(rng)
	return g
}

// Randomize assigns each canonical trait a uniform value in [0,1].
// Extra traits already present are left untouched.
func (g *Genome) Randomize(rng *rand.Rand) {
	for _, name := range traits.Canonical {
		g.traits[name] = rng.Float32()
	}
}

// Get returns the stored value for trait, or def when it is absent.
// A nil genome returns def for every trait.
func (g *Genome) Get(trait string, def float32) float32 {
	if g == nil {
		return def
	}
	if v, ok := g.traits[trait]; ok {
		return v
	}
	return def
}

// Has reports whether trait is stored.
func (g *Genome) Has(trait string) bool {
	if g == nil {
		return false
	}
	_, ok := g.traits[trait]
	return ok
}

// Set stores value for trait after clamping it to [0,1].
func (g *Genome) Set(trait string, value float32) {
	g.traits[trait] = clamp01(value)
}

// Len returns the number of stored traits.
func (g *Genome) Len() int {
	if g == nil {
		return 0
	}
	return len(g.traits)
}

// Names returns the stored trait names in sorted order.
func (g *Genome) Names() []string {
	if g == nil {
		return nil
	}
	names := make([]string, 0, len(g.traits))
	for name := range g.traits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mutate perturbs traits using DefaultRates. See MutateWith.
func (g *Genome) Mutate(rng *rand.Rand) int {
	return g.MutateWith(rng, DefaultRates)
}

// MutateWith gives every stored trait an independent r.Chance of receiving a
// uniform delta in [-r.Amount, r.Amount]. Returns the number of traits changed.
// Traits are visited in sorted order so a seeded rng replays exactly.
func (g *Genome) MutateWith(rng *rand.Rand, r Rates) int {
	mutated := 0
	for _, name := range g.Names() {
		if rng.Float32() >= r.Chance {
			continue
		}
		delta := (rng.Float32()*2 - 1) * r.Amount
		g.Set(name, g.traits[name]+delta)
		mutated++
	}
	return mutated
}

// Clone returns a deep copy. Cloning nil yields an empty genome.
func (g *Genome) Clone() *Genome {
	if g == nil {
		return New()
	}
	c := &Genome{traits: make(map[string]float32, len(g.traits))}
	for name, v := range g.traits {
		c.traits[name] = v
	}
	return c
}

// Combine crosses two parents using DefaultRates. See CombineWith.
func Combine(rng *rand.Rand, a, b *Genome) *Genome {
	return CombineWith(rng, a, b, DefaultRates)
}

// CombineWith produces a child genome from two parents.
//
// For each trait both parents carry, the child gets either the mean of the two
// values or one parent's value picked by coin flip, each with probability 0.5.
// Traits carried by only one parent pass through unchanged. The child then has
// a 2*r.Chance probability of one whole-genome mutation.
//
// If either parent is nil a fresh random genome is returned.
func CombineWith(rng *rand.Rand, a, b *Genome, r Rates) *Genome {
	if a == nil || b == nil {
		return Random(rng)
	}

	child := New()
	for _, name := range a.Names() {
		av := a.traits[name]
		bv, shared := b.traits[name]
		if !shared {
			child.traits[name] = av
			continue
		}
		if rng.Float32() < 0.5 {
			child.Set(name, (av+bv)/2)
		} else if rng.Float32() < 0.5 {
			child.Set(name, av)
		} else {
			child.Set(name, bv)
		}
	}
	for _, name := range b.Names() {
		if _, ok := child.traits[name]; !ok {
			child.traits[name] = b.traits[name]
		}
	}

	if rng.Float32() < 2*r.Chance {
		child.MutateWith(rng, r)
	}
	return child
}

// Compatibility returns 1 minus the mean absolute difference over the traits
// both genomes carry. It is 0 when other is nil or nothing is shared.
func (g *Genome) Compatibility(other *Genome) float32 {
	if g == nil || other == nil {
		return 0
	}
	var sum float32
	var n int
	for name, v := range g.traits {
		ov, ok := other.traits[name]
		if !ok {
			continue
		}
		d := v - ov
		if d < 0 {
			d = -d
		}
		sum += d
		n++
	}
	if n == 0 {
		return 0
	}
	return 1 - sum/float32(n)
}

// String renders the genome as Genome{name=value, ...} with sorted names.
func (g *Genome) String() string {
	var sb strings.Builder
	sb.WriteString("Genome{")
	for i, name := range g.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%.2f", name, g.traits[name])
	}
	sb.WriteString("}")
	return sb.String()
}

// MarshalJSON encodes the genome as a flat name-to-value object.
func (g *Genome) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.traits)
}

// UnmarshalJSON decodes a flat object, clamping every value.
func (g *Genome) UnmarshalJSON(data []byte) error {
	var raw map[string]float32
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding genome: %w", err)
	}
	g.traits = make(map[string]float32, len(raw))
	for name, v := range raw {
		g.Set(name, v)
	}
	return nil
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
