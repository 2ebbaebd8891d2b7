package genetics

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/terrarium/traits"
)

func inRange(t *testing.T, g *Genome) {
	t.Helper()
	for _, name := range g.Names() {
		v := g.Get(name, -1)
		if v < 0 || v > 1 {
			t.Fatalf("trait %s = %v, outside [0,1]", name, v)
		}
	}
}

func TestRandomize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := Random(rng)

	if g.Len() != len(traits.Canonical) {
		t.Fatalf("expected %d traits, got %d", len(traits.Canonical), g.Len())
	}
	for _, name := range traits.Canonical {
		if !g.Has(name) {
			t.Errorf("missing canonical trait %s", name)
		}
	}
	inRange(t, g)
}

func TestGetDefault(t *testing.T) {
	g := New()
	if got := g.Get("missing", 0.42); got != 0.42 {
		t.Errorf("Get on missing trait = %v, want 0.42", got)
	}

	var nilGenome *Genome
	if got := nilGenome.Get(traits.Speed, 0.5); got != 0.5 {
		t.Errorf("Get on nil genome = %v, want 0.5", got)
	}
}

func TestSetClamps(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-0.3, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{7, 1},
	}

	g := New()
	for _, tt := range tests {
		g.Set(traits.Size, tt.in)
		if got := g.Get(traits.Size, -1); got != tt.want {
			t.Errorf("Set(%v) stored %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMutateStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := New()
	// Start at the edges so clamping is exercised.
	for i, name := range traits.Canonical {
		g.Set(name, float32(i%2))
	}

	for i := 0; i < 500; i++ {
		g.Mutate(rng)
		inRange(t, g)
	}
}

func TestMutateRate(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := Random(rng)

	const calls = 20000
	total := 0
	for i := 0; i < calls; i++ {
		total += g.Mutate(rng)
	}

	// Binomial(7, 0.2) has mean 1.4.
	mean := float64(total) / calls
	if math.Abs(mean-1.4) > 0.05 {
		t.Errorf("mean mutations per call = %v, want ~1.4", mean)
	}
}

func TestMutateDeltaBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		g := New()
		g.Set(traits.Speed, 0.5)
		g.MutateWith(rng, Rates{Chance: 1, Amount: 0.2})
		v := g.Get(traits.Speed, 0)
		if v < 0.3-1e-6 || v > 0.7+1e-6 {
			t.Fatalf("mutated value %v outside [0.3, 0.7]", v)
		}
	}
}

func TestClone(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := Random(rng)
	c := g.Clone()

	for _, name := range g.Names() {
		if g.Get(name, -1) != c.Get(name, -2) {
			t.Errorf("clone differs on %s", name)
		}
	}

	c.Set(traits.Size, 1)
	g.Set(traits.Size, 0)
	if c.Get(traits.Size, -1) != 1 {
		t.Error("clone shares storage with original")
	}
}

func TestCombineNilParent(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	a := Random(rng)

	for _, child := range []*Genome{Combine(rng, a, nil), Combine(rng, nil, a), Combine(rng, nil, nil)} {
		if child.Len() != len(traits.Canonical) {
			t.Fatalf("expected %d traits, got %d", len(traits.Canonical), child.Len())
		}
		for _, name := range traits.Canonical {
			if !child.Has(name) {
				t.Errorf("missing canonical trait %s", name)
			}
		}
		inRange(t, child)
	}
}

func TestCombineOutcomes(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	a := New()
	b := New()
	a.Set(traits.Speed, 0.2)
	b.Set(traits.Speed, 0.8)

	// Without mutation each shared trait is one of {mean, a, b}.
	noMutation := Rates{Chance: 0, Amount: 0}
	allowed := map[float32]bool{0.2: true, 0.8: true, 0.5: true}

	for _, order := range [][2]*Genome{{a, b}, {b, a}} {
		counts := map[float32]int{}
		const trials = 4000
		for i := 0; i < trials; i++ {
			child := CombineWith(rng, order[0], order[1], noMutation)
			v := child.Get(traits.Speed, -1)
			if !allowed[v] {
				t.Fatalf("child value %v not in {mean, a, b}", v)
			}
			counts[v]++
		}

		// Mean 50%, each parent 25%.
		if f := float64(counts[0.5]) / trials; math.Abs(f-0.5) > 0.04 {
			t.Errorf("mean picked %v of the time, want ~0.5", f)
		}
		if f := float64(counts[0.2]) / trials; math.Abs(f-0.25) > 0.04 {
			t.Errorf("low parent picked %v of the time, want ~0.25", f)
		}
	}
}

func TestCombineUniqueTraitsPassThrough(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	a := New()
	b := New()
	a.Set(traits.Cannibalism, 0.9)
	b.Set("camouflage", 0.1)

	child := CombineWith(rng, a, b, Rates{})
	if got := child.Get(traits.Cannibalism, -1); got != 0.9 {
		t.Errorf("cannibalism = %v, want 0.9", got)
	}
	if got := child.Get("camouflage", -1); got != 0.1 {
		t.Errorf("camouflage = %v, want 0.1", got)
	}
}

func TestCombineStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	for i := 0; i < 500; i++ {
		child := Combine(rng, Random(rng), Random(rng))
		inRange(t, child)
	}
}

func TestCompatibility(t *testing.T) {
	a := New()
	b := New()
	a.Set(traits.Size, 0.2)
	a.Set(traits.Speed, 0.6)
	b.Set(traits.Size, 0.4)
	b.Set(traits.Speed, 0.6)
	b.Set(traits.Strength, 1)

	tests := []struct {
		name string
		g, o *Genome
		want float32
	}{
		{"identical", a, a, 1},
		{"partial overlap", a, b, 0.9},
		{"nil other", a, nil, 0},
		{"nothing shared", a, func() *Genome { g := New(); g.Set("other", 1); return g }(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.g.Compatibility(tt.o)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("Compatibility = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	g := New()
	g.Set(traits.Speed, 0.5)
	g.Set(traits.Adaption, 0.25)

	want := "Genome{adaption=0.25, speed=0.50}"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestUnmarshalClamps(t *testing.T) {
	var g Genome
	if err := json.Unmarshal([]byte(`{"size": 1.5, "speed": -2, "energy": 0.3}`), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.Get(traits.Size, -1) != 1 || g.Get(traits.Speed, -1) != 0 {
		t.Errorf("values not clamped: %v", g.String())
	}
	if g.Get(traits.Energy, -1) != 0.3 {
		t.Errorf("energy = %v, want 0.3", g.Get(traits.Energy, -1))
	}
}
