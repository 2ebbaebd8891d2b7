package terrain

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// Patch describes one layer of the patch generator.
type Patch struct {
	Kind     Kind
	Coverage float64 // target fraction of tiles to paint
	MinSize  int     // patch radius range in tiles
	MaxSize  int
}

// maxPatches bounds a single layer when coverage cannot be reached.
const maxPatches = 10000

// AddPatches paints roughly circular patches of p.Kind until p.Coverage of
// the grid has been painted. Tiles nearer a patch center are painted with
// higher probability, which leaves ragged edges.
func (g *Grid) AddPatches(rng *rand.Rand, p Patch) {
	target := int(float64(g.width*g.height) * p.Coverage)
	if target <= 0 || p.MaxSize < p.MinSize {
		return
	}

	painted := 0
	for n := 0; painted < target && n < maxPatches; n++ {
		cx := rng.Intn(g.width)
		cy := rng.Intn(g.height)
		size := p.MinSize + rng.Intn(p.MaxSize-p.MinSize+1)
		if size <= 0 {
			continue
		}

		for dy := -size; dy <= size; dy++ {
			for dx := -size; dx <= size; dx++ {
				dist := math.Sqrt(float64(dx*dx + dy*dy))
				if dist > float64(size) || rng.Float64() >= 1-dist/float64(size) {
					continue
				}
				if g.InBounds(cx+dx, cy+dy) {
					g.Set(cx+dx, cy+dy, p.Kind)
					painted++
				}
			}
		}
	}
}

// GeneratePatches fills a grass grid and paints each layer in order.
func GeneratePatches(width, height int, rng *rand.Rand, layers []Patch) *Grid {
	g := NewGrid(width, height, Grass)
	for _, p := range layers {
		g.AddPatches(rng, p)
	}
	return g
}

// NoiseParams controls the opensimplex generator.
// Levels are thresholds on normalized [0,1] noise values.
type NoiseParams struct {
	Scale      float64
	Octaves    int
	Lacunarity float64
	Gain       float64
	WaterLevel float64
	SandLevel  float64
	HillLevel  float64
	PeakLevel  float64
	ForestWet  float64
	DirtDry    float64
}

// GenerateNoise classifies tiles from two fractal opensimplex fields,
// elevation and moisture.
func GenerateNoise(width, height int, seed int64, p NoiseParams) *Grid {
	elevation := opensimplex.NewNormalized(seed)
	moisture := opensimplex.NewNormalized(seed + 1)

	g := NewGrid(width, height, Grass)
	for ty := 0; ty < height; ty++ {
		for tx := 0; tx < width; tx++ {
			e := fbm(elevation, float64(tx), float64(ty), p)
			m := fbm(moisture, float64(tx), float64(ty), p)
			g.Set(tx, ty, classify(e, m, p))
		}
	}
	return g
}

func classify(e, m float64, p NoiseParams) Kind {
	switch {
	case e < p.WaterLevel:
		return Water
	case e < p.SandLevel:
		return Sand
	case e >= p.PeakLevel:
		return Snow
	case e >= p.HillLevel:
		if m < p.DirtDry {
			return Stone
		}
		return Mountain
	case m >= p.ForestWet:
		return Forest
	case m < p.DirtDry:
		return Dirt
	default:
		return Grass
	}
}

// fbm sums octaves of normalized noise and rescales the result to [0,1].
func fbm(n opensimplex.Noise, x, y float64, p NoiseParams) float64 {
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}
	freq := p.Scale
	amp := 1.0
	var sum, norm float64
	for i := 0; i < octaves; i++ {
		sum += n.Eval2(x*freq, y*freq) * amp
		norm += amp
		freq *= p.Lacunarity
		amp *= p.Gain
	}
	return sum / norm
}
