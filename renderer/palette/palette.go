// Package palette holds the colors and glyphs shared by the window and
// terminal viewers.
package palette

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/terrain"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Shade scales every channel by f, saturating at 255.
func (c RGB) Shade(f float32) RGB {
	return RGB{R: scale(c.R, f), G: scale(c.G, f), B: scale(c.B, f)}
}

func scale(v uint8, f float32) uint8 {
	s := float32(v) * f
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}

var variantColors = [components.VariantCount]RGB{
	components.Grazer:   {R: 240, G: 230, B: 140},
	components.Hunter:   {R: 220, G: 60, B: 50},
	components.Cannibal: {R: 170, G: 80, B: 220},
}

var variantGlyphs = [components.VariantCount]rune{
	components.Grazer:   'g',
	components.Hunter:   'H',
	components.Cannibal: 'C',
}

// Variant returns the body color of v.
func Variant(v components.Variant) RGB {
	if v >= components.VariantCount {
		return RGB{R: 255, G: 255, B: 255}
	}
	return variantColors[v]
}

// Glyph returns the terminal character of v.
func Glyph(v components.Variant) rune {
	if v >= components.VariantCount {
		return '?'
	}
	return variantGlyphs[v]
}

// Terrain returns the base color of a tile kind.
func Terrain(k terrain.Kind) RGB {
	r, g, b := k.Color()
	return RGB{R: r, G: g, B: b}
}

// textureScale is the noise frequency per tile.
const textureScale = 0.35

// TileColors returns a row-major color per tile of q. Each tile is its
// kind's base color shaded by low-frequency noise so large patches read
// as textured rather than flat.
func TileColors(q terrain.Query, seed int64) []RGB {
	w, h := q.Width(), q.Height()
	noise := opensimplex.NewNormalized(seed)

	out := make([]RGB, w*h)
	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			n := noise.Eval2(float64(tx)*textureScale, float64(ty)*textureScale)
			out[ty*w+tx] = Terrain(q.Classify(tx, ty)).Shade(0.88 + 0.2*float32(n))
		}
	}
	return out
}
