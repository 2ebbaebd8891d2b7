// Package terrain provides the tile grid agents live on.
//
// The simulation reads terrain only through Query. Grid is the in-memory
// implementation; generators and JSON persistence build and store Grids.
package terrain

import (
	"fmt"
	"math"
	"strings"
)

// TileSize is the edge length of one tile in world units.
const TileSize = 32

// Kind classifies a tile.
type Kind uint8

const (
	Grass Kind = iota
	Dirt
	Sand
	Stone
	Water
	Forest
	Mountain
	Snow
	numKinds
)

var kindNames = [numKinds]string{"grass", "dirt", "sand", "stone", "water", "forest", "mountain", "snow"}

// Display colors, RGB.
var kindColors = [numKinds][3]uint8{
	{51, 204, 51},   // grass
	{153, 102, 51},  // dirt
	{230, 204, 128}, // sand
	{128, 128, 128}, // stone
	{26, 77, 179},   // water
	{0, 128, 0},     // forest
	{166, 166, 179}, // mountain
	{242, 242, 255}, // snow
}

// Kinds returns every tile kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Color returns the display color of the kind.
func (k Kind) Color() (r, g, b uint8) {
	if k >= numKinds {
		return 0, 0, 0
	}
	c := kindColors[k]
	return c[0], c[1], c[2]
}

// IsFood reports whether grazers can feed on the kind.
func (k Kind) IsFood() bool {
	return k == Grass || k == Forest
}

// ParseKind parses a kind name, ignoring case.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown terrain kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= numKinds {
		return nil, fmt.Errorf("invalid terrain kind %d", uint8(k))
	}
	return []byte(strings.ToUpper(kindNames[k])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Query is the read-only view of terrain the simulation depends on.
// Classify must return Water for coordinates outside the grid.
type Query interface {
	Classify(tx, ty int) Kind
	Width() int
	Height() int
}

// TileAt returns the tile containing the world position.
func TileAt(x, y float32) (tx, ty int) {
	return int(math.Floor(float64(x / TileSize))), int(math.Floor(float64(y / TileSize)))
}

// TileCenter returns the world position at the center of a tile.
func TileCenter(tx, ty int) (x, y float32) {
	return float32(tx)*TileSize + TileSize/2, float32(ty)*TileSize + TileSize/2
}

// KindAt classifies the tile under a world position.
func KindAt(q Query, x, y float32) Kind {
	tx, ty := TileAt(x, y)
	return q.Classify(tx, ty)
}

// Extent returns the world size covered by q in world units.
func Extent(q Query) (w, h float32) {
	return float32(q.Width()) * TileSize, float32(q.Height()) * TileSize
}

// Grid is a dense width x height tile map.
type Grid struct {
	width, height int
	tiles         []Kind // row-major
}

// NewGrid creates a grid filled with kind.
func NewGrid(width, height int, kind Kind) *Grid {
	g := &Grid{width: width, height: height, tiles: make([]Kind, width*height)}
	g.Fill(kind)
	return g
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether the tile lies inside the grid.
func (g *Grid) InBounds(tx, ty int) bool {
	return tx >= 0 && tx < g.width && ty >= 0 && ty < g.height
}

// Classify returns the tile kind, or Water outside the grid.
func (g *Grid) Classify(tx, ty int) Kind {
	if !g.InBounds(tx, ty) {
		return Water
	}
	return g.tiles[ty*g.width+tx]
}

// Set changes one tile. Out-of-bounds writes are ignored.
func (g *Grid) Set(tx, ty int, kind Kind) {
	if !g.InBounds(tx, ty) {
		return
	}
	g.tiles[ty*g.width+tx] = kind
}

// Fill sets every tile to kind.
func (g *Grid) Fill(kind Kind) {
	for i := range g.tiles {
		g.tiles[i] = kind
	}
}

// Count returns how many tiles have the given kind.
func (g *Grid) Count(kind Kind) int {
	n := 0
	for _, k := range g.tiles {
		if k == kind {
			n++
		}
	}
	return n
}
