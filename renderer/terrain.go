// Package renderer draws the simulation into a raylib window.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/camera"
	"github.com/pthm-cable/terrarium/renderer/palette"
	"github.com/pthm-cable/terrarium/terrain"
	"github.com/pthm-cable/terrarium/ui"
)

// TerrainRenderer draws the tile map through the camera with textured
// colors and shaded borders between differing kinds.
type TerrainRenderer struct {
	q      terrain.Query
	colors []palette.RGB
	width  int
	height int
}

// NewTerrainRenderer precomputes tile colors for q.
func NewTerrainRenderer(q terrain.Query, seed int64) *TerrainRenderer {
	return &TerrainRenderer{
		q:      q,
		colors: palette.TileColors(q, seed),
		width:  q.Width(),
		height: q.Height(),
	}
}

// Draw renders the visible tiles.
func (r *TerrainRenderer) Draw(cam *camera.Camera, showGrid bool) {
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	tx0, ty0 := terrain.TileAt(minX, minY)
	tx1, ty1 := terrain.TileAt(maxX, maxY)
	tx0, ty0 = max(tx0, 0), max(ty0, 0)
	tx1, ty1 = min(tx1, r.width-1), min(ty1, r.height-1)

	// One extra pixel hides seams from float rounding.
	size := float32(terrain.TileSize)*cam.Zoom + 1

	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			sx, sy := cam.WorldToScreen(float32(tx)*terrain.TileSize, float32(ty)*terrain.TileSize)
			c := r.colors[ty*r.width+tx]
			base := ui.Color(c, 255)
			rl.DrawRectangle(int32(sx), int32(sy), int32(size), int32(size), base)
			r.drawTileEdges(tx, ty, sx, sy, size, c)

			if showGrid {
				rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: size, Height: size}, 1, rl.Color{R: 0, G: 0, B: 0, A: 40})
			}
		}
	}
}

// drawTileEdges shades borders where the neighboring tile has another kind:
// lit on the top and left, shadowed on the bottom and right.
func (r *TerrainRenderer) drawTileEdges(tx, ty int, sx, sy, size float32, c palette.RGB) {
	kind := r.q.Classify(tx, ty)
	edge := float32(math.Max(1, float64(size*0.1)))

	lit := ui.Color(c.Shade(1.2), 180)
	shadow := ui.Color(c.Shade(0.65), 180)

	if ty > 0 && r.q.Classify(tx, ty-1) != kind {
		rl.DrawRectangle(int32(sx), int32(sy), int32(size), int32(edge), lit)
	}
	if tx > 0 && r.q.Classify(tx-1, ty) != kind {
		rl.DrawRectangle(int32(sx), int32(sy), int32(edge), int32(size), lit)
	}
	if ty < r.height-1 && r.q.Classify(tx, ty+1) != kind {
		rl.DrawRectangle(int32(sx), int32(sy+size-edge), int32(size), int32(edge), shadow)
	}
	if tx < r.width-1 && r.q.Classify(tx+1, ty) != kind {
		rl.DrawRectangle(int32(sx+size-edge), int32(sy), int32(edge), int32(size), shadow)
	}
}
