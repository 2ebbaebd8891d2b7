// Package systems implements the per-tick agent model: steering, variant
// behaviors, predation, reproduction and agent construction.
package systems

import "sort"

// Neighbor holds a nearby slot with precomputed spatial data.
type Neighbor struct {
	Index  int
	DX, DY float32 // delta from query origin
	DistSq float32
}

type cellEntry struct {
	index int
	x, y  float32
}

// SpatialGrid buckets agent slots by position over a bounded world.
// Positions outside the world are stored in the nearest edge cell.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]cellEntry
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]cellEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]cellEntry, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all slots from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert records slot index at the given position.
func (g *SpatialGrid) Insert(index int, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], cellEntry{index: index, x: x, y: y})
}

// QueryRadiusInto appends every slot within radius of (x, y) to dst,
// excluding the given slot. Reuse dst across calls to avoid allocations.
// Results are in cell order; use SortByIndex when order matters.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, exclude int) []Neighbor {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(x, y)
	radiusSq := radius * radius

	minCol, maxCol := max(centerCol-cellRadius, 0), min(centerCol+cellRadius, g.cols-1)
	minRow, maxRow := max(centerRow-cellRadius, 0), min(centerRow+cellRadius, g.rows-1)

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				if e.index == exclude {
					continue
				}
				dx, dy := e.x-x, e.y-y
				distSq := dx*dx + dy*dy
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{Index: e.index, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// SortByIndex orders neighbors by ascending slot index.
func SortByIndex(ns []Neighbor) {
	sort.Slice(ns, func(i, j int) bool { return ns[i].Index < ns[j].Index })
}

func (g *SpatialGrid) cellCoords(x, y float32) (col, row int) {
	col = int(x / g.cellSize)
	row = int(y / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
