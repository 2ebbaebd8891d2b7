package terrain

import (
	"encoding/json"
	"fmt"
	"os"
)

// mapFile is the on-disk layout. TerrainData is indexed [x][y].
type mapFile struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	TerrainData [][]Kind `json:"terrainData"`
}

// Save writes the grid as JSON.
func (g *Grid) Save(path string) error {
	mf := mapFile{Width: g.width, Height: g.height, TerrainData: make([][]Kind, g.width)}
	for x := 0; x < g.width; x++ {
		col := make([]Kind, g.height)
		for y := 0; y < g.height; y++ {
			col[y] = g.Classify(x, y)
		}
		mf.TerrainData[x] = col
	}

	data, err := json.Marshal(mf)
	if err != nil {
		return fmt.Errorf("marshaling terrain: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing terrain: %w", err)
	}
	return nil
}

// Load reads a grid written by Save.
func Load(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading terrain: %w", err)
	}

	var mf mapFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing terrain: %w", err)
	}
	if mf.Width <= 0 || mf.Height <= 0 {
		return nil, fmt.Errorf("parsing terrain: invalid size %dx%d", mf.Width, mf.Height)
	}
	if len(mf.TerrainData) != mf.Width {
		return nil, fmt.Errorf("parsing terrain: expected %d columns, got %d", mf.Width, len(mf.TerrainData))
	}

	g := NewGrid(mf.Width, mf.Height, Grass)
	for x, col := range mf.TerrainData {
		if len(col) != mf.Height {
			return nil, fmt.Errorf("parsing terrain: column %d has %d rows, want %d", x, len(col), mf.Height)
		}
		for y, k := range col {
			g.Set(x, y, k)
		}
	}
	return g, nil
}
