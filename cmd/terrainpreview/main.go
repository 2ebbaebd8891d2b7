// Terrain preview tool - interactive noise terrain tuning with sliders.
//
// Usage: go run ./cmd/terrainpreview [-config config.yaml] [-out map.json]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/terrarium/config"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/renderer/palette"
	"github.com/pthm-cable/terrarium/terrain"
)

const (
	windowWidth  = 1100
	windowHeight = 760
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

// slider binds one noise parameter to a slider row.
type slider struct {
	label    string
	min, max float32
	value    *float64
	format   string
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "terrain.json", "Where Save writes the map")
	seed := flag.Int64("seed", 12345, "Noise seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.Terrain.Path = ""
	cfg.Terrain.Generator = "noise"
	defaults := cfg.Terrain.Noise
	n := &cfg.Terrain.Noise

	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	w, h := cfg.World.Width, cfg.World.Height
	img := rl.GenImageColor(w, h, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	octaves := float64(n.Octaves)
	sliders := []slider{
		{"Scale (base frequency)", 0.01, 0.3, &n.Scale, "%.3f"},
		{"Octaves", 1, 8, &octaves, "%.0f"},
		{"Lacunarity", 1.5, 4, &n.Lacunarity, "%.2f"},
		{"Gain", 0.2, 0.9, &n.Gain, "%.2f"},
		{"Water level", 0, 1, &n.WaterLevel, "%.2f"},
		{"Sand level", 0, 1, &n.SandLevel, "%.2f"},
		{"Hill level", 0, 1, &n.HillLevel, "%.2f"},
		{"Peak level", 0, 1, &n.PeakLevel, "%.2f"},
		{"Forest moisture", 0, 1, &n.ForestWet, "%.2f"},
		{"Dirt dryness", 0, 1, &n.DirtDry, "%.2f"},
	}

	var grid *terrain.Grid
	status := ""
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			n.Octaves = int(octaves + 0.5)
			grid, _, err = game.BuildTerrain(cfg, *seed)
			if err != nil {
				slog.Error("failed to build terrain", "error", err)
				os.Exit(1)
			}
			updateTexture(texture, grid, *seed)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		rl.DrawText(coverage(grid), 15, previewSize+25, 16, rl.DarkGray)
		rl.DrawText(status, 15, previewSize+50, 16, rl.DarkGreen)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Noise Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*s.value), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(v) != float64(float32(*s.value)) {
				*s.value = float64(v)
				needsRegen = true
			}
			panelY += 32
		}

		rl.DrawText(fmt.Sprintf("Seed: %d", *seed), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			*seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			*n = defaults
			octaves = float64(defaults.Octaves)
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 260, Y: panelY, Width: 120, Height: 30}, "Save Map") {
			if err := grid.Save(*outPath); err != nil {
				status = "save failed: " + err.Error()
			} else {
				status = "saved " + *outPath
			}
		}
		panelY += 45

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		snippet := noiseYAML(*n)
		for _, line := range strings.Split(snippet, "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()
	}
}

// noiseYAML renders the noise block as it appears under terrain: in a config.
func noiseYAML(n config.NoiseConfig) string {
	out, err := yaml.Marshal(map[string]config.NoiseConfig{"noise": n})
	if err != nil {
		return err.Error()
	}
	return strings.TrimRight(string(out), "\n")
}

func coverage(g *terrain.Grid) string {
	total := float64(g.Width() * g.Height())
	parts := make([]string, 0, len(terrain.Kinds()))
	for _, k := range terrain.Kinds() {
		if c := g.Count(k); c > 0 {
			parts = append(parts, fmt.Sprintf("%s %.0f%%", k, 100*float64(c)/total))
		}
	}
	return strings.Join(parts, "  ")
}

func updateTexture(texture rl.Texture2D, g *terrain.Grid, seed int64) {
	colors := palette.TileColors(g, seed)
	pixels := make([]color.RGBA, len(colors))
	for i, c := range colors {
		pixels[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
