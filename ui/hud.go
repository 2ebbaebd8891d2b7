package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/systems"
	"github.com/pthm-cable/terrarium/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Counts       [components.VariantCount]int
	Tick         int32
	SimTime      float32
	Speed        int
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD across the top center of the screen.
func (h *HUD) Draw(data HUDData) {
	x := data.ScreenWidth/2 - 180
	rl.DrawText(data.Title, x, 10, 20, rl.White)

	cx := x
	for _, v := range components.Variants() {
		label := fmt.Sprintf("%s: %d", v, data.Counts[v])
		h.renderer.DrawColorSwatch(cx, 36, label, h.renderer.Theme.Variants[v])
		cx += 120
	}

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.0fs | Speed: %dx | FPS: %d", data.Tick, data.SimTime, data.Speed, data.FPS),
		x, 54, 14, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", x, 72, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the tick phase breakdown, grouped by system category.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		registry: systems.NewSystemRegistry(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	cats := p.registry.Categories()
	rows := len(p.registry.All()) + len(cats)
	p.renderer.DrawPanel(x-6, y-6, 270, int32(16*rows+54))

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  P95: %s  %.0f t/s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.P95TickDuration.Round(time.Microsecond),
		stats.TicksPerSecond), x, y, 12, rl.Yellow)
	y += 16

	for _, cat := range cats {
		rl.DrawText(cat, x, y, 12, rl.SkyBlue)
		y += 16
		for _, info := range p.registry.ByCategory(cat) {
			pct := stats.PhasePct[info.ID]

			color := rl.LightGray
			if pct > 40 {
				color = rl.Red
			} else if pct > 20 {
				color = rl.Orange
			}

			rl.DrawText(
				fmt.Sprintf("  %-12s %8s %5.1f%%", info.Name, stats.PhaseAvg[info.ID].Round(time.Microsecond), pct),
				x, y, 12, color,
			)
			y += 16
		}
	}
}

// StatsPanel renders the most recent telemetry window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new window stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the stats panel. ok is false before the first window closes.
func (s *StatsPanel) Draw(stats telemetry.WindowStats, ok bool) int32 {
	r := s.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := s.width - padding*2

	panelHeight := lineHeight*12 + padding*2 + 14
	r.DrawPanel(s.x, s.y, s.width, panelHeight)

	y := s.y + padding
	rl.DrawText("Last Window", s.x+padding, y, 14, rl.White)
	y += lineHeight + 2

	if !ok {
		rl.DrawText("(collecting)", s.x+padding, y, r.Theme.FontSize, r.Theme.LabelColor)
		return s.y + panelHeight
	}

	x := s.x + padding
	y = r.DrawLabelValue(x, y, "Window end", fmt.Sprintf("%.0fs", stats.SimTimeSec))
	theme := r.Theme
	y = r.DrawShareBar(x, y, inner,
		[]int{stats.Grazers, stats.Hunters, stats.Cannibals},
		[]rl.Color{theme.Variants[components.Grazer], theme.Variants[components.Hunter], theme.Variants[components.Cannibal]})
	y = r.DrawLabelValue(x, y, "Births", fmt.Sprintf("%d / %d / %d", stats.GrazerBirths, stats.HunterBirths, stats.CannibalBirths))
	y = r.DrawLabelValue(x, y, "Deaths", fmt.Sprintf("%d / %d / %d", stats.GrazerDeaths, stats.HunterDeaths, stats.CannibalDeaths))
	y = r.DrawLabelValue(x, y, "Kills", fmt.Sprintf("%d (%d cannibal)", stats.Kills, stats.CannibalKills))
	y = r.DrawLabelValue(x, y, "Floor spawns", fmt.Sprintf("%d", stats.FloorSpawns))
	y = r.DrawLabelValue(x, y, "Generation", fmt.Sprintf("%.1f (max %d)", stats.GenerationMean, stats.GenerationMax))

	y = r.DrawSectionHeader(x, y+4, "Mean energy")
	y = r.DrawEnergyBar(x, y, "Grazer", float32(stats.GrazerEnergyMean), inner)
	y = r.DrawEnergyBar(x, y, "Hunter", float32(stats.HunterEnergyMean), inner)
	y = r.DrawEnergyBar(x, y, "Cannibal", float32(stats.CannibalEnergyMean), inner)

	return y
}
