// Package terminal renders the simulation as colored character cells with
// tcell, for watching runs over SSH or without a display.
package terminal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/terrarium/camera"
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/inspector"
	"github.com/pthm-cable/terrarium/renderer/palette"
	"github.com/pthm-cable/terrarium/terrain"
)

const (
	// cellAspect is the height of a character cell relative to its width.
	cellAspect = 2

	panCells  = 8
	zoomStep  = 1.25
	panelCols = 34
)

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

// Viewer draws a Simulation onto a tcell screen.
// The bottom row is a status line; the rest is the map.
type Viewer struct {
	screen tcell.Screen
	sim    *game.Simulation
	cam    *camera.Camera
	tiles  []palette.RGB
	tilesW int

	selected    uint32
	hasSelected bool
	frameDelay  time.Duration
}

// NewViewer builds a viewer over an initialized screen.
func NewViewer(screen tcell.Screen, sim *game.Simulation) *Viewer {
	cols, rows := screen.Size()
	vw, vh := viewport(cols, rows)
	ww, wh := sim.WorldSize()
	fps := sim.Config().Screen.TargetFPS
	if fps <= 0 {
		fps = 30
	}

	return &Viewer{
		screen:     screen,
		sim:        sim,
		cam:        camera.New(vw, vh, ww, wh),
		tiles:      palette.TileColors(sim.Terrain(), sim.Seed()),
		tilesW:     sim.Terrain().Width(),
		frameDelay: time.Second / time.Duration(fps),
	}
}

// viewport returns the camera viewport for a screen, in half-height cells
// so that world distances look the same along both axes.
func viewport(cols, rows int) (w, h float32) {
	return float32(cols), float32(max(rows-1, 1) * cellAspect)
}

// Camera exposes the viewer's camera.
func (v *Viewer) Camera() *camera.Camera {
	return v.cam
}

// Run steps and redraws until the user quits or maxTicks is reached.
func (v *Viewer) Run(maxTicks int) {
	ticker := time.NewTicker(v.frameDelay)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	for {
		select {
		case ev := <-events:
			if ev == nil || v.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.sim.Update()
			v.Draw()
			if maxTicks > 0 && int(v.sim.Tick()) >= maxTicks {
				slog.Info("max ticks reached", "tick", v.sim.Tick())
				return
			}
		}
	}
}

// HandleEvent applies one input event. It returns true when the viewer
// should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		w, h := viewport(cols, rows)
		v.cam.Resize(w, h)
		v.screen.Sync()
	}
	return false
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.cam.Pan(-panCells, 0)
	case tcell.KeyRight:
		v.cam.Pan(panCells, 0)
	case tcell.KeyUp:
		v.cam.Pan(0, -panCells*cellAspect)
	case tcell.KeyDown:
		v.cam.Pan(0, panCells*cellAspect)
	case tcell.KeyHome:
		v.cam.Reset()
	case tcell.KeyTab:
		v.selectNext()
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return false
}

func (v *Viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return true
	case ' ':
		v.sim.TogglePause()
	case '+', '=', '.':
		v.sim.SpeedUp()
	case '-', ',':
		v.sim.SlowDown()
	case 'z':
		v.cam.ZoomBy(zoomStep)
	case 'x':
		v.cam.ZoomBy(1 / zoomStep)
	case 'i':
		v.hasSelected = false
	case '1', '2', '3':
		variant := components.Variant(r - '1')
		if id, ok := v.sim.Spawn(variant); ok {
			slog.Debug("manual spawn", "variant", variant, "id", id)
		}
	}
	return false
}

// selectNext moves the inspector to the next live agent by ID.
func (v *Viewer) selectNext() {
	pop := v.sim.Population()
	var (
		next, first uint32
		found, seen bool
	)
	for _, a := range pop.Agents {
		if !a.Alive {
			continue
		}
		if !seen || a.ID < first {
			first = a.ID
		}
		seen = true
		if v.hasSelected && a.ID > v.selected && (!found || a.ID < next) {
			next = a.ID
			found = true
		}
	}
	switch {
	case found:
		v.selected = next
	case seen:
		v.selected = first
	default:
		v.hasSelected = false
		return
	}
	v.hasSelected = true
}

// Selected returns the inspected agent, if any.
func (v *Viewer) Selected() (uint32, bool) {
	return v.selected, v.hasSelected
}

// Draw renders the map, agents, inspector panel and status line.
func (v *Viewer) Draw() {
	cols, rows := v.screen.Size()
	mapRows := rows - 1

	v.screen.Clear()
	v.drawTerrain(cols, mapRows)
	pop := v.sim.Population()
	v.drawAgents(pop, cols, mapRows)
	v.drawInspector(cols, mapRows)
	v.drawStatus(cols, rows-1)
	v.screen.Show()
}

func (v *Viewer) drawTerrain(cols, rows int) {
	q := v.sim.Terrain()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			wx, wy := v.cam.ScreenToWorld(float32(cx)+0.5, float32(cy*cellAspect)+cellAspect/2)
			tx, ty := terrain.TileAt(wx, wy)
			if tx < 0 || ty < 0 || tx >= q.Width() || ty >= q.Height() {
				continue
			}
			c := v.tiles[ty*v.tilesW+tx]
			style := tcell.StyleDefault.Background(rgb(c))
			v.screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

func (v *Viewer) drawAgents(pop game.PopulationSnapshot, cols, rows int) {
	for _, a := range pop.Agents {
		if !a.Alive {
			continue
		}
		cx, cy, ok := v.cellOf(a.X, a.Y, cols, rows)
		if !ok {
			continue
		}
		_, _, style, _ := v.screen.GetContent(cx, cy)
		style = style.Foreground(rgb(palette.Variant(a.Variant))).Bold(true)
		if v.hasSelected && a.ID == v.selected {
			style = style.Reverse(true)
		}
		v.screen.SetContent(cx, cy, palette.Glyph(a.Variant), nil, style)
	}
}

// cellOf maps a world position to its character cell.
func (v *Viewer) cellOf(wx, wy float32, cols, rows int) (cx, cy int, ok bool) {
	sx, sy := v.cam.WorldToScreen(wx, wy)
	if sx < 0 || sy < 0 {
		return 0, 0, false
	}
	cx, cy = int(sx), int(sy/cellAspect)
	return cx, cy, cx < cols && cy < rows
}

func (v *Viewer) drawInspector(cols, rows int) {
	if !v.hasSelected {
		return
	}
	detail, ok := v.sim.Inspect(v.selected)
	if !ok {
		v.hasSelected = false
		return
	}

	lines := []string{fmt.Sprintf("#%d %s", detail.Organism.ID, detail.Organism.Variant)}
	for _, sec := range inspector.Sections(&detail) {
		lines = append(lines, "-- "+sec.Title)
		for _, f := range sec.Fields {
			lines = append(lines, " "+inspector.FormatField(f))
		}
	}

	x := max(cols-panelCols, 0)
	for y, line := range lines {
		if y >= rows {
			break
		}
		drawText(v.screen, x, y, panelCols, line, statusStyle)
	}
}

func (v *Viewer) drawStatus(cols, row int) {
	counts := v.sim.Counts()
	status := fmt.Sprintf("tick %d  %s %d  %s %d  %s %d  x%d",
		v.sim.Tick(),
		components.Grazer, counts[components.Grazer],
		components.Hunter, counts[components.Hunter],
		components.Cannibal, counts[components.Cannibal],
		v.sim.StepsPerUpdate())
	if v.sim.Paused() {
		status += "  [paused]"
	}
	drawText(v.screen, 0, row, cols, status, statusStyle)
}

// drawText writes s at (x, y), padding with spaces to width.
func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= width {
			return
		}
		s.SetContent(x+col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.SetContent(x+col, y, ' ', nil, style)
	}
}

func rgb(c palette.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
