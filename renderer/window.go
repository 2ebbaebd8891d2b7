package renderer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/camera"
	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/ui"
)

const (
	panSpeed      = 600 // screen pixels per second
	zoomStep      = 1.1
	controlsWidth = 240
)

var backgroundColor = rl.Color{R: 16, G: 18, B: 22, A: 255}

const controlsLegend = "SPACE pause | ,/. or +/- speed | 1/2/3 spawn | arrows pan | wheel zoom | HOME reset | click inspect"

// Window is the interactive raylib viewer.
type Window struct {
	sim *game.Simulation
	cam *camera.Camera

	terrain   *TerrainRenderer
	agents    *AgentRenderer
	inspector *ui.Inspector

	hud        *ui.HUD
	controls   *ui.ControlsPanel
	statsPanel *ui.StatsPanel
	perfPanel  *ui.PerfPanel
	overlays   *ui.OverlayRegistry

	screenWidth  float32
	screenHeight float32
	maxTicks     int
}

// NewWindow opens a window sized from the simulation's config.
func NewWindow(sim *game.Simulation, maxTicks int) *Window {
	cfg := sim.Config()
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Terrarium")
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	ww, wh := sim.WorldSize()

	return &Window{
		sim:          sim,
		cam:          camera.New(w, h, ww, wh),
		terrain:      NewTerrainRenderer(sim.Terrain(), sim.Seed()),
		agents:       NewAgentRenderer(),
		inspector:    ui.NewInspector(int32(w)),
		hud:          ui.NewHUD(),
		controls:     ui.NewControlsPanel(10, 10, controlsWidth),
		statsPanel:   ui.NewStatsPanel(10, 0, controlsWidth),
		perfPanel:    ui.NewPerfPanel(16, 0),
		overlays:     ui.NewOverlayRegistry(),
		screenWidth:  w,
		screenHeight: h,
		maxTicks:     maxTicks,
	}
}

// Run drives update and draw until the window closes or maxTicks is reached.
func (w *Window) Run() {
	defer rl.CloseWindow()

	for !rl.WindowShouldClose() {
		w.handleInput()
		w.sim.Update()
		w.draw()

		if w.maxTicks > 0 && int(w.sim.Tick()) >= w.maxTicks {
			slog.Info("max ticks reached", "tick", w.sim.Tick())
			return
		}
	}
}

// handleInput processes keyboard and mouse input.
func (w *Window) handleInput() {
	w.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		w.sim.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyPeriod) || rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		w.sim.SpeedUp()
	}
	if rl.IsKeyPressed(rl.KeyComma) || rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		w.sim.SlowDown()
	}

	spawnKeys := [components.VariantCount]int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree}
	for _, v := range components.Variants() {
		if rl.IsKeyPressed(spawnKeys[v]) {
			w.spawn(v)
		}
	}

	w.overlays.HandleKeys()
	w.handleCameraInput()

	mouse := rl.GetMousePosition()
	if w.overlays.IsEnabled(ui.OverlayControls) && w.controls.Contains(mouse.X, mouse.Y, w.overlays) {
		return
	}
	w.inspector.HandleInput(w.sim, w.cam)
}

func (w *Window) spawn(v components.Variant) {
	if id, ok := w.sim.Spawn(v); ok {
		slog.Debug("manual spawn", "variant", v, "id", id)
	}
}

// handleResize propagates new window dimensions.
func (w *Window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	width := float32(rl.GetScreenWidth())
	height := float32(rl.GetScreenHeight())
	if width == w.screenWidth && height == w.screenHeight {
		return
	}
	w.screenWidth = width
	w.screenHeight = height
	w.cam.Resize(width, height)
	w.inspector.Resize(int32(width))
}

// handleCameraInput pans with the arrow keys and zooms around the cursor.
func (w *Window) handleCameraInput() {
	dt := rl.GetFrameTime()
	step := panSpeed * dt

	if rl.IsKeyDown(rl.KeyLeft) {
		w.cam.Pan(-step, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		w.cam.Pan(step, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		w.cam.Pan(0, -step)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		w.cam.Pan(0, step)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		w.cam.Reset()
	}

	wheel := rl.GetMouseWheelMove()
	if wheel == 0 {
		return
	}
	mouse := rl.GetMousePosition()
	beforeX, beforeY := w.cam.ScreenToWorld(mouse.X, mouse.Y)
	if wheel > 0 {
		w.cam.ZoomBy(zoomStep)
	} else {
		w.cam.ZoomBy(1 / zoomStep)
	}
	// Keep the world point under the cursor fixed.
	afterX, afterY := w.cam.ScreenToWorld(mouse.X, mouse.Y)
	w.cam.Pan((beforeX-afterX)*w.cam.Zoom, (beforeY-afterY)*w.cam.Zoom)
}

func (w *Window) draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(backgroundColor)

	w.terrain.Draw(w.cam, w.overlays.IsEnabled(ui.OverlayTileGrid))
	w.agents.Draw(w.cam, w.sim.Population(), AgentStyle{
		Headings:    w.overlays.IsEnabled(ui.OverlayHeadings),
		EnergyRings: w.overlays.IsEnabled(ui.OverlayEnergyRings),
	})
	w.inspector.DrawSelectionHighlight(w.sim, w.cam)

	w.drawUI()
}

func (w *Window) drawUI() {
	w.hud.Draw(ui.HUDData{
		Title:        "Terrarium",
		Counts:       w.sim.Counts(),
		Tick:         w.sim.Tick(),
		SimTime:      w.sim.SimTime(),
		Speed:        w.sim.StepsPerUpdate(),
		FPS:          rl.GetFPS(),
		Paused:       w.sim.Paused(),
		ScreenWidth:  int32(w.screenWidth),
		ScreenHeight: int32(w.screenHeight),
	})
	w.hud.DrawControls(int32(w.screenHeight), controlsLegend)

	y := int32(10)
	if w.overlays.IsEnabled(ui.OverlayControls) {
		act := w.controls.Draw(ui.ControlsState{
			Paused:         w.sim.Paused(),
			StepsPerUpdate: w.sim.StepsPerUpdate(),
			MaxSteps:       game.MaxStepsPerUpdate,
		}, w.overlays)
		w.apply(act)
		y = w.controls.Bottom(w.overlays) + 10
	}

	if w.overlays.IsEnabled(ui.OverlayStats) {
		stats, ok := w.sim.LastStats()
		w.statsPanel.SetPosition(10, y)
		y = w.statsPanel.Draw(stats, ok) + 16
	}

	if w.overlays.IsEnabled(ui.OverlayPerf) {
		w.perfPanel.SetPosition(16, y)
		w.perfPanel.Draw(w.sim.PerfStats())
	}

	w.inspector.Draw(w.sim)
}

func (w *Window) apply(act ui.ControlsActions) {
	if act.TogglePause {
		w.sim.TogglePause()
	}
	if act.StepsPerUpdate > 0 {
		w.sim.SetStepsPerUpdate(act.StepsPerUpdate)
	}
	if act.ResetCamera {
		w.cam.Reset()
	}
	for _, v := range act.Spawn {
		w.spawn(v)
	}
}
