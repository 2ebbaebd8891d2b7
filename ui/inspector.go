package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/camera"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/inspector"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30

	// clickTolerance is the extra pick radius in screen pixels.
	clickTolerance = 6
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector manages agent selection and panel rendering.
type Inspector struct {
	selected    uint32
	hasSelected bool
	panelX      int32
	panelY      int32
	panelHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// Resize moves the panel to the right edge of a resized window.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// HandleInput processes click detection for agent selection.
// Returns true when the click was consumed by the panel or a selection.
func (ins *Inspector) HandleInput(sim *game.Simulation, cam *camera.Camera) bool {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return false
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}

	mouse := rl.GetMousePosition()
	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouse.X) >= closeX && int32(mouse.X) <= closeX+20 &&
			int32(mouse.Y) >= closeY && int32(mouse.Y) <= closeY+20 {
			ins.Deselect()
			return true
		}
		if ins.contains(mouse.X, mouse.Y) {
			return true
		}
	}

	wx, wy := cam.ScreenToWorld(mouse.X, mouse.Y)
	id, ok := inspector.Pick(sim.Population(), wx, wy, clickTolerance/cam.Zoom)
	if ok {
		ins.Select(id)
	}
	return ok
}

func (ins *Inspector) contains(x, y float32) bool {
	return int32(x) >= ins.panelX && int32(x) <= ins.panelX+PanelWidth &&
		int32(y) >= ins.panelY && int32(y) <= ins.panelY+ins.panelHeight
}

// Select marks an agent for inspection.
func (ins *Inspector) Select(id uint32) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected agent ID.
func (ins *Inspector) Selected() (uint32, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the inspector panel if an agent is selected.
// The selection is dropped once the agent has been culled.
func (ins *Inspector) Draw(sim *game.Simulation) {
	if !ins.hasSelected {
		return
	}

	detail, ok := sim.Inspect(ins.selected)
	if !ok || !detail.Vitals.Alive {
		ins.Deselect()
		return
	}
	sections := inspector.Sections(&detail)

	ins.panelHeight = calculatePanelHeight(sections)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, ins.panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(ins.panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	rl.DrawText(fmt.Sprintf("ID: %d  %s", detail.Organism.ID, detail.Organism.Variant), x, y, 14, ColorHeaderText)
	y += 22
	y += drawFieldLabel(x, y, "Position", fmt.Sprintf("(%.0f, %.0f)", detail.Position.X, detail.Position.Y), nil)
	y += drawFieldLabel(x, y, "Velocity", fmt.Sprintf("(%.1f, %.1f)", detail.Velocity.X, detail.Velocity.Y), nil)

	for _, sec := range sections {
		y += 4
		rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
		y += 8
		ins.drawSectionHeader(x, y, sec.Title)
		y += 20
		for _, f := range sec.Fields {
			y += drawField(x, y, f)
		}
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// calculatePanelHeight computes the panel height for the given sections.
func calculatePanelHeight(sections []inspector.Section) int32 {
	height := int32(HeaderHeight + PanelPadding)
	height += 22 // ID line
	height += 40 // position, velocity
	for _, sec := range sections {
		height += 12 + 20 // separator, header
		for _, f := range sec.Fields {
			height += fieldHeight(f)
		}
	}
	return height + PanelPadding
}

func fieldHeight(f inspector.Field) int32 {
	switch f.Widget {
	case inspector.WidgetBar, inspector.WidgetBool:
		return 18
	case inspector.WidgetAngle:
		return 44
	default:
		return 20
	}
}

// DrawSelectionHighlight draws a ring around the selected agent.
func (ins *Inspector) DrawSelectionHighlight(sim *game.Simulation, cam *camera.Camera) {
	if !ins.hasSelected {
		return
	}
	a, ok := sim.Population().Find(ins.selected)
	if !ok {
		return
	}
	sx, sy := cam.WorldToScreen(a.X, a.Y)
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, a.Size*cam.Zoom*1.8+2, rl.Yellow)
}
