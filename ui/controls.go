package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/components"
)

// ControlsState is the simulation state the controls panel reflects.
type ControlsState struct {
	Paused         bool
	StepsPerUpdate int
	MaxSteps       int
}

// ControlsActions reports what the user did on the panel this frame.
type ControlsActions struct {
	TogglePause    bool
	Spawn          []components.Variant
	StepsPerUpdate int // 0 when unchanged
	ResetCamera    bool
}

// ControlsPanel renders the left-side controls panel: run controls,
// spawn buttons and overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Contains reports whether a screen point lies on the panel.
func (c *ControlsPanel) Contains(x, y float32, overlays *OverlayRegistry) bool {
	return int32(x) >= c.x && int32(x) <= c.x+c.width &&
		int32(y) >= c.y && int32(y) <= c.y+c.height(overlays)
}

// Bottom returns the screen y just below the panel.
func (c *ControlsPanel) Bottom(overlays *OverlayRegistry) int32 {
	return c.y + c.height(overlays)
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	rows := int32(0)
	for _, cat := range overlays.Categories() {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	return r.Theme.Padding*3 + r.Theme.LineHeight*2 + 4 + 30 + 28 + 30 + rows*22
}

// Draw renders the controls panel and returns the user's actions.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsActions {
	var act ControlsActions
	r := c.renderer
	padding := r.Theme.Padding
	inner := float32(c.width - padding*2)

	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))

	x := float32(c.x + padding)
	y := c.y + padding
	rl.DrawText("Controls", int32(x), y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner/2 - 4, Height: 24}, pauseText) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + inner/2 + 4, Y: float32(y), Width: inner/2 - 4, Height: 24}, "Reset View") {
		act.ResetCamera = true
	}
	y += 30

	rl.DrawText(fmt.Sprintf("Steps/update: %d", state.StepsPerUpdate), int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	steps := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 18},
		"", "",
		float32(state.StepsPerUpdate), 1, float32(state.MaxSteps),
	)
	if n := int(steps + 0.5); n != state.StepsPerUpdate {
		act.StepsPerUpdate = n
	}
	y += 28

	bw := inner / float32(components.VariantCount)
	for i, v := range components.Variants() {
		rect := rl.Rectangle{X: x + float32(i)*bw, Y: float32(y), Width: bw - 4, Height: 24}
		if gui.Button(rect, "+"+v.String()) {
			act.Spawn = append(act.Spawn, v)
		}
	}
	y += 30 + padding

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), int32(x), y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += 22
		for _, desc := range overlays.ByCategory(category) {
			label := fmt.Sprintf("%s %s [%s]", checkMark(overlays.IsEnabled(desc.ID)), desc.Name, desc.KeyLabel)
			if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 20}, label) {
				overlays.Toggle(desc.ID)
			}
			y += 22
		}
	}

	return act
}

func checkMark(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "world":
		return "World"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}
