package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/camera"
	"github.com/pthm-cable/terrarium/game"
	"github.com/pthm-cable/terrarium/renderer/palette"
	"github.com/pthm-cable/terrarium/ui"
)

// minAgentRadius keeps agents visible when zoomed out.
const minAgentRadius = 2

// AgentRenderer draws agents as filled circles with an optional heading line.
type AgentRenderer struct{}

// NewAgentRenderer creates an agent renderer.
func NewAgentRenderer() *AgentRenderer {
	return &AgentRenderer{}
}

// AgentStyle selects the optional decorations.
type AgentStyle struct {
	Headings    bool
	EnergyRings bool
}

// Draw renders every visible agent of pop.
func (r *AgentRenderer) Draw(cam *camera.Camera, pop game.PopulationSnapshot, style AgentStyle) {
	for _, a := range pop.Agents {
		if !a.Alive || !cam.IsVisible(a.X, a.Y, a.Size) {
			continue
		}

		sx, sy := cam.WorldToScreen(a.X, a.Y)
		center := rl.Vector2{X: sx, Y: sy}
		radius := max(a.Size*cam.Zoom, minAgentRadius)

		c := palette.Variant(a.Variant)
		rl.DrawCircleV(center, radius, ui.Color(c, 255))
		rl.DrawCircleLinesV(center, radius, ui.Color(c.Shade(0.5), 255))

		if style.Headings {
			rad := float64(a.Angle) * math.Pi / 180
			tip := rl.Vector2{
				X: sx + float32(math.Cos(rad))*radius*1.6,
				Y: sy + float32(math.Sin(rad))*radius*1.6,
			}
			rl.DrawLineEx(center, tip, max(1, radius*0.25), rl.Color{R: 20, G: 20, B: 20, A: 220})
		}

		if style.EnergyRings && a.MaxEnergy > 0 {
			frac := a.Energy / a.MaxEnergy
			ring := rl.Color{R: uint8(255 * (1 - frac)), G: uint8(255 * frac), B: 60, A: 200}
			rl.DrawRing(center, radius+2, radius+4, -90, -90+360*frac, 24, ring)
		}
	}
}
