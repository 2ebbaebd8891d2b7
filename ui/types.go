// Package ui draws the windowed viewer's panels: the HUD, the controls
// panel, the statistics and performance panels, and the overlay registry
// that decides which of them are visible.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/renderer/palette"
)

// Theme holds panel colors and layout metrics.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFillLow    rl.Color
	BarFillMedium rl.Color
	BarFillHigh   rl.Color

	// Variants colors each agent kind the same way the map does.
	Variants [components.VariantCount]rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	t := Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
	for _, v := range components.Variants() {
		t.Variants[v] = Color(palette.Variant(v), 255)
	}
	return t
}

// Color converts a palette color to a raylib color with alpha a.
func Color(c palette.RGB, a uint8) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: a}
}
