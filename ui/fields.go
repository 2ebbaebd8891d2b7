package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/terrarium/inspector"
)

// Inspector widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow      = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// drawFieldLabel renders a text value.
func drawFieldLabel(x, y int32, name string, value any, options map[string]string) int32 {
	fmtStr := options["fmt"]
	text := inspector.FormatValue(value, fmtStr)
	rl.DrawText(fmt.Sprintf("%s: %s", name, text), x, y, 16, ColorText)
	return 20
}

// drawFieldBar renders a horizontal progress bar.
func drawFieldBar(x, y int32, field inspector.Field) int32 {
	value, _ := inspector.GetFloatValue(field.Value)
	ratio := inspector.Ratio(field)

	barWidth := int32(120)
	barHeight := int32(14)

	rl.DrawText(field.Name, x, y, 14, ColorTextDim)

	// Bar background
	barX := x + 80
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	// Bar fill
	fillWidth := int32(float32(barWidth) * ratio)
	fillColor := ColorBarFill
	if ratio < 0.3 {
		fillColor = ColorBarLow
	}
	rl.DrawRectangle(barX, y, fillWidth, barHeight, fillColor)

	// Value text
	valueStr := fmt.Sprintf("%.1f", value)
	rl.DrawText(valueStr, barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// drawFieldAngle renders a compass-style heading indicator. Zero degrees points
// along +x; angles grow clockwise on screen.
func drawFieldAngle(x, y int32, name string, degrees float32) int32 {
	radians := degrees * math.Pi / 180
	size := int32(40)
	centerX := x + 60 + size/2
	centerY := y + size/2

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)

	// Circle background
	rl.DrawCircle(centerX, centerY, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), ColorTextDim)

	// Needle
	needleLen := float32(size/2 - 4)
	endX := float32(centerX) + needleLen*float32(math.Cos(float64(radians)))
	endY := float32(centerY) + needleLen*float32(math.Sin(float64(radians)))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: endX, Y: endY},
		2,
		ColorAngleNeedle,
	)

	rl.DrawText(fmt.Sprintf("%.0f°", degrees), x+60+size+5, y+size/2-7, 14, ColorTextDim)

	return size + 4
}

// drawFieldBool renders an on/off indicator.
func drawFieldBool(x, y int32, name string, value bool) int32 {
	// Label
	rl.DrawText(name, x, y, 14, ColorTextDim)

	// Indicator
	indicatorX := x + 80
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "OFF"
	if value {
		color = ColorBoolOn
		text = "ON"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return 18
}

// drawField renders a field using its widget type.
func drawField(x, y int32, field inspector.Field) int32 {
	switch field.Widget {
	case inspector.WidgetBar:
		if _, ok := inspector.GetFloatValue(field.Value); ok {
			return drawFieldBar(x, y, field)
		}
	case inspector.WidgetAngle:
		if v, ok := inspector.GetFloatValue(field.Value); ok {
			return drawFieldAngle(x, y, field.Name, v)
		}
	case inspector.WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return drawFieldBool(x, y, field.Name, v)
		}
	}
	return drawFieldLabel(x, y, field.Name, field.Value, field.Options)
}
