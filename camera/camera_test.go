package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= 0.01
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, 1600, 1600)

	if cam.X != 800 || cam.Y != 800 {
		t.Errorf("expected camera at (800, 800), got (%f, %f)", cam.X, cam.Y)
	}
	// min(1280/1600, 720/1600) = 0.45
	if !near(cam.Zoom, 0.45) || cam.Zoom != cam.MinZoom {
		t.Errorf("expected fit zoom 0.45, got %f (min %f)", cam.Zoom, cam.MinZoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, 1600, 1600)

	sx, sy := cam.WorldToScreen(800, 800)
	if !near(sx, 640) || !near(sy, 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 1600, 1600)
	cam.SetZoom(1.7)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
		{0, 720},    // corner
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClamps(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float32
		wantX  float32
		wantY  float32
	}{
		{"left edge", -5000, 0, 0, 800},
		{"bottom edge", 0, 5000, 800, 1600},
		{"inside", 100, -100, 900, 700},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(1280, 720, 1600, 1600)
			cam.SetZoom(1)
			cam.Pan(tt.dx, tt.dy)
			if !near(cam.X, tt.wantX) || !near(cam.Y, tt.wantY) {
				t.Errorf("Pan(%v,%v) -> (%v,%v), want (%v,%v)", tt.dx, tt.dy, cam.X, cam.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	// min(1280/2560, 720/1440) = 0.5
	if cam.MinZoom != 0.5 {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	cam.SetZoom(0.1)
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}

	cam.SetZoom(10.0)
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}
}

func TestFitZoomShowsWholeWorld(t *testing.T) {
	// Asymmetric world/viewport ratios
	cam := New(800, 600, 1600, 800)

	// min(800/1600, 600/800) = min(0.5, 0.75) = 0.5
	if !near(cam.MinZoom, 0.5) {
		t.Errorf("expected MinZoom 0.5, got %f", cam.MinZoom)
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != 0 || minY != 0 || maxX != 1600 || maxY != 800 {
		t.Errorf("visible bounds (%v,%v)-(%v,%v), want whole world", minX, minY, maxX, maxY)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1)

	// Visible range: (640, 360) to (1920, 1080)
	if !cam.IsVisible(1280, 720, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(2400, 1300, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(600, 720, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestResize(t *testing.T) {
	cam := New(1280, 720, 1600, 1600)
	cam.Resize(1600, 1600)

	if !near(cam.MinZoom, 1) || cam.Zoom < cam.MinZoom {
		t.Errorf("after resize MinZoom=%v Zoom=%v, want 1", cam.MinZoom, cam.Zoom)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.X = 500
	cam.Y = 500
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected position (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom %f, got %f", cam.MinZoom, cam.Zoom)
	}
}
