package camera

import (
	"math"
	"testing"
)

func TestNewFitsWorld(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	if cam.X != 1280 || cam.Y != 720 {
		t.Errorf("expected camera at (1280, 720), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 0.5 {
		t.Errorf("expected fit zoom 0.5, got %f", cam.Zoom)
	}

	// World corners land on the screen corners
	sx, sy := cam.WorldToScreen(0, 0)
	if math.Abs(float64(sx)) > 0.01 || math.Abs(float64(sy)) > 0.01 {
		t.Errorf("world origin at (%f, %f), want (0, 0)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(2560, 1440)
	if math.Abs(float64(sx-1280)) > 0.01 || math.Abs(float64(sy-720)) > 0.01 {
		t.Errorf("far corner at (%f, %f), want (1280, 720)", sx, sy)
	}
}

func TestFitZoomUsesLimitingAxis(t *testing.T) {
	cam := New(800, 600, 1600, 800)

	// min(800/1600, 600/800) = 0.5
	if math.Abs(float64(cam.Zoom-0.5)) > 0.001 {
		t.Errorf("expected zoom 0.5, got %f", cam.Zoom)
	}
	visibleW := cam.ViewportW / cam.Zoom
	if math.Abs(float64(visibleW-cam.WorldW)) > 0.01 {
		t.Errorf("visible width %f should equal world width %f", visibleW, cam.WorldW)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1.7)
	cam.Pan(130, -40)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1)

	cam.Pan(-5000, 0)
	if cam.X != 0 {
		t.Errorf("expected X clamped to 0, got %f", cam.X)
	}
	cam.Pan(0, 5000)
	if cam.Y != 1440 {
		t.Errorf("expected Y clamped to 1440, got %f", cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)

	if cam.MinZoom != 0.25 {
		t.Errorf("expected MinZoom 0.25, got %f", cam.MinZoom)
	}

	cam.SetZoom(0.1)
	if cam.Zoom != 0.25 {
		t.Errorf("expected zoom clamped to 0.25, got %f", cam.Zoom)
	}

	cam.SetZoom(20.0)
	if cam.Zoom != 8.0 {
		t.Errorf("expected zoom clamped to 8.0, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.SetZoom(1)

	// Visible range in world coords: (640, 360) to (1920, 1080)
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

func TestDegenerateWorld(t *testing.T) {
	cam := New(1280, 720, 0, 0)

	if cam.Zoom != 1 {
		t.Errorf("expected zoom 1 for an empty world, got %f", cam.Zoom)
	}
	sx, sy := cam.WorldToScreen(0, 0)
	if math.IsNaN(float64(sx)) || math.IsNaN(float64(sy)) {
		t.Errorf("non-finite projection (%f, %f)", sx, sy)
	}
}

func TestSetWorldRecenters(t *testing.T) {
	cam := New(1280, 720, 2560, 1440)
	cam.Pan(300, 300)

	cam.SetWorld(640, 360)

	if cam.X != 320 || cam.Y != 180 {
		t.Errorf("expected position (320, 180), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 2 {
		t.Errorf("expected zoom 2, got %f", cam.Zoom)
	}
}
