package camera

import "testing"

func TestWorldScreenRoundtrip(t *testing.T) {
	c := New(1280, 720, 320)
	c.X = 40
	c.Y = -25
	c.Zoom = 2

	wx, wy := float32(100), float32(-60)
	sx, sy := c.WorldToScreen(wx, wy)
	gx, gy := c.ScreenToWorld(sx, sy)

	if absf(gx-wx) > 0.01 || absf(gy-wy) > 0.01 {
		t.Errorf("roundtrip drifted: (%v, %v) -> (%v, %v)", wx, wy, gx, gy)
	}
}

func TestCenterMapsToViewportCenter(t *testing.T) {
	c := New(1280, 720, 320)
	sx, sy := c.WorldToScreen(0, 0)
	if sx != 640 || sy != 360 {
		t.Errorf("world origin should land at viewport center, got (%v, %v)", sx, sy)
	}
}

func TestPanClampsToExtent(t *testing.T) {
	c := New(1280, 720, 320)
	c.Pan(-100000, 100000)
	if c.X != 320 || c.Y != -320 {
		t.Errorf("pan escaped the world extent: (%v, %v)", c.X, c.Y)
	}
}

func TestZoomAtClampsZoom(t *testing.T) {
	c := New(1280, 720, 320)

	for i := 0; i < 50; i++ {
		c.ZoomAt(1.5, 640, 360)
	}
	if c.Zoom != c.MaxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", c.MaxZoom, c.Zoom)
	}

	for i := 0; i < 50; i++ {
		c.ZoomAt(0.5, 640, 360)
	}
	if c.Zoom != c.MinZoom {
		t.Errorf("expected zoom clamped to %v, got %v", c.MinZoom, c.Zoom)
	}
}

func TestZoomAtKeepsAnchorFixed(t *testing.T) {
	c := New(1280, 720, 320)
	sx, sy := float32(200), float32(500)
	wx, wy := c.ScreenToWorld(sx, sy)

	c.ZoomAt(2, sx, sy)

	gx, gy := c.ScreenToWorld(sx, sy)
	if absf(gx-wx) > 0.01 || absf(gy-wy) > 0.01 {
		t.Errorf("anchor moved: (%v, %v) -> (%v, %v)", wx, wy, gx, gy)
	}
}

func TestIsVisible(t *testing.T) {
	c := New(1280, 720, 320)

	if !c.IsVisible(0, 0, 6) {
		t.Error("center should be visible")
	}
	if !c.IsVisible(640, 0, 6) {
		t.Error("circle touching the right edge should be visible")
	}
	if c.IsVisible(1000, 0, 6) {
		t.Error("circle far off-screen should be culled")
	}
}

func TestReset(t *testing.T) {
	c := New(1280, 720, 320)
	c.Pan(300, -200)
	c.ZoomAt(2, 100, 100)

	c.Reset()
	if c.X != 0 || c.Y != 0 || c.Zoom != 1 {
		t.Errorf("reset left camera at (%v, %v) zoom %v", c.X, c.Y, c.Zoom)
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
