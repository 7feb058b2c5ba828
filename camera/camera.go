// Package camera provides a 2D camera system for viewport control.
package camera

// Camera controls the viewport into the simulation world. World coordinates
// are cage-centered: (0, 0) is the middle of the colony. Supports pan and
// zoom within a bounded world extent.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// HalfExtent bounds panning: the camera center stays within
	// [-HalfExtent, HalfExtent] on both axes.
	HalfExtent float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the cage with 1:1 zoom.
func New(viewportW, viewportH, halfExtent float32) *Camera {
	return &Camera{
		X:          0,
		Y:          0,
		Zoom:       1.0,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		HalfExtent: halfExtent,
		MinZoom:    0.5,
		MaxZoom:    4.0,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius could be
// visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW / 2 / c.Zoom
	halfH := c.ViewportH / 2 / c.Zoom

	dx := wx - c.X
	dy := wy - c.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx-radius <= halfW && dy-radius <= halfH
}

// Pan moves the camera by a screen-space delta, clamped to the world extent.
func (c *Camera) Pan(dxScreen, dyScreen float32) {
	c.X = clamp(c.X-dxScreen/c.Zoom, -c.HalfExtent, c.HalfExtent)
	c.Y = clamp(c.Y-dyScreen/c.Zoom, -c.HalfExtent, c.HalfExtent)
}

// ZoomAt zooms by the given factor, keeping the world point under the given
// screen position fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)

	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)

	// Re-anchor so (wx, wy) stays under (sx, sy)
	c.X = clamp(wx-(sx-c.ViewportW/2)/c.Zoom, -c.HalfExtent, c.HalfExtent)
	c.Y = clamp(wy-(sy-c.ViewportH/2)/c.Zoom, -c.HalfExtent, c.HalfExtent)
}

// Reset recenters the camera on the cage at 1:1 zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = 1.0
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
