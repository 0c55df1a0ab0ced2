// Package camera maps the bounded simulation world onto the screen.
package camera

// Camera controls the viewport into the simulation world.
// The world is a closed rectangle, so the view is clamped to it instead of
// wrapping.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	WorldW, WorldH float32

	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world, zoomed so the whole world fits.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
		MaxZoom:   8.0,
	}
	c.MinZoom = c.fitZoom() / 2
	c.Reset()
	return c
}

// fitZoom returns the zoom at which the whole world is just visible.
func (c *Camera) fitZoom() float32 {
	if c.WorldW <= 0 || c.WorldH <= 0 || c.ViewportW <= 0 || c.ViewportH <= 0 {
		return 1
	}
	return min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
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

// IsVisible reports whether a circle at (wx, wy) could be on screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.fitZoom() / 2
	c.SetZoom(c.Zoom)
}

// SetWorld replaces the world dimensions, for example after a reset with a
// new config, and recenters the view.
func (c *Camera) SetWorld(worldW, worldH float32) {
	c.WorldW, c.WorldH = worldW, worldH
	c.MinZoom = c.fitZoom() / 2
	c.Reset()
}

// Pan moves the camera by the given delta in screen pixels. The center stays
// inside the world.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, max(c.WorldW, 0))
	c.Y = clamp(c.Y+dy/c.Zoom, 0, max(c.WorldH, 0))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera on the world with the whole world in view.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	c.Zoom = c.fitZoom()
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
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
