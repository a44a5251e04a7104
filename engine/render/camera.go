package render

import "math"

// Camera is the pan offset and zoom of a viewport. X and Y are added to the
// projection origin before zoom, so a zero camera puts grid point (0, 0) at
// the viewport center.
type Camera struct {
	X, Y    float64
	Zoom    float64 // zoom level (1.0 = default)
	MinZoom float64
	MaxZoom float64
	ScreenW int     // viewport width in pixels
	ScreenH int     // viewport height in pixels
	Speed   float64 // keyboard pan speed (pixels per second)
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 4.0,
		ScreenW: screenW,
		ScreenH: screenH,
		Speed:   500,
	}
}

// Resize updates the viewport size.
func (c *Camera) Resize(screenW, screenH int) {
	c.ScreenW = screenW
	c.ScreenH = screenH
}

// Pan moves the map content by a screen-pixel delta.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt changes zoom by delta while keeping the content under the screen
// point (sx, sy) in place.
func (c *Camera) ZoomAt(delta float64, sx, sy float64) {
	px, py := float64(c.ScreenW)/2, float64(c.ScreenH)/2
	// Raw offset of the point from the projection origin.
	ux := (sx-px)/c.Zoom - c.X
	uy := (sy-py)/c.Zoom - c.Y
	c.SetZoom(c.Zoom + delta)
	c.X = (sx-px)/c.Zoom - ux
	c.Y = (sy-py)/c.Zoom - uy
}

// CenterOn puts grid position (gx, gy) at the viewport center.
func (c *Camera) CenterOn(p Projection, gx, gy float64) {
	ox, oy := p.RawOffset(gx, gy)
	c.X, c.Y = -ox, -oy
}

// Apply copies the camera state into v.
func (c *Camera) Apply(v *View) {
	v.CameraX, v.CameraY = c.X, c.Y
	v.Zoom = c.Zoom
}
