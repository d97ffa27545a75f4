package component

// PixelsPerUnit is the screen scale of one world unit at zoom 1.
const PixelsPerUnit = 32.0

// Camera follows the entity named by Target.
type Camera struct {
	X          float64
	Y          float64
	Zoom       float64
	Smoothness float64
	Target     uint64 // ecs.Entity
}

// WorldToScreen projects a world point onto a w×h screen centred on the
// camera.
func (c *Camera) WorldToScreen(x, y, w, h float64) (float64, float64) {
	s := c.scale()
	return (x-c.X)*s + w/2, (y-c.Y)*s + h/2
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(sx, sy, w, h float64) (float64, float64) {
	s := c.scale()
	return (sx-w/2)/s + c.X, (sy-h/2)/s + c.Y
}

// Scale returns screen pixels per world unit.
func (c *Camera) Scale() float64 { return c.scale() }

func (c *Camera) scale() float64 {
	z := c.Zoom
	if z <= 0 {
		z = 1
	}
	return z * PixelsPerUnit
}

var CameraComponent = NewComponent[Camera]()
