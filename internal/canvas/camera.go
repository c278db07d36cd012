package canvas

// Zoom bounds enforced by the interaction layer. A camera outside this range
// is never persisted.
const (
	ZoomMin = 0.4
	ZoomMax = 4.0

	// WheelZoomFactor converts a wheel deltaY into a zoom delta. Zoom is not
	// anchored at the cursor: translation stays fixed while zooming, so the
	// view drifts off-pointer. Known quirk, kept on purpose.
	WheelZoomFactor = 0.001
)

// Camera is the pan/zoom transform between canvas space and screen space.
// X and Y are the translation offset in screen pixels.
type Camera struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// DefaultCamera is the camera of a canvas that has never been saved.
func DefaultCamera() Camera {
	return Camera{X: 0, Y: 0, Zoom: 1}
}

// ToCanvas maps a screen-space point into canvas space.
func (c Camera) ToCanvas(p Point) Point {
	return Point{
		X: (p.X - c.X) / c.Zoom,
		Y: (p.Y - c.Y) / c.Zoom,
	}
}

// ToScreen is the inverse of ToCanvas, used only when rendering.
func (c Camera) ToScreen(p Point) Point {
	return Point{
		X: p.X*c.Zoom + c.X,
		Y: p.Y*c.Zoom + c.Y,
	}
}

// Pan shifts the translation by a raw screen-space delta. No zoom
// compensation is needed because the delta is already in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

// ApplyWheel adjusts zoom from a wheel deltaY, clamped to [ZoomMin, ZoomMax].
func (c *Camera) ApplyWheel(deltaY float64) {
	c.Zoom = clampZoom(c.Zoom - deltaY*WheelZoomFactor)
}

// Normalized returns a copy safe to persist: a zero/negative zoom (an
// absent field on the wire) becomes 1, anything else is clamped.
func (c Camera) Normalized() Camera {
	if c.Zoom <= 0 {
		c.Zoom = 1
	}
	c.Zoom = clampZoom(c.Zoom)
	return c
}

func clampZoom(z float64) float64 {
	if z < ZoomMin {
		return ZoomMin
	}
	if z > ZoomMax {
		return ZoomMax
	}
	return z
}
