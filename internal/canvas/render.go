package canvas

import "math"

// BackgroundColor is the canvas background. Eraser strokes are painted in
// this color: erasing draws over content instead of removing elements, so an
// eraser stroke is itself a persisted element.
const BackgroundColor = "#ffffff"

const (
	baseFontSize    = 16
	arrowHeadLength = 10
)

// OpKind discriminates draw calls.
type OpKind string

const (
	OpPolyline OpKind = "polyline" // open stroked path through Points
	OpPolygon  OpKind = "polygon"  // closed path through Points
	OpRect     OpKind = "rect"
	OpCircle   OpKind = "circle"
	OpText     OpKind = "text"
)

// Op is a single draw call. The sequence of ops for a given (elements,
// camera) input is deterministic, which is what the render tests pin down.
type Op struct {
	Kind   OpKind
	Color  string
	Width  float64 // stroke width, already divided by zoom
	Fill   bool
	Points []Point // polyline / polygon vertices

	// Box geometry for rect; center+radius for circle; position for text.
	X, Y, W, H float64
	R          float64

	Text     string
	FontSize float64 // divided by zoom so text stays legible at any zoom
}

// Frame is one full redraw. The camera transform is applied once per frame,
// not per element; all op coordinates are in canvas space.
type Frame struct {
	Camera Camera
	Ops    []Op
}

// Render produces a full redraw of the element list against the camera.
// Painter's algorithm: list order is z-order, later elements draw over
// earlier ones. Elements the renderer cannot interpret are skipped, never
// errors; a pencil stroke with fewer than 2 points simply emits nothing.
func Render(elements []Element, cam Camera) Frame {
	cam = cam.Normalized()
	frame := Frame{Camera: cam}
	for i := range elements {
		frame.Ops = append(frame.Ops, renderElement(&elements[i], cam.Zoom)...)
	}
	return frame
}

func renderElement(el *Element, zoom float64) []Op {
	if !el.Renderable() {
		return nil
	}

	size := el.Size
	if size <= 0 {
		size = DefaultStrokeSize
	}
	// Constant on-screen thickness regardless of zoom.
	width := size / zoom

	switch el.Type {
	case TypePencil, TypeEraser:
		color := el.Color
		if el.Type == TypeEraser {
			color = BackgroundColor
		}
		pts := make([]Point, len(el.Points))
		copy(pts, el.Points)
		return []Op{{Kind: OpPolyline, Color: color, Width: width, Points: pts}}

	case TypeRect:
		return []Op{{
			Kind: OpRect, Color: el.Color, Width: width, Fill: el.IsFilled,
			X: el.X, Y: el.Y, W: el.W, H: el.H,
		}}

	case TypeDiamond:
		// Polygon through the four edge midpoints of the bounding box.
		return []Op{{
			Kind: OpPolygon, Color: el.Color, Width: width, Fill: el.IsFilled,
			Points: []Point{
				{X: el.X + el.W/2, Y: el.Y},
				{X: el.X + el.W, Y: el.Y + el.H/2},
				{X: el.X + el.W/2, Y: el.Y + el.H},
				{X: el.X, Y: el.Y + el.H/2},
			},
		}}

	case TypeCircle:
		// Radius comes from W alone, so a non-square box still renders a
		// true circle. Kept as documented behavior.
		return []Op{{
			Kind: OpCircle, Color: el.Color, Width: width, Fill: el.IsFilled,
			X: el.X + el.W/2, Y: el.Y + el.H/2, R: math.Abs(el.W / 2),
		}}

	case TypeText:
		return []Op{{
			Kind: OpText, Color: el.Color,
			X: el.X, Y: el.Y,
			Text: el.Text, FontSize: baseFontSize / zoom,
		}}

	case TypeArrow:
		tipX := el.X + el.W
		tipY := el.Y + el.H
		head := arrowHeadLength / zoom
		angle := math.Atan2(el.H, el.W)
		// Shaft runs into one head segment, the second segment restarts at
		// the tip. Mirrors the moveTo/lineTo order of the canvas drawing.
		return []Op{
			{Kind: OpPolyline, Color: el.Color, Width: width, Points: []Point{
				{X: el.X, Y: el.Y},
				{X: tipX, Y: tipY},
				{X: tipX - head*math.Cos(angle-math.Pi/6), Y: tipY - head*math.Sin(angle-math.Pi/6)},
			}},
			{Kind: OpPolyline, Color: el.Color, Width: width, Points: []Point{
				{X: tipX, Y: tipY},
				{X: tipX - head*math.Cos(angle+math.Pi/6), Y: tipY - head*math.Sin(angle+math.Pi/6)},
			}},
		}
	}
	return nil
}
