package canvas

// ElementType discriminates the drawable primitives.
type ElementType string

const (
	TypePencil  ElementType = "pencil"
	TypeEraser  ElementType = "eraser"
	TypeRect    ElementType = "rect"
	TypeDiamond ElementType = "diamond"
	TypeCircle  ElementType = "circle"
	TypeArrow   ElementType = "arrow"
	TypeText    ElementType = "text"
)

// ValidType reports whether t is one of the known element types.
func ValidType(t ElementType) bool {
	switch t {
	case TypePencil, TypeEraser, TypeRect, TypeDiamond, TypeCircle, TypeArrow, TypeText:
		return true
	}
	return false
}

// DefaultStrokeSize is applied when an element arrives without a size.
const DefaultStrokeSize = 2

// Point is a coordinate in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Element is a single drawable unit. The zero value of every numeric field
// is a legal value; absent fields in the wire format simply decode to 0.
//
// Geometry conventions:
//   - pencil/eraser use Points (needs at least 2 to render)
//   - rect/diamond/circle/arrow use X,Y (origin) and W,H (signed extents,
//     negative when the drag went up/left)
//   - text uses X,Y and Text
type Element struct {
	ID       int64       `json:"id"`
	Type     ElementType `json:"type"`
	Color    string      `json:"color,omitempty"`
	Size     float64     `json:"size,omitempty"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	W        float64     `json:"w,omitempty"`
	H        float64     `json:"h,omitempty"`
	IsFilled bool        `json:"isFilled,omitempty"`
	Points   []Point     `json:"points,omitempty"`
	Text     string      `json:"text,omitempty"`
}

// Normalize fills defaults on an incoming element before it enters the list.
// It never rejects: a freehand element with too few points stays in the list
// as a no-render artifact and the renderer skips it.
func (e *Element) Normalize() {
	if e.Size <= 0 {
		e.Size = DefaultStrokeSize
	}
}

// Anchor returns the representative point used for hit-testing. Every tool
// seeds X,Y at pointer-down, so the anchor is defined for freehand strokes too.
func (e *Element) Anchor() Point {
	return Point{X: e.X, Y: e.Y}
}

// Renderable reports whether the renderer will emit draw calls for e.
// Malformed elements are skipped, never treated as errors.
func (e *Element) Renderable() bool {
	switch e.Type {
	case TypePencil, TypeEraser:
		return len(e.Points) >= 2
	case TypeText:
		return e.Text != ""
	case TypeRect, TypeDiamond, TypeCircle, TypeArrow:
		return true
	}
	return false
}

// NormalizeAll normalizes a whole element list in place. Unknown types are
// kept as-is; the renderer is the layer that decides to skip them.
func NormalizeAll(elements []Element) []Element {
	for i := range elements {
		elements[i].Normalize()
	}
	return elements
}
