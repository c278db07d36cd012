package canvas

import (
	"strings"
	"time"
)

// Tool is the currently selected toolbar tool. Tool selection is independent
// of the interaction state; it decides which transition a pointer-down takes.
type Tool string

const (
	ToolSelect  Tool = "select"
	ToolHand    Tool = "hand"
	ToolPencil  Tool = "pencil"
	ToolEraser  Tool = "eraser"
	ToolRect    Tool = "rect"
	ToolDiamond Tool = "diamond"
	ToolCircle  Tool = "circle"
	ToolArrow   Tool = "arrow"
	ToolText    Tool = "text"
)

// drawType maps a drawing tool to the element type it creates.
func (t Tool) drawType() (ElementType, bool) {
	switch t {
	case ToolPencil:
		return TypePencil, true
	case ToolEraser:
		return TypeEraser, true
	case ToolRect:
		return TypeRect, true
	case ToolDiamond:
		return TypeDiamond, true
	case ToolCircle:
		return TypeCircle, true
	case ToolArrow:
		return TypeArrow, true
	}
	return "", false
}

// State is the interaction state of a drawing session.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StatePanning
	StatePlacingText
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StatePanning:
		return "panning"
	case StatePlacingText:
		return "placing_text"
	default:
		return "unknown"
	}
}

// HitRadius is the selection radius around an element's anchor, in canvas
// units. It is intentionally not scaled by zoom.
const HitRadius = 30

// Notice is a transient user-facing notification raised by the session.
type Notice struct {
	Message string
	Kind    string // "info", "success", "error"
}

// Session is the single-user drawing interaction state machine. All mutation
// is synchronous and event-driven from pointer input; there is no background
// work here. Rendering reads Elements/Camera after every event.
type Session struct {
	state    State
	tool     Tool
	color    string
	size     float64
	filled   bool
	editable bool

	elements []Element
	camera   Camera

	pendingText *Point // canvas-space position while the text modal is open
	lastScreen  Point  // previous pointer position, for pan deltas
	lastID      int64
	notices     []Notice

	// now is swappable so element IDs are deterministic in tests.
	now func() time.Time
}

// NewSession creates an idle session. editable=false turns the session into
// a read-only viewer: pan and zoom still work, everything else is rejected
// with a notice and never mutates the element list.
func NewSession(editable bool) *Session {
	return &Session{
		state:    StateIdle,
		tool:     ToolPencil,
		color:    "#4f46e5",
		size:     DefaultStrokeSize,
		editable: editable,
		camera:   DefaultCamera(),
		now:      time.Now,
	}
}

// Load replaces the session content with a persisted document.
func (s *Session) Load(elements []Element, camera Camera) {
	s.elements = NormalizeAll(elements)
	s.camera = camera.Normalized()
	s.state = StateIdle
	s.pendingText = nil
}

// State returns the current interaction state.
func (s *Session) State() State { return s.state }

// Tool returns the selected tool.
func (s *Session) Tool() Tool { return s.tool }

// Editable reports whether this session may mutate the element list.
func (s *Session) Editable() bool { return s.editable }

// Camera returns the current camera.
func (s *Session) Camera() Camera { return s.camera }

// Elements returns the element list in z-order. The slice is shared; callers
// must not mutate it.
func (s *Session) Elements() []Element { return s.elements }

// SetTool selects a tool. Selection never changes the interaction state.
func (s *Session) SetTool(t Tool) { s.tool = t }

// SetColor sets the stroke color for new elements.
func (s *Session) SetColor(hex string) { s.color = hex }

// SetSize sets the stroke width for new elements.
func (s *Session) SetSize(size float64) {
	if size <= 0 {
		size = DefaultStrokeSize
	}
	s.size = size
}

// SetFilled toggles shape fill for new elements.
func (s *Session) SetFilled(filled bool) { s.filled = filled }

// PendingText returns the canvas-space position of the open text modal, or
// nil when no modal is open.
func (s *Session) PendingText() *Point { return s.pendingText }

// Notices drains the queued transient notifications.
func (s *Session) Notices() []Notice {
	out := s.notices
	s.notices = nil
	return out
}

func (s *Session) notify(msg, kind string) {
	s.notices = append(s.notices, Notice{Message: msg, Kind: kind})
}

// PointerDown handles a pointer press at a screen-space position.
func (s *Session) PointerDown(screen Point) {
	s.lastScreen = screen

	if s.tool == ToolHand {
		s.state = StatePanning
		return
	}
	if !s.editable {
		s.notify("Read-only mode", "error")
		return
	}

	pos := s.camera.ToCanvas(screen)

	switch s.tool {
	case ToolSelect:
		s.deleteAt(pos)
		s.state = StateIdle

	case ToolText:
		// No draft element goes into the list while the modal is open.
		p := pos
		s.pendingText = &p
		s.state = StatePlacingText

	default:
		elType, ok := s.tool.drawType()
		if !ok {
			return
		}
		el := Element{
			ID:       s.nextID(),
			Type:     elType,
			Color:    s.color,
			Size:     s.size,
			X:        pos.X,
			Y:        pos.Y,
			IsFilled: s.filled,
		}
		if elType == TypePencil || elType == TypeEraser {
			el.Points = []Point{pos}
		}
		s.elements = append(s.elements, el)
		s.state = StateDrawing
	}
}

// PointerMove handles pointer motion. While panning it shifts the camera by
// the raw screen delta; while drawing it grows the last element, which is
// always the active one.
func (s *Session) PointerMove(screen Point) {
	dx := screen.X - s.lastScreen.X
	dy := screen.Y - s.lastScreen.Y
	s.lastScreen = screen

	switch s.state {
	case StatePanning:
		s.camera.Pan(dx, dy)

	case StateDrawing:
		if len(s.elements) == 0 {
			return
		}
		pos := s.camera.ToCanvas(screen)
		el := &s.elements[len(s.elements)-1]
		switch el.Type {
		case TypePencil, TypeEraser:
			el.Points = append(el.Points, pos)
		default:
			el.W = pos.X - el.X
			el.H = pos.Y - el.Y
		}
	}
}

// PointerUp returns to idle no matter what state the session was in. An open
// text modal is unaffected; it closes through CommitText/CancelText.
func (s *Session) PointerUp() {
	if s.state == StatePlacingText {
		return
	}
	s.state = StateIdle
}

// Wheel applies a zoom step, clamped to the allowed range regardless of how
// many events arrive.
func (s *Session) Wheel(deltaY float64) {
	s.camera.ApplyWheel(deltaY)
}

// CommitText confirms the text modal. Blank input is discarded the same way
// cancel is.
func (s *Session) CommitText(value string) {
	pos := s.pendingText
	s.pendingText = nil
	s.state = StateIdle
	if pos == nil || !s.editable {
		return
	}
	if strings.TrimSpace(value) == "" {
		return
	}
	s.elements = append(s.elements, Element{
		ID:    s.nextID(),
		Type:  TypeText,
		Color: s.color,
		Size:  s.size,
		X:     pos.X,
		Y:     pos.Y,
		Text:  value,
	})
}

// CancelText discards the open text modal.
func (s *Session) CancelText() {
	s.pendingText = nil
	s.state = StateIdle
}

// Clear wipes the whole element list.
func (s *Session) Clear() {
	if !s.editable {
		s.notify("Read-only mode", "error")
		return
	}
	s.elements = nil
}

// deleteAt removes the topmost element whose anchor is within HitRadius of
// pos. Scan order is reverse creation order so overlapping elements resolve
// to the one drawn last.
func (s *Session) deleteAt(pos Point) {
	for i := len(s.elements) - 1; i >= 0; i-- {
		a := s.elements[i].Anchor()
		if abs(a.X-pos.X) < HitRadius && abs(a.Y-pos.Y) < HitRadius {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			s.notify("Deleted", "error")
			return
		}
	}
}

// nextID returns a creation-time unique element ID. Wall-clock millis, bumped
// when two elements land in the same tick.
func (s *Session) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
