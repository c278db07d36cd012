package canvas

import (
	"testing"
	"time"
)

// fixedClock makes element IDs deterministic.
func fixedClock(s *Session) {
	base := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return base }
}

func TestRectDrag(t *testing.T) {
	s := NewSession(true)
	fixedClock(s)
	s.SetTool(ToolRect)

	s.PointerDown(Point{X: 10, Y: 10})
	if s.State() != StateDrawing {
		t.Fatalf("state = %v, want drawing", s.State())
	}
	s.PointerMove(Point{X: 50, Y: 40})
	s.PointerUp()

	els := s.Elements()
	if len(els) != 1 {
		t.Fatalf("len(elements) = %d, want 1", len(els))
	}
	el := els[0]
	if el.X != 10 || el.Y != 10 || el.W != 40 || el.H != 30 {
		t.Fatalf("rect geometry = (%v,%v,%v,%v), want (10,10,40,30)", el.X, el.Y, el.W, el.H)
	}
	if s.State() != StateIdle {
		t.Fatalf("state = %v after pointer up, want idle", s.State())
	}
}

func TestRectDragUpLeftGivesNegativeExtents(t *testing.T) {
	s := NewSession(true)
	fixedClock(s)
	s.SetTool(ToolRect)

	s.PointerDown(Point{X: 50, Y: 40})
	s.PointerMove(Point{X: 10, Y: 10})
	s.PointerUp()

	el := s.Elements()[0]
	if el.W != -40 || el.H != -30 {
		t.Fatalf("extents = (%v,%v), want (-40,-30)", el.W, el.H)
	}
}

func TestPencilAppendsPoints(t *testing.T) {
	s := NewSession(true)
	fixedClock(s)
	s.SetTool(ToolPencil)

	s.PointerDown(Point{X: 0, Y: 0})
	s.PointerMove(Point{X: 1, Y: 1})
	s.PointerMove(Point{X: 2, Y: 3})
	s.PointerUp()

	el := s.Elements()[0]
	if el.Type != TypePencil {
		t.Fatalf("type = %v, want pencil", el.Type)
	}
	if len(el.Points) != 3 {
		t.Fatalf("len(points) = %d, want 3", len(el.Points))
	}
	if el.Points[2] != (Point{X: 2, Y: 3}) {
		t.Fatalf("last point = %+v, want {2 3}", el.Points[2])
	}
}

func TestDrawAccountsForCamera(t *testing.T) {
	s := NewSession(true)
	fixedClock(s)
	s.Load(nil, Camera{X: 100, Y: 50, Zoom: 2})
	s.SetTool(ToolRect)

	s.PointerDown(Point{X: 300, Y: 250})
	el := s.Elements()[0]
	if el.X != 100 || el.Y != 100 {
		t.Fatalf("origin = (%v,%v), want canvas-space (100,100)", el.X, el.Y)
	}
}

func TestReadOnlyRejectsMutation(t *testing.T) {
	s := NewSession(false)
	s.SetTool(ToolPencil)

	s.PointerDown(Point{X: 5, Y: 5})
	if s.State() != StateIdle {
		t.Fatalf("state = %v, want idle", s.State())
	}
	if len(s.Elements()) != 0 {
		t.Fatal("read-only session mutated the element list")
	}

	notices := s.Notices()
	if len(notices) != 1 || notices[0].Message != "Read-only mode" {
		t.Fatalf("notices = %+v, want single read-only notice", notices)
	}

	s.Clear()
	if len(s.Notices()) != 1 {
		t.Fatal("clear on read-only session did not notify")
	}
}

func TestReadOnlyStillPansAndZooms(t *testing.T) {
	s := NewSession(false)
	s.SetTool(ToolHand)

	s.PointerDown(Point{X: 0, Y: 0})
	if s.State() != StatePanning {
		t.Fatalf("state = %v, want panning", s.State())
	}
	s.PointerMove(Point{X: 30, Y: -10})
	s.PointerUp()

	cam := s.Camera()
	if cam.X != 30 || cam.Y != -10 {
		t.Fatalf("camera = (%v,%v), want (30,-10)", cam.X, cam.Y)
	}

	s.Wheel(-100)
	if s.Camera().Zoom <= 1 {
		t.Fatalf("zoom = %v, want > 1", s.Camera().Zoom)
	}
}

func TestSelectDeletesTopmostWithinRadius(t *testing.T) {
	s := NewSession(true)
	fixedClock(s)
	s.Load([]Element{
		{ID: 1, Type: TypeRect, X: 100, Y: 100},
		{ID: 2, Type: TypeCircle, X: 110, Y: 95},
	}, DefaultCamera())
	s.SetTool(ToolSelect)

	// Both anchors are within 30 of the click; the later element wins.
	s.PointerDown(Point{X: 105, Y: 102})
	s.PointerUp()

	els := s.Elements()
	if len(els) != 1 || els[0].ID != 1 {
		t.Fatalf("elements = %+v, want only ID 1 left", els)
	}

	notices := s.Notices()
	if len(notices) != 1 || notices[0].Message != "Deleted" {
		t.Fatalf("notices = %+v, want Deleted", notices)
	}
}

func TestSelectMissDeletesNothing(t *testing.T) {
	s := NewSession(true)
	fixedClock(s)
	s.Load([]Element{{ID: 1, Type: TypeRect, X: 100, Y: 100}}, DefaultCamera())
	s.SetTool(ToolSelect)

	// dx = 30 exactly: the hit test is strict less-than.
	s.PointerDown(Point{X: 130, Y: 100})
	s.PointerUp()

	if len(s.Elements()) != 1 {
		t.Fatal("element at exactly HitRadius away was deleted")
	}
	if len(s.Notices()) != 0 {
		t.Fatal("miss raised a notice")
	}
}

func TestTextCommit(t *testing.T) {
	s := NewSession(true)
	fixedClock(s)
	s.SetTool(ToolText)

	s.PointerDown(Point{X: 40, Y: 60})
	if s.State() != StatePlacingText {
		t.Fatalf("state = %v, want placing_text", s.State())
	}
	if len(s.Elements()) != 0 {
		t.Fatal("draft element entered the list while modal open")
	}

	// Pointer up must not close the modal.
	s.PointerUp()
	if s.State() != StatePlacingText {
		t.Fatalf("pointer up closed the modal, state = %v", s.State())
	}

	s.CommitText("hello")
	if s.State() != StateIdle {
		t.Fatalf("state = %v after commit, want idle", s.State())
	}
	els := s.Elements()
	if len(els) != 1 || els[0].Type != TypeText || els[0].Text != "hello" {
		t.Fatalf("elements = %+v, want one text element", els)
	}
	if els[0].X != 40 || els[0].Y != 60 {
		t.Fatalf("text position = (%v,%v), want (40,60)", els[0].X, els[0].Y)
	}
}

func TestTextBlankDiscarded(t *testing.T) {
	s := NewSession(true)
	fixedClock(s)
	s.SetTool(ToolText)

	s.PointerDown(Point{X: 0, Y: 0})
	s.CommitText("   \t ")
	if len(s.Elements()) != 0 {
		t.Fatal("whitespace-only text was kept")
	}
	if s.State() != StateIdle {
		t.Fatalf("state = %v, want idle", s.State())
	}
}

func TestTextCancel(t *testing.T) {
	s := NewSession(true)
	fixedClock(s)
	s.SetTool(ToolText)

	s.PointerDown(Point{X: 0, Y: 0})
	s.CancelText()
	if s.PendingText() != nil {
		t.Fatal("pending text survived cancel")
	}
	if len(s.Elements()) != 0 {
		t.Fatal("cancel added an element")
	}
}

func TestElementIDsMonotonic(t *testing.T) {
	s := NewSession(true)
	fixedClock(s) // frozen clock forces the same-tick bump path
	s.SetTool(ToolRect)

	for i := 0; i < 5; i++ {
		s.PointerDown(Point{X: float64(i), Y: 0})
		s.PointerUp()
	}

	els := s.Elements()
	for i := 1; i < len(els); i++ {
		if els[i].ID <= els[i-1].ID {
			t.Fatalf("IDs not strictly increasing: %d then %d", els[i-1].ID, els[i].ID)
		}
	}
}

func TestEraserIsAnElement(t *testing.T) {
	s := NewSession(true)
	fixedClock(s)
	s.SetTool(ToolEraser)

	s.PointerDown(Point{X: 0, Y: 0})
	s.PointerMove(Point{X: 10, Y: 10})
	s.PointerUp()

	els := s.Elements()
	if len(els) != 1 || els[0].Type != TypeEraser {
		t.Fatalf("elements = %+v, want one eraser stroke", els)
	}
}

func TestToolSelectionKeepsState(t *testing.T) {
	s := NewSession(true)
	s.SetTool(ToolCircle)
	if s.State() != StateIdle {
		t.Fatalf("tool change moved state to %v", s.State())
	}
	if s.Tool() != ToolCircle {
		t.Fatalf("tool = %v, want circle", s.Tool())
	}
}
