package canvas

import (
	"math"
	"testing"
)

func TestCameraRoundTrip(t *testing.T) {
	cam := Camera{X: 120, Y: -40, Zoom: 2.5}
	orig := Point{X: 33.5, Y: -17.25}

	got := cam.ToScreen(cam.ToCanvas(orig))
	if math.Abs(got.X-orig.X) > 1e-9 || math.Abs(got.Y-orig.Y) > 1e-9 {
		t.Fatalf("round trip drifted: got %+v, want %+v", got, orig)
	}
}

func TestToCanvas(t *testing.T) {
	cam := Camera{X: 100, Y: 50, Zoom: 2}
	got := cam.ToCanvas(Point{X: 300, Y: 250})
	want := Point{X: 100, Y: 100}
	if got != want {
		t.Fatalf("ToCanvas = %+v, want %+v", got, want)
	}
}

func TestPanUsesRawScreenDelta(t *testing.T) {
	cam := Camera{X: 10, Y: 20, Zoom: 4}
	cam.Pan(-5, 8)
	if cam.X != 5 || cam.Y != 28 {
		t.Fatalf("pan moved camera to (%v, %v), want (5, 28)", cam.X, cam.Y)
	}
	if cam.Zoom != 4 {
		t.Fatalf("pan changed zoom to %v", cam.Zoom)
	}
}

func TestApplyWheel(t *testing.T) {
	cam := DefaultCamera()
	cam.ApplyWheel(-100) // scroll up zooms in
	if math.Abs(cam.Zoom-1.1) > 1e-9 {
		t.Fatalf("zoom = %v, want 1.1", cam.Zoom)
	}

	cam.ApplyWheel(200)
	if math.Abs(cam.Zoom-0.9) > 1e-9 {
		t.Fatalf("zoom = %v, want 0.9", cam.Zoom)
	}
}

func TestApplyWheelClamps(t *testing.T) {
	cam := DefaultCamera()
	for i := 0; i < 100; i++ {
		cam.ApplyWheel(-1000)
	}
	if cam.Zoom != ZoomMax {
		t.Fatalf("zoom = %v after repeated zoom-in, want %v", cam.Zoom, ZoomMax)
	}

	for i := 0; i < 100; i++ {
		cam.ApplyWheel(1000)
	}
	if cam.Zoom != ZoomMin {
		t.Fatalf("zoom = %v after repeated zoom-out, want %v", cam.Zoom, ZoomMin)
	}
}

func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero zoom becomes one", 0, 1},
		{"negative zoom becomes one", -3, 1},
		{"below range clamps", 0.1, ZoomMin},
		{"above range clamps", 12, ZoomMax},
		{"in range unchanged", 1.5, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := Camera{Zoom: tt.in}
			if got := cam.Normalized().Zoom; got != tt.want {
				t.Fatalf("Normalized().Zoom = %v, want %v", got, tt.want)
			}
		})
	}
}
