package canvas

import "testing"

func TestRenderable(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want bool
	}{
		{"pencil with two points", Element{Type: TypePencil, Points: []Point{{0, 0}, {1, 1}}}, true},
		{"pencil with one point", Element{Type: TypePencil, Points: []Point{{0, 0}}}, false},
		{"eraser with no points", Element{Type: TypeEraser}, false},
		{"text with content", Element{Type: TypeText, Text: "hi"}, true},
		{"text empty", Element{Type: TypeText}, false},
		{"rect zero extent", Element{Type: TypeRect}, true},
		{"circle", Element{Type: TypeCircle, W: 10}, true},
		{"diamond", Element{Type: TypeDiamond}, true},
		{"arrow", Element{Type: TypeArrow, W: 5, H: 5}, true},
		{"unknown type", Element{Type: "sparkle"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.Renderable(); got != tt.want {
				t.Fatalf("Renderable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeDefaultSize(t *testing.T) {
	el := Element{Type: TypeRect}
	el.Normalize()
	if el.Size != DefaultStrokeSize {
		t.Fatalf("Size = %v, want %v", el.Size, DefaultStrokeSize)
	}

	el = Element{Type: TypeRect, Size: 7}
	el.Normalize()
	if el.Size != 7 {
		t.Fatalf("Size = %v, want 7 (explicit size kept)", el.Size)
	}
}

func TestNormalizeAllKeepsUnknownTypes(t *testing.T) {
	in := []Element{
		{Type: TypePencil, Points: []Point{{0, 0}}},
		{Type: "sparkle"},
	}
	out := NormalizeAll(in)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2: unknown types are skipped at render, not dropped", len(out))
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range []ElementType{TypePencil, TypeEraser, TypeRect, TypeDiamond, TypeCircle, TypeArrow, TypeText} {
		if !ValidType(typ) {
			t.Errorf("ValidType(%q) = false", typ)
		}
	}
	if ValidType("sparkle") {
		t.Error("ValidType(sparkle) = true")
	}
}
