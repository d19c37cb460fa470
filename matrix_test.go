package tileatlas

import "testing"

func TestPageTransform(t *testing.T) {
	tests := []struct {
		w, h int
		p    Point
		want Point
	}{
		{128, 128, Pt(64, 64), Pt(0.5, 0.5)},
		{128, 256, Pt(128, 128), Pt(1, 0.5)},
		{256, 256, Pt(0, 256), Pt(0, 1)},
	}
	for _, tt := range tests {
		m := pageTransform(tt.w, tt.h)
		if got := m.TransformPoint(tt.p); got != tt.want {
			t.Errorf("pageTransform(%d, %d).TransformPoint(%v) = %v, want %v",
				tt.w, tt.h, tt.p, got, tt.want)
		}
	}
	if !pageTransform(0, 0).IsIdentity() {
		t.Error("transform without a page is not identity")
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(8, 4).Multiply(Scale(1.0/256, 1.0/512))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported a singular matrix")
	}
	p := Pt(32, 64)
	if got := inv.TransformPoint(m.TransformPoint(p)); got != p {
		t.Errorf("round trip = %v, want %v", got, p)
	}
	if inv, ok := Scale(0, 1).Invert(); ok || !inv.IsIdentity() {
		t.Errorf("singular Invert() = %v, %v; want identity, false", inv, ok)
	}
}

func TestTransformRect(t *testing.T) {
	m := pageTransform(256, 512)
	min, max := m.TransformRect(Rect{X: 128, Y: 256, Width: 128, Height: 128})
	if min != Pt(0.5, 0.5) || max != Pt(1, 0.75) {
		t.Errorf("TransformRect = %v-%v, want (0.5,0.5)-(1,0.75)", min, max)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 64, Y: 128, Width: 64, Height: 64}
	if r.Min() != Pt(64, 128) || r.Max() != Pt(128, 192) {
		t.Errorf("Min/Max = %v/%v", r.Min(), r.Max())
	}
	if !r.Contains(64, 191) || r.Contains(128, 128) {
		t.Error("Contains is not half-open")
	}
	if got := r.Inset(2); got != (Rect{X: 66, Y: 130, Width: 60, Height: 60}) {
		t.Errorf("Inset(2) = %v", got)
	}
	if got := r.Inset(40); got.Width != 0 || got.IsValid() {
		t.Errorf("Inset(40) = %v, want empty", got)
	}
	if got := r.Scale(2); got != (Rect{X: 16, Y: 32, Width: 16, Height: 16}) {
		t.Errorf("Scale(2) = %v", got)
	}
	if got := r.String(); got != "Rect(64,128 64x64)" {
		t.Errorf("String() = %q", got)
	}
}
