package geom

import "testing"

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{"": ModeLegacy, "legacy": ModeLegacy, "Affine": ModeAffine, " affine ": ModeAffine}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("diagonal"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestCornerWindowMatchesFunctions(t *testing.T) {
	w := NewWindow(ModeLegacy, DefaultWindow())
	want := DefaultWindow()

	w.Pan(2, 1)
	want = Translate(want, 2, 1)
	w.Zoom(0.9)
	want = Scale(want, 0.9)
	w.Rotate(30)
	want = Rotate(want, 30)
	w.Pan(1, 0)
	want = Translate(want, 1, 0)

	if w.Corners() != want {
		t.Fatalf("expected %v, got %v", want, w.Corners())
	}
	w.Reset()
	if w.Corners() != DefaultWindow() {
		t.Fatalf("reset: got %v", w.Corners())
	}
}

func TestCornerWindowMapUsesCorners(t *testing.T) {
	w := NewWindow(ModeLegacy, R(0, 0, 10, 7.5))
	got := w.Map(V(5, 3.75), DefaultViewport())
	if !approxVec(got, V(400, 300)) {
		t.Fatalf("expected (400,300), got %v", got)
	}
	if back := w.Unmap(got, DefaultViewport()); !approxVec(back, V(5, 3.75)) {
		t.Fatalf("unmap: got %v", back)
	}
}

func TestAffineWindowUnrotatedMatchesLegacy(t *testing.T) {
	a := NewWindow(ModeAffine, DefaultWindow())
	l := NewWindow(ModeLegacy, DefaultWindow())
	for _, w := range []Window{a, l} {
		w.Pan(3, 2)
		w.Zoom(1.1)
	}
	if !approxRect(a.Corners(), l.Corners()) {
		t.Fatalf("expected %v, got %v", l.Corners(), a.Corners())
	}
	p := V(7, 5)
	if !approxVec(a.Map(p, DefaultViewport()), l.Map(p, DefaultViewport())) {
		t.Fatal("maps differ without rotation")
	}
}

func TestAffineWindowRotationSurvivesZoom(t *testing.T) {
	w := NewWindow(ModeAffine, DefaultWindow()).(*AffineWindow)
	w.Rotate(90)
	w.Zoom(2)
	if !approx(w.Angle(), 90) {
		t.Fatalf("angle lost: %v", w.Angle())
	}
	// the centre still maps to the viewport centre
	if got := w.Map(V(5, 3.75), DefaultViewport()); !approxVec(got, V(400, 300)) {
		t.Fatalf("centre maps to %v", got)
	}
	// with the window turned a quarter counter-clockwise, a point right of
	// the centre in world space shows up below it on screen
	got := w.Map(V(6, 3.75), DefaultViewport())
	if !approxVec(got, V(400, 340)) {
		t.Fatalf("expected (400,340), got %v", got)
	}
	if back := w.Unmap(got, DefaultViewport()); !approxVec(back, V(6, 3.75)) {
		t.Fatalf("unmap: got %v", back)
	}
}

func TestAffineWindowRotateInverse(t *testing.T) {
	w := NewWindow(ModeAffine, R(2, 2, 8, 6))
	w.Rotate(37)
	w.Rotate(-37)
	if !approxRect(w.Corners(), R(2, 2, 8, 6)) {
		t.Fatalf("got %v", w.Corners())
	}
	out := w.Outline()
	if !approxVec(out[0], V(2, 2)) || !approxVec(out[2], V(8, 6)) {
		t.Fatalf("outline: %v", out)
	}
}

func TestAffineWindowPanClamps(t *testing.T) {
	w := NewWindow(ModeAffine, DefaultWindow())
	w.Pan(-5, 0)
	if !approxRect(w.Corners(), DefaultWindow()) {
		t.Fatalf("expected clamp at world minimum, got %v", w.Corners())
	}
	w.Rotate(90)
	w.Pan(100, 0)
	o := w.Outline()
	bb := Bounds(o[:]...)
	world := WorldBounds()
	if bb.MinY < world.MinY-eps || bb.MaxY > world.MaxY+eps || bb.MinX < world.MinX-eps || bb.MaxX > world.MaxX+eps {
		t.Fatalf("rotated window escaped world bounds: %v", bb)
	}
}
