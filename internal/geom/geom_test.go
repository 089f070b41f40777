package geom

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) <= eps }

func approxVec(a, b Vec2) bool { return approx(a.X, b.X) && approx(a.Y, b.Y) }

func approxRect(a, b Rect) bool {
	return approx(a.MinX, b.MinX) && approx(a.MinY, b.MinY) && approx(a.MaxX, b.MaxX) && approx(a.MaxY, b.MaxY)
}

// ── ToViewport / ToWorld ──

func TestToViewportCenter(t *testing.T) {
	got := ToViewport(V(5, 3.75), DefaultWindow(), DefaultViewport())
	if !approxVec(got, V(400, 300)) {
		t.Fatalf("expected (400,300), got %v", got)
	}
}

func TestToViewportCornersFlipY(t *testing.T) {
	w, vp := DefaultWindow(), DefaultViewport()
	cases := []struct {
		world, want Vec2
	}{
		{V(0, 0), V(0, 600)},
		{V(10, 7.5), V(800, 0)},
		{V(0, 7.5), V(0, 0)},
		{V(10, 0), V(800, 600)},
	}
	for _, c := range cases {
		if got := ToViewport(c.world, w, vp); !approxVec(got, c.want) {
			t.Errorf("ToViewport(%v): expected %v, got %v", c.world, c.want, got)
		}
	}
}

func TestToViewportInsideStaysInside(t *testing.T) {
	w := R(-3, 2, 17, 9)
	vp := R(10, 20, 330, 260)
	for i := 0; i <= 10; i++ {
		for j := 0; j <= 10; j++ {
			p := V(w.MinX+w.Width()*float64(i)/10, w.MinY+w.Height()*float64(j)/10)
			v := ToViewport(p, w, vp)
			if v.X < vp.MinX-eps || v.X > vp.MaxX+eps || v.Y < vp.MinY-eps || v.Y > vp.MaxY+eps {
				t.Fatalf("point %v mapped outside viewport: %v", p, v)
			}
		}
	}
}

func TestToViewportAffine(t *testing.T) {
	w, vp := R(1, 1, 6, 4), R(0, 0, 500, 300)
	a, b := V(1.5, 1.2), V(5.5, 3.8)
	mid := a.Add(b).Mul(0.5)
	va, vb, vm := ToViewport(a, w, vp), ToViewport(b, w, vp), ToViewport(mid, w, vp)
	if !approxVec(vm, va.Add(vb).Mul(0.5)) {
		t.Fatalf("midpoint not preserved: %v vs %v", vm, va.Add(vb).Mul(0.5))
	}
	q := a.Add(b.Sub(a).Mul(0.25))
	vq := ToViewport(q, w, vp)
	if !approxVec(vq, va.Add(vb.Sub(va).Mul(0.25))) {
		t.Fatalf("ratio along line not preserved: %v", vq)
	}
}

func TestToWorldRoundTrip(t *testing.T) {
	w, vp := R(2, -1, 9, 6.5), R(0, 0, 640, 480)
	for _, p := range []Vec2{V(0, 0), V(2, -1), V(3.3, 4.4), V(100, -50)} {
		v := ToViewport(p, w, vp)
		back := ToWorld(v, w, vp)
		if !approxVec(back, p) {
			t.Errorf("ToWorld(ToViewport(%v)) = %v", p, back)
		}
		if again := ToViewport(back, w, vp); !approxVec(again, v) {
			t.Errorf("ToViewport not stable: %v vs %v", again, v)
		}
	}
}

func TestToViewportDegeneratePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrDegenerateWindow) {
			t.Fatalf("expected ErrDegenerateWindow panic, got %v", r)
		}
	}()
	ToViewport(V(1, 1), R(0, 0, 0, 5), DefaultViewport())
}

func TestToMinimap(t *testing.T) {
	if got := ToMinimap(V(0, 0)); !approxVec(got, V(0, 120)) {
		t.Errorf("world origin: got %v", got)
	}
	if got := ToMinimap(V(25, 18.75)); !approxVec(got, V(150, 0)) {
		t.Errorf("world max: got %v", got)
	}
	if got := ToMinimap(V(10, 7.5)); !approxVec(got, V(60, 72)) {
		t.Errorf("default window max: got %v", got)
	}
}

// ── Translate ──

func TestTranslateClampedAtMinimum(t *testing.T) {
	got := Translate(DefaultWindow(), -5, 0)
	if got != DefaultWindow() {
		t.Fatalf("expected window unchanged, got %v", got)
	}
}

func TestTranslateRoundTripInside(t *testing.T) {
	start := R(5, 5, 15, 12.5)
	got := Translate(Translate(start, 3, 0), -3, 0)
	if got != start {
		t.Fatalf("expected %v, got %v", start, got)
	}
	got = Translate(Translate(start, 0, 1.25), 0, -1.25)
	if got != start {
		t.Fatalf("expected %v, got %v", start, got)
	}
}

func TestTranslateClampedAtMaximum(t *testing.T) {
	got := Translate(R(14, 10, 24, 17.5), 5, 5)
	want := R(15, 11.25, 25, 18.75)
	if !approxRect(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	// the naive translation would have been (19,15,29,22.5)
	back := Translate(got, -5, 0)
	if !approxRect(back, R(10, 11.25, 20, 18.75)) {
		t.Fatalf("move back from clamp: got %v", back)
	}
}

func TestTranslateWorldSizedWindowIsPinned(t *testing.T) {
	world := WorldBounds()
	for _, d := range [][2]float64{{1, 0}, {-1, 0}, {0, 2}, {0, -2}} {
		if got := Translate(world, d[0], d[1]); !approxRect(got, world) {
			t.Errorf("translate %v: expected pinned window, got %v", d, got)
		}
	}
}

func TestTranslateKeepsSize(t *testing.T) {
	start := R(3, 2, 9, 6)
	for _, d := range [][2]float64{{-10, 0}, {30, 0}, {0, -10}, {0, 30}, {-7, 40}} {
		got := Translate(start, d[0], d[1])
		if !approx(got.Width(), start.Width()) || !approx(got.Height(), start.Height()) {
			t.Errorf("translate %v changed size: %v", d, got)
		}
	}
}

// ── Scale ──

func TestScaleAboutCenter(t *testing.T) {
	got := Scale(DefaultWindow(), 1.1)
	if !approxVec(got.Center(), DefaultWindow().Center()) {
		t.Fatalf("center moved: %v", got.Center())
	}
	if !approx(got.Width(), 11) || !approx(got.Height(), 8.25) {
		t.Fatalf("unexpected extent %v x %v", got.Width(), got.Height())
	}
}

func TestScaleInverse(t *testing.T) {
	start := R(1, 2, 7, 5)
	for _, f := range []float64{1.1, 0.9, 2, 0.25} {
		got := Scale(Scale(start, f), 1/f)
		if !approxRect(got, start) {
			t.Errorf("factor %v: expected %v, got %v", f, start, got)
		}
	}
}

func TestScaleIgnoresWorldBounds(t *testing.T) {
	got := Scale(WorldBounds(), 2)
	if got.MinX >= 0 || got.MaxX <= 25 {
		t.Fatalf("expected window to exceed world bounds, got %v", got)
	}
}

// ── Rotate ──

func TestRotateInverse(t *testing.T) {
	start := R(1, 2, 7, 5)
	for _, deg := range []float64{15, 45, 90, 133.7, -60} {
		got := Rotate(Rotate(start, deg), -deg)
		if !approxRect(got, start) {
			t.Errorf("deg %v: expected %v, got %v", deg, start, got)
		}
	}
}

func TestRotate90(t *testing.T) {
	got := Rotate(DefaultWindow(), 90)
	want := R(8.75, -1.25, 1.25, 8.75)
	if !approxRect(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !approxVec(got.Center(), DefaultWindow().Center()) {
		t.Fatalf("center moved: %v", got.Center())
	}
}

func TestRotateThenZoomReadsCornersAxisAligned(t *testing.T) {
	// after rotating, zoom treats the turned corner pair as an ordinary box
	rotated := Rotate(DefaultWindow(), 90)
	got := Scale(rotated, 2)
	want := R(12.5, -6.25, -2.5, 13.75)
	if !approxRect(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
