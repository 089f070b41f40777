package geom

import (
	"fmt"
	"strings"
)

// Mode selects how the window remembers its orientation.
type Mode int

const (
	// ModeLegacy keeps only the corner pair. A rotated pair is read back as
	// an axis-aligned box by later pans and zooms.
	ModeLegacy Mode = iota
	// ModeAffine keeps centre, half extents and angle, so rotation survives
	// pans and zooms.
	ModeAffine
)

func (m Mode) String() string {
	switch m {
	case ModeLegacy:
		return "legacy"
	case ModeAffine:
		return "affine"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "legacy" and "affine", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy", "corner", "corners":
		return ModeLegacy, nil
	case "affine":
		return ModeAffine, nil
	}
	return 0, fmt.Errorf("geom: unknown window mode %q", s)
}

// Window is a movable, scalable, rotatable view of world space.
type Window interface {
	Pan(dx, dy float64)
	Zoom(factor float64)
	Rotate(degrees float64)
	Reset()

	// Map takes a world point to viewport coordinates.
	Map(p Vec2, viewport Rect) Vec2
	// Unmap takes a viewport point back to world coordinates.
	Unmap(v Vec2, viewport Rect) Vec2

	// Corners is the corner pair written to scene files.
	Corners() Rect
	// SetCorners replaces the window with a corner pair read from a file.
	SetCorners(r Rect)
	// Outline is the window's four world-space corners, for the minimap.
	Outline() [4]Vec2
}

// NewWindow returns a window of the given mode set to r.
func NewWindow(mode Mode, r Rect) Window {
	var w Window
	switch mode {
	case ModeAffine:
		w = &AffineWindow{}
	default:
		w = &CornerWindow{}
	}
	w.SetCorners(r)
	return w
}

// CornerWindow is the legacy window: a bare corner pair.
type CornerWindow struct {
	r Rect
}

func (w *CornerWindow) Pan(dx, dy float64)     { w.r = Translate(w.r, dx, dy) }
func (w *CornerWindow) Zoom(factor float64)    { w.r = Scale(w.r, factor) }
func (w *CornerWindow) Rotate(degrees float64) { w.r = Rotate(w.r, degrees) }
func (w *CornerWindow) Reset()                 { w.r = DefaultWindow() }

func (w *CornerWindow) Map(p Vec2, viewport Rect) Vec2   { return ToViewport(p, w.r, viewport) }
func (w *CornerWindow) Unmap(v Vec2, viewport Rect) Vec2 { return ToWorld(v, w.r, viewport) }

func (w *CornerWindow) Corners() Rect     { return w.r }
func (w *CornerWindow) SetCorners(r Rect) { w.r = r }
func (w *CornerWindow) Outline() [4]Vec2  { return w.r.Corners() }

// AffineWindow is an oriented rectangle. Pan moves along the window's own
// axes, so an arrow key always scrolls the picture the same way on screen.
type AffineWindow struct {
	center Vec2
	half   Vec2
	angle  float64 // degrees, counter-clockwise
}

func (w *AffineWindow) Angle() float64 { return w.angle }

func (w *AffineWindow) Pan(dx, dy float64) {
	d := RotateAbout(Vec2{X: dx, Y: dy}, Vec2{}, w.angle)
	// clamp the box around the turned outline, then move the centre by
	// however far the box moved
	o := w.Outline()
	before := Bounds(o[:]...)
	after := Translate(before, d.X, d.Y)
	w.center = w.center.Add(after.Min().Sub(before.Min()))
}

func (w *AffineWindow) Zoom(factor float64) { w.half = w.half.Mul(factor) }

func (w *AffineWindow) Rotate(degrees float64) { w.angle += degrees }

func (w *AffineWindow) Reset() {
	w.SetCorners(DefaultWindow())
}

func (w *AffineWindow) frame() Rect {
	return Rect{
		MinX: w.center.X - w.half.X,
		MinY: w.center.Y - w.half.Y,
		MaxX: w.center.X + w.half.X,
		MaxY: w.center.Y + w.half.Y,
	}
}

func (w *AffineWindow) Map(p Vec2, viewport Rect) Vec2 {
	return ToViewport(RotateAbout(p, w.center, -w.angle), w.frame(), viewport)
}

func (w *AffineWindow) Unmap(v Vec2, viewport Rect) Vec2 {
	return RotateAbout(ToWorld(v, w.frame(), viewport), w.center, w.angle)
}

// Corners drops the angle: the file format has no place for it.
func (w *AffineWindow) Corners() Rect { return w.frame() }

func (w *AffineWindow) SetCorners(r Rect) {
	w.center = r.Center()
	w.half = Vec2{X: r.Width() / 2, Y: r.Height() / 2}
	w.angle = 0
}

func (w *AffineWindow) Outline() [4]Vec2 {
	out := w.frame().Corners()
	for i := range out {
		out[i] = RotateAbout(out[i], w.center, w.angle)
	}
	return out
}
