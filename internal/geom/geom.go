package geom

import (
	"errors"
	"math"
)

// ErrDegenerateWindow is the panic value of ToViewport and ToWorld when a
// rectangle they divide by has zero extent. Callers keep the window
// non-degenerate, so seeing it is a bug.
var ErrDegenerateWindow = errors.New("geom: degenerate window")

// ToViewport maps a world point into viewport coordinates. The vertical
// axis is flipped: world y grows up, viewport y grows down.
func ToViewport(p Vec2, window, viewport Rect) Vec2 {
	if window.Degenerate() {
		panic(ErrDegenerateWindow)
	}
	sx := viewport.Width() / window.Width()
	sy := viewport.Height() / window.Height()
	return Vec2{
		X: viewport.MinX + (p.X-window.MinX)*sx,
		Y: viewport.MinY + (window.MaxY-p.Y)*sy,
	}
}

// ToWorld is the inverse of ToViewport.
func ToWorld(v Vec2, window, viewport Rect) Vec2 {
	if window.Degenerate() || viewport.Degenerate() {
		panic(ErrDegenerateWindow)
	}
	sx := window.Width() / viewport.Width()
	sy := window.Height() / viewport.Height()
	return Vec2{
		X: window.MinX + (v.X-viewport.MinX)*sx,
		Y: window.MaxY - (v.Y-viewport.MinY)*sy,
	}
}

// ToMinimap maps a world point into minimap coordinates using the fixed
// world bounds as the window.
func ToMinimap(p Vec2) Vec2 {
	return ToViewport(p, WorldBounds(), MinimapViewport())
}

// Translate shifts the window by (dx, dy) and clamps it against the world
// bounds one axis at a time, keeping the window's size. The minimum side is
// checked before the maximum side, so a window at least as large as the
// world on an axis ends up pinned to the world maximum on that axis.
func Translate(window Rect, dx, dy float64) Rect {
	world := WorldBounds()
	out := window.Translate(Vec2{X: dx, Y: dy})
	w, h := window.Width(), window.Height()

	if out.MinX < world.MinX {
		out.MinX = world.MinX
		out.MaxX = out.MinX + w
	}
	if out.MinY < world.MinY {
		out.MinY = world.MinY
		out.MaxY = out.MinY + h
	}
	if out.MaxX > world.MaxX {
		out.MaxX = world.MaxX
		out.MinX = out.MaxX - w
	}
	if out.MaxY > world.MaxY {
		out.MaxY = world.MaxY
		out.MinY = out.MaxY - h
	}
	return out
}

// Scale grows (factor > 1) or shrinks (factor < 1) the window about its
// centre. It does not clamp against the world bounds.
func Scale(window Rect, factor float64) Rect {
	c := window.Center()
	hw := window.Width() * factor / 2
	hh := window.Height() * factor / 2
	return Rect{MinX: c.X - hw, MinY: c.Y - hh, MaxX: c.X + hw, MaxY: c.Y + hh}
}

// Rotate turns the two stored corners of the window about its centre by
// degrees, counter-clockwise in a y-up space. The turned corners become the
// new corner pair; no angle is kept.
func Rotate(window Rect, degrees float64) Rect {
	c := window.Center()
	a := RotateAbout(window.Min(), c, degrees)
	b := RotateAbout(window.Max(), c, degrees)
	return Rect{MinX: a.X, MinY: a.Y, MaxX: b.X, MaxY: b.Y}
}

// RotateAbout turns p about c by degrees, counter-clockwise in a y-up space.
func RotateAbout(p, c Vec2, degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	d := p.Sub(c)
	return Vec2{
		X: c.X + d.X*cos - d.Y*sin,
		Y: c.Y + d.X*sin + d.Y*cos,
	}
}
