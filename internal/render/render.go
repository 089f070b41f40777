// Package render draws a scene onto abstract drawing surfaces: the main
// view through the session window, and the minimap through the fixed
// world bounds.
package render

import (
	"image/color"

	"viewport2d/internal/geom"
	"viewport2d/internal/scene"
)

// Surface is a drawing target addressed in its own viewport coordinates
// (origin top-left, y down).
type Surface interface {
	Clear()
	// Dot draws a filled circle.
	Dot(at geom.Vec2, radius float64, c color.Color)
	Line(a, b geom.Vec2, c color.Color)
	// Polygon draws a closed, unfilled outline.
	Polygon(pts []geom.Vec2, c color.Color)
	// DashedPolygon draws a closed, unfilled, dashed outline.
	DashedPolygon(pts []geom.Vec2, c color.Color)
}

const (
	mainDotRadius    = 2
	minimapDotRadius = 1
)

// Coordinator redraws both displays from scratch. It never fails for a
// non-degenerate window.
type Coordinator struct {
	Policy scene.VisibilityPolicy
}

func NewCoordinator() *Coordinator {
	return &Coordinator{Policy: scene.AlwaysVisible{}}
}

func (c *Coordinator) visible(p scene.Primitive, w geom.Window) bool {
	if !p.IsVisible() {
		return false
	}
	if c.Policy == nil {
		return true
	}
	return c.Policy.Visible(p, w.Corners())
}

// RenderMain clears dst and draws every visible primitive through the
// window in its own colour.
func (c *Coordinator) RenderMain(s *scene.Scene, w geom.Window, dst Surface) {
	dst.Clear()
	for _, p := range s.Primitives {
		if !c.visible(p, w) {
			continue
		}
		pts := mapAll(p.Coords(), func(v geom.Vec2) geom.Vec2 { return w.Map(v, s.Viewport) })
		draw(dst, p.Kind(), pts, ResolveColor(p), mainDotRadius)
	}
}

// RenderMinimap clears dst, draws the window outline dashed and then every
// primitive mapped from the world bounds, in fixed per-kind colours.
func (c *Coordinator) RenderMinimap(s *scene.Scene, w geom.Window, dst Surface) {
	dst.Clear()
	outline := w.Outline()
	dst.DashedPolygon(mapAll(outline[:], geom.ToMinimap), MinimapOutline)
	for _, p := range s.Primitives {
		pts := mapAll(p.Coords(), geom.ToMinimap)
		draw(dst, p.Kind(), pts, minimapColors[p.Kind()], minimapDotRadius)
	}
}

func draw(dst Surface, k scene.Kind, pts []geom.Vec2, col color.Color, radius float64) {
	switch k {
	case scene.KindPoint:
		dst.Dot(pts[0], radius, col)
	case scene.KindSegment:
		dst.Line(pts[0], pts[1], col)
	case scene.KindPolygon:
		dst.Polygon(pts, col)
	}
}

func mapAll(in []geom.Vec2, f func(geom.Vec2) geom.Vec2) []geom.Vec2 {
	out := make([]geom.Vec2, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
