package scene

import "viewport2d/internal/geom"

// VisibilityPolicy decides at render time whether a primitive is drawn.
// A clipping algorithm can be plugged in here without touching renderers.
type VisibilityPolicy interface {
	Visible(p Primitive, window geom.Rect) bool
}

// AlwaysVisible draws everything, including primitives outside the window.
type AlwaysVisible struct{}

func (AlwaysVisible) Visible(Primitive, geom.Rect) bool { return true }

// VisibilityFunc adapts a plain function to VisibilityPolicy.
type VisibilityFunc func(p Primitive, window geom.Rect) bool

func (f VisibilityFunc) Visible(p Primitive, window geom.Rect) bool { return f(p, window) }
