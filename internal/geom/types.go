package geom

// Vec2 is a position or displacement in a 2D space.
type Vec2 struct {
	X float64
	Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec2) Mul(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

// Rect is a rectangle stored as a (min, max) corner pair.
//
// For the viewport the pair is a pixel box with the origin top-left.
// For the window it is a world-space box with y pointing up; after a
// rotation the pair is just two corners of a turned rectangle and Min
// is not necessarily smaller than Max.
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func R(minX, minY, maxX, maxY float64) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func (r Rect) Min() Vec2 { return Vec2{X: r.MinX, Y: r.MinY} }

func (r Rect) Max() Vec2 { return Vec2{X: r.MaxX, Y: r.MaxY} }

// Width is signed: it is negative when the stored corners are swapped.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

func (r Rect) Height() float64 { return r.MaxY - r.MinY }

func (r Rect) Center() Vec2 {
	return Vec2{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Degenerate reports whether the rectangle has zero extent on an axis.
func (r Rect) Degenerate() bool {
	return r.MaxX == r.MinX || r.MaxY == r.MinY
}

func (r Rect) Translate(d Vec2) Rect {
	return Rect{MinX: r.MinX + d.X, MinY: r.MinY + d.Y, MaxX: r.MaxX + d.X, MaxY: r.MaxY + d.Y}
}

// Corners returns the four corners of the axis-aligned box spanned by the
// stored pair, starting at Min and going counter-clockwise in a y-up space.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
}

// Contains reports whether p lies inside the box spanned by the corners.
func (r Rect) Contains(p Vec2) bool {
	x0, x1 := min(r.MinX, r.MaxX), max(r.MinX, r.MaxX)
	y0, y1 := min(r.MinY, r.MaxY), max(r.MinY, r.MaxY)
	return p.X >= x0 && p.X <= x1 && p.Y >= y0 && p.Y <= y1
}

// Bounds returns the smallest axis-aligned Rect containing pts, with Min <= Max.
func Bounds(pts ...Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	bb := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < bb.MinX {
			bb.MinX = p.X
		}
		if p.Y < bb.MinY {
			bb.MinY = p.Y
		}
		if p.X > bb.MaxX {
			bb.MaxX = p.X
		}
		if p.Y > bb.MaxY {
			bb.MaxY = p.Y
		}
	}
	return bb
}

// DefaultWindow is the window a session starts with and Reset returns to.
func DefaultWindow() Rect { return Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 7.5} }

// DefaultViewport is the main display area in pixels.
func DefaultViewport() Rect { return Rect{MinX: 0, MinY: 0, MaxX: 800, MaxY: 600} }

// WorldBounds limits panning and is the region shown by the minimap.
// It is the default window scaled by 2.5.
func WorldBounds() Rect { return Rect{MinX: 0, MinY: 0, MaxX: 25, MaxY: 18.75} }

// MinimapViewport is the minimap display area in pixels.
func MinimapViewport() Rect { return Rect{MinX: 0, MinY: 0, MaxX: 150, MaxY: 120} }
