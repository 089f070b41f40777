// Package scene holds the drawable primitives and the per-session view state.
package scene

import (
	"fmt"

	"viewport2d/internal/geom"
)

type Kind int

const (
	KindPoint Kind = iota
	KindSegment
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindSegment:
		return "segment"
	case KindPolygon:
		return "polygon"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DefaultColor is the colour a primitive of this kind gets when its source
// does not name one.
func (k Kind) DefaultColor() string {
	switch k {
	case KindSegment:
		return "blue"
	case KindPolygon:
		return "green"
	}
	return "black"
}

// Primitive is one of *Point, *Segment or *Polygon. Coordinates are world
// space only; display coordinates are recomputed on every draw.
type Primitive interface {
	Kind() Kind
	Coords() []geom.Vec2
	ColorName() string
	IsVisible() bool
}

type Point struct {
	At      geom.Vec2
	Color   string
	Visible bool
}

func NewPoint(at geom.Vec2, color string) *Point {
	if color == "" {
		color = KindPoint.DefaultColor()
	}
	return &Point{At: at, Color: color, Visible: true}
}

func (p *Point) Kind() Kind          { return KindPoint }
func (p *Point) Coords() []geom.Vec2 { return []geom.Vec2{p.At} }
func (p *Point) ColorName() string   { return p.Color }
func (p *Point) IsVisible() bool     { return p.Visible }

type Segment struct {
	Ends    [2]geom.Vec2
	Color   string
	Visible bool
}

func NewSegment(a, b geom.Vec2, color string) *Segment {
	if color == "" {
		color = KindSegment.DefaultColor()
	}
	return &Segment{Ends: [2]geom.Vec2{a, b}, Color: color, Visible: true}
}

func (s *Segment) Kind() Kind          { return KindSegment }
func (s *Segment) Coords() []geom.Vec2 { return s.Ends[:] }
func (s *Segment) ColorName() string   { return s.Color }
func (s *Segment) IsVisible() bool     { return s.Visible }

// Polygon is an ordered, implicitly closed vertex list.
type Polygon struct {
	Vertices []geom.Vec2
	Color    string
	Visible  bool
}

func NewPolygon(vertices []geom.Vec2, color string) *Polygon {
	if color == "" {
		color = KindPolygon.DefaultColor()
	}
	return &Polygon{Vertices: vertices, Color: color, Visible: true}
}

func (p *Polygon) Kind() Kind          { return KindPolygon }
func (p *Polygon) Coords() []geom.Vec2 { return p.Vertices }
func (p *Polygon) ColorName() string   { return p.Color }
func (p *Polygon) IsVisible() bool     { return p.Visible }

// DefaultStep is the pan distance per arrow key at startup.
const DefaultStep = 1.0

// Scene is everything a session shows and saves.
type Scene struct {
	Window     geom.Rect
	Viewport   geom.Rect
	Step       float64
	Primitives []Primitive
}

func New() *Scene {
	return &Scene{
		Window:   geom.DefaultWindow(),
		Viewport: geom.DefaultViewport(),
		Step:     DefaultStep,
	}
}

func (s *Scene) Add(p ...Primitive) { s.Primitives = append(s.Primitives, p...) }

// Counts returns how many primitives of each kind the scene holds.
func (s *Scene) Counts() (points, segments, polygons int) {
	for _, p := range s.Primitives {
		switch p.Kind() {
		case KindPoint:
			points++
		case KindSegment:
			segments++
		case KindPolygon:
			polygons++
		}
	}
	return points, segments, polygons
}

// Bounds is the bounding box of every primitive vertex.
func (s *Scene) Bounds() (geom.Rect, bool) {
	var pts []geom.Vec2
	for _, p := range s.Primitives {
		pts = append(pts, p.Coords()...)
	}
	if len(pts) == 0 {
		return geom.Rect{}, false
	}
	return geom.Bounds(pts...), true
}
