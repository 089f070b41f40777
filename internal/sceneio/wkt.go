package sceneio

import (
	"errors"
	"strings"

	"viewport2d/internal/geom"
	"viewport2d/internal/scene"
)

// ParseWKT turns a WKT geometry into primitives.
// Supported: POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON.
// Line strings become consecutive segments; a polygon keeps its outer ring.
func ParseWKT(wkt string) ([]scene.Primitive, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	parseTuples := func(block string) []geom.Vec2 {
		var out []geom.Vec2
		// split by comma into tuples "x y"
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.Trim(strings.TrimSpace(tup), "()"))
			if len(parts) < 2 {
				continue
			}
			x, e1 := parseCoord(parts[0])
			y, e2 := parseCoord(parts[1])
			if e1 != nil || e2 != nil {
				continue
			}
			out = append(out, geom.V(x, y))
		}
		return out
	}
	body := func(open, close string) (string, bool) {
		i := strings.Index(s, open)
		j := strings.LastIndex(s, close)
		if i < 0 || j <= i {
			return "", false
		}
		return s[i+len(open) : j], true
	}

	var prims []scene.Primitive
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"), strings.HasPrefix(up, "POINT"):
		b, ok := body("(", ")")
		if !ok {
			return nil, errors.New("wkt point: invalid")
		}
		for _, p := range parseTuples(b) {
			prims = append(prims, scene.NewPoint(p, ""))
		}
	case strings.HasPrefix(up, "MULTILINESTRING"):
		b, ok := body("((", "))")
		if !ok {
			return nil, errors.New("wkt multilinestring: invalid")
		}
		for _, part := range splitRings(b) {
			prims = append(prims, polyline(parseTuples(part))...)
		}
	case strings.HasPrefix(up, "LINESTRING"):
		b, ok := body("(", ")")
		if !ok {
			return nil, errors.New("wkt linestring: invalid")
		}
		prims = polyline(parseTuples(b))
	case strings.HasPrefix(up, "POLYGON"):
		b, ok := body("((", "))")
		if !ok {
			return nil, errors.New("wkt polygon: invalid")
		}
		// holes are ignored
		if ring := openRing(parseTuples(splitRings(b)[0])); len(ring) > 0 {
			prims = append(prims, scene.NewPolygon(ring, ""))
		}
	default:
		return nil, errors.New("unsupported wkt type")
	}
	if len(prims) == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	return prims, nil
}

func splitRings(s string) []string {
	// normalize spaces around ring separators
	norm := strings.ReplaceAll(s, "), (", "),(")
	norm = strings.ReplaceAll(norm, ") , (", "),(")
	return strings.Split(norm, "),(")
}

// polyline splits a line string into its segments.
func polyline(pts []geom.Vec2) []scene.Primitive {
	var out []scene.Primitive
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, scene.NewSegment(pts[i], pts[i+1], ""))
	}
	return out
}

// openRing drops the closing vertex that repeats the first one.
func openRing(ring []geom.Vec2) []geom.Vec2 {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		return ring[:n-1]
	}
	return ring
}
