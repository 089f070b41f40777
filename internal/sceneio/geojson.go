package sceneio

import (
	"encoding/json"
	"errors"
	"io"

	"viewport2d/internal/geom"
	"viewport2d/internal/scene"
)

// DecodeGeoJSON reads a GeoJSON geometry, Feature or FeatureCollection.
// A feature's "cor", "color" or "stroke" property becomes the colour.
func DecodeGeoJSON(r io.Reader) ([]scene.Primitive, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var prims []scene.Primitive

	parsePoint := func(v any) (geom.Vec2, bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return geom.V(x, y), true
			}
		}
		return geom.Vec2{}, false
	}
	parseArrayPoints := func(v any) []geom.Vec2 {
		arr, _ := v.([]any)
		var pts []geom.Vec2
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				pts = append(pts, pt)
			}
		}
		return pts
	}
	addLine := func(ls []geom.Vec2, color string) {
		for i := 0; i+1 < len(ls); i++ {
			prims = append(prims, scene.NewSegment(ls[i], ls[i+1], color))
		}
	}
	addPoly := func(rings any, color string) {
		arr, _ := rings.([]any)
		if len(arr) == 0 {
			return
		}
		// outer ring only
		if ring := openRing(parseArrayPoints(arr[0])); len(ring) > 0 {
			prims = append(prims, scene.NewPolygon(ring, color))
		}
	}

	var walkGeom func(g map[string]any, color string)
	walkGeom = func(g map[string]any, color string) {
		coords := g["coordinates"]
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			if pt, ok := parsePoint(coords); ok {
				prims = append(prims, scene.NewPoint(pt, color))
			}
		case "MultiPoint":
			for _, pt := range parseArrayPoints(coords) {
				prims = append(prims, scene.NewPoint(pt, color))
			}
		case "LineString":
			addLine(parseArrayPoints(coords), color)
		case "MultiLineString":
			arr, _ := coords.([]any)
			for _, el := range arr {
				addLine(parseArrayPoints(el), color)
			}
		case "Polygon":
			addPoly(coords, color)
		case "MultiPolygon":
			arr, _ := coords.([]any)
			for _, el := range arr {
				addPoly(el, color)
			}
		case "GeometryCollection":
			gs, _ := g["geometries"].([]any)
			for _, sub := range gs {
				if sm, ok := sub.(map[string]any); ok {
					walkGeom(sm, color)
				}
			}
		}
	}
	walkFeature := func(f map[string]any) {
		g, ok := f["geometry"].(map[string]any)
		if !ok {
			return
		}
		walkGeom(g, featureColor(f))
	}

	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		walkFeature(raw)
	case "FeatureCollection":
		fs, _ := raw["features"].([]any)
		for _, f := range fs {
			if fm, ok := f.(map[string]any); ok {
				walkFeature(fm)
			}
		}
	case "":
		return nil, errors.New("invalid geojson: missing type")
	default:
		walkGeom(raw, "")
	}
	if len(prims) == 0 {
		return nil, errors.New("no geometries found")
	}
	return prims, nil
}

func featureColor(f map[string]any) string {
	props, _ := f["properties"].(map[string]any)
	for _, k := range []string{"cor", "color", "stroke"} {
		if s, ok := props[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
