package sceneio

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"viewport2d/internal/geom"
	"viewport2d/internal/scene"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords `xml:"outerBoundaryIs>LinearRing"`
}

type kmlPlacemark struct {
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Document>Placemark"`
	Folders    []kmlPlacemark `xml:"Document>Folder>Placemark"`
	Top        []kmlPlacemark `xml:"Placemark"`
}

// DecodeKML reads Point, LineString and Polygon placemarks.
// KML coordinates are "x,y[,alt]"; altitude is ignored.
func DecodeKML(r io.Reader) ([]scene.Primitive, error) {
	var doc kmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	var prims []scene.Primitive
	all := append(append(doc.Top, doc.Placemarks...), doc.Folders...)
	for _, pm := range all {
		switch {
		case pm.Point != nil:
			for _, p := range kmlTuples(pm.Point.Coordinates) {
				prims = append(prims, scene.NewPoint(p, ""))
			}
		case pm.LineString != nil:
			prims = append(prims, polyline(kmlTuples(pm.LineString.Coordinates))...)
		case pm.Polygon != nil:
			if ring := openRing(kmlTuples(pm.Polygon.Outer.Coordinates)); len(ring) > 0 {
				prims = append(prims, scene.NewPolygon(ring, ""))
			}
		}
	}
	if len(prims) == 0 {
		return nil, errors.New("kml: no placemarks found")
	}
	return prims, nil
}

// coordinates may contain multiple tuples separated by spaces
func kmlTuples(s string) []geom.Vec2 {
	var out []geom.Vec2
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		x, err1 := parseCoord(vals[0])
		y, err2 := parseCoord(vals[1])
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, geom.V(x, y))
	}
	return out
}
