package sceneio

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"viewport2d/internal/geom"
	"viewport2d/internal/scene"
)

// DecodeCSV reads one point per row.
// Column detection (case-insensitive): x|lon|lng|long|longitude,
// y|lat|latitude, and an optional cor|color.
func DecodeCSV(r io.Reader) ([]scene.Primitive, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idxX, idxY, idxColor := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "y", "lat", "latitude":
			if idxY == -1 {
				idxY = i
			}
		case "x", "lon", "lng", "long", "longitude":
			if idxX == -1 {
				idxX = i
			}
		case "cor", "color", "colour":
			if idxColor == -1 {
				idxColor = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return nil, errors.New("csv: x/y columns not found")
	}
	var prims []scene.Primitive
	for _, row := range recs[1:] {
		if idxX >= len(row) || idxY >= len(row) {
			continue
		}
		x, err1 := parseCoord(row[idxX])
		y, err2 := parseCoord(row[idxY])
		if err1 != nil || err2 != nil {
			continue
		}
		color := ""
		if idxColor >= 0 && idxColor < len(row) {
			color = strings.TrimSpace(row[idxColor])
		}
		prims = append(prims, scene.NewPoint(geom.V(x, y), color))
	}
	if len(prims) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	return prims, nil
}
