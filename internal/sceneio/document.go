// Package sceneio reads and writes scene documents.
//
// The native format is an XML document rooted at <dados>:
//
//	<dados>
//	  <viewport><vpmin x=".." y=".."/><vpmax x=".." y=".."/></viewport>
//	  <window><wmin x=".." y=".."/><wmax x=".." y=".."/></window>
//	  <ponto x=".." y=".." cor=".."/>
//	  <reta cor=".."><ponto x=".." y=".."/><ponto x=".." y=".."/></reta>
//	  <poligono cor=".."><ponto x=".." y=".."/>...</poligono>
//	</dados>
//
// Foreign geometry files (WKT, GeoJSON, CSV, KML) can be imported too; they
// carry no window or viewport and get the defaults.
package sceneio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"viewport2d/internal/geom"
	"viewport2d/internal/scene"
)

var (
	// ErrLoad wraps every failure to read a scene.
	ErrLoad = errors.New("load failed")
	// ErrSave wraps every failure to write a scene.
	ErrSave = errors.New("save failed")
)

// Document is the content of a scene file.
type Document struct {
	Window     geom.Rect
	Viewport   geom.Rect
	Primitives []scene.Primitive
}

// NewDocument returns an empty document with the default window and viewport.
func NewDocument() Document {
	return Document{Window: geom.DefaultWindow(), Viewport: geom.DefaultViewport()}
}

// FromScene captures the parts of s that are written to disk.
func FromScene(s *scene.Scene) Document {
	return Document{Window: s.Window, Viewport: s.Viewport, Primitives: s.Primitives}
}

func loadErr(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLoad, filepath.Base(path), err)
}

// parseCoord reads one coordinate. NaN and infinities are refused: nothing
// downstream can place them on a surface.
func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("coordinate %q is not finite", s)
	}
	return v, nil
}

// Extensions lists the file extensions Import understands.
var Extensions = []string{".xml", ".wkt", ".geojson", ".json", ".csv", ".kml"}

// Supported reports whether Import can read path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Import reads any supported file, choosing the reader by extension.
func Import(path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xml" {
		return Load(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return Document{}, loadErr(path, err)
	}
	defer f.Close()

	var prims []scene.Primitive
	switch ext {
	case ".wkt":
		var data []byte
		data, err = io.ReadAll(f)
		if err == nil {
			prims, err = ParseWKT(string(data))
		}
	case ".geojson", ".json":
		prims, err = DecodeGeoJSON(f)
	case ".csv":
		prims, err = DecodeCSV(f)
	case ".kml":
		prims, err = DecodeKML(f)
	default:
		err = fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return Document{}, loadErr(path, err)
	}
	doc := NewDocument()
	doc.Primitives = prims
	return doc, nil
}
