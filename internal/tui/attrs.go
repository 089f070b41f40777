package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"viewport2d/internal/geom"
	"viewport2d/internal/scene"
)

// refreshObjects rebuilds the object table from the current scene.
func (m *Model) refreshObjects() {
	cols, rows := buildObjects(m.sess.Scene())
	if len(rows) == 0 {
		// SetColumns on an empty table re-renders with stale rows
		m.showTable = false
		m.setStatus("no objects in current scene")
		return
	}
	tcols := make([]table.Column, 0, len(cols))
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c.title, Width: c.width})
	}
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		trows = append(trows, table.Row(r))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

type column struct {
	title string
	width int
}

// buildObjects lists one row per primitive in scene order.
func buildObjects(s *scene.Scene) ([]column, [][]string) {
	cols := []column{
		{"#", 4},
		{"kind", 8},
		{"colour", 10},
		{"vertices", 8},
		{"first", 20},
		{"visible", 7},
	}
	rows := make([][]string, 0, len(s.Primitives))
	for i, p := range s.Primitives {
		coords := p.Coords()
		first := ""
		if len(coords) > 0 {
			first = formatVec(coords[0])
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Kind().String(),
			p.ColorName(),
			strconv.Itoa(len(coords)),
			first,
			strconv.FormatBool(p.IsVisible()),
		})
	}
	return cols, rows
}

func formatVec(v geom.Vec2) string {
	return fmt.Sprintf("(%s, %s)", formatNumber(v.X), formatNumber(v.Y))
}

func formatNumber(v float64) string { return strconv.FormatFloat(v, 'g', 6, 64) }
