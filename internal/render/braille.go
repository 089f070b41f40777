package render

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"viewport2d/internal/geom"
)

// BrailleSurface rasterises onto terminal cells, each holding a 2x4 grid of
// braille dots. Drawing coordinates are in the logical viewport space, which
// is stretched over the whole cell grid.
type BrailleSurface struct {
	w, h    int       // in cells
	m       [][]uint8 // per-cell 8-bit mask
	col     [][]string
	logical geom.Rect
	bg      string
	styles  map[string]lipgloss.Style
}

func NewBrailleSurface(w, h int, logical geom.Rect) *BrailleSurface {
	b := &BrailleSurface{logical: logical, styles: map[string]lipgloss.Style{}}
	b.Resize(w, h)
	return b
}

// Resize changes the cell grid and clears it.
func (b *BrailleSurface) Resize(w, h int) {
	b.w, b.h = max(w, 1), max(h, 1)
	b.m = make([][]uint8, b.h)
	b.col = make([][]string, b.h)
	for i := range b.m {
		b.m[i] = make([]uint8, b.w)
		b.col[i] = make([]string, b.w)
	}
}

// SetLogical changes the coordinate space drawing calls are given in.
func (b *BrailleSurface) SetLogical(r geom.Rect) { b.logical = r }

func (b *BrailleSurface) Size() (w, h int) { return b.w, b.h }

// SetBackground paints every cell of View on c. A nil colour leaves the
// terminal background.
func (b *BrailleSurface) SetBackground(c color.Color) {
	b.bg = ""
	if c != nil {
		b.bg = hexOf(c)
	}
	clear(b.styles)
}

// Logical returns the logical point at the centre of cell (cx, cy).
func (b *BrailleSurface) Logical(cx, cy int) geom.Vec2 {
	return geom.Vec2{
		X: b.logical.MinX + (float64(cx)+0.5)/float64(b.w)*b.logical.Width(),
		Y: b.logical.MinY + (float64(cy)+0.5)/float64(b.h)*b.logical.Height(),
	}
}

func (b *BrailleSurface) Clear() {
	for y := range b.m {
		clear(b.m[y])
		clear(b.col[y])
	}
}

// micro converts a logical point to micro-pixel coordinates.
func (b *BrailleSurface) micro(p geom.Vec2) (float64, float64) {
	lw, lh := b.logical.Width(), b.logical.Height()
	if lw == 0 || lh == 0 {
		return 0, 0
	}
	mx := (p.X - b.logical.MinX) / lw * float64(b.w*2-1)
	my := (p.Y - b.logical.MinY) / lh * float64(b.h*4-1)
	return mx, my
}

func (b *BrailleSurface) scale() float64 {
	lw := math.Abs(b.logical.Width())
	if lw == 0 {
		return 0
	}
	return float64(b.w*2) / lw
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *BrailleSurface) setPixel(mx, my int, hex string) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.col[cy][cx] = hex
}

// drawLineMicro draws a line on the microgrid using Bresenham. dash > 0
// leaves gaps: one dot on, dash dots off.
func (b *BrailleSurface) drawLineMicro(x0, y0, x1, y1 float64, hex string, dash int) {
	// keep only the part crossing the grid; a deep zoom can put endpoints
	// millions of micro-pixels away
	var ok bool
	x0, y0, x1, y1, ok = clipSegment(x0, y0, x1, y1, -1, -1, float64(b.w*2), float64(b.h*4))
	if !ok {
		return
	}
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))
	dx := abs(ix1 - ix0)
	sx := -1
	if ix0 < ix1 {
		sx = 1
	}
	dy := -abs(iy1 - iy0)
	sy := -1
	if iy0 < iy1 {
		sy = 1
	}
	err := dx + dy
	for step := 0; ; step++ {
		if dash == 0 || step%(dash+1) == 0 {
			b.setPixel(ix0, iy0, hex)
		}
		if ix0 == ix1 && iy0 == iy1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

func (b *BrailleSurface) Dot(at geom.Vec2, radius float64, c color.Color) {
	if !finite(at) {
		return
	}
	hex := hexOf(c)
	mx, my := b.micro(at)
	r := radius * b.scale()
	if r < 1 {
		b.setPixel(int(math.Round(mx)), int(math.Round(my)), hex)
		return
	}
	for y := math.Floor(my - r); y <= my+r; y++ {
		for x := math.Floor(mx - r); x <= mx+r; x++ {
			if (x-mx)*(x-mx)+(y-my)*(y-my) <= r*r {
				b.setPixel(int(x), int(y), hex)
			}
		}
	}
}

func (b *BrailleSurface) Line(p, q geom.Vec2, c color.Color) {
	x0, y0 := b.micro(p)
	x1, y1 := b.micro(q)
	b.drawLineMicro(x0, y0, x1, y1, hexOf(c), 0)
}

func (b *BrailleSurface) Polygon(pts []geom.Vec2, c color.Color) {
	b.ring(pts, hexOf(c), 0)
}

func (b *BrailleSurface) DashedPolygon(pts []geom.Vec2, c color.Color) {
	b.ring(pts, hexOf(c), 2)
}

func (b *BrailleSurface) ring(pts []geom.Vec2, hex string, dash int) {
	if len(pts) == 1 {
		if !finite(pts[0]) {
			return
		}
		mx, my := b.micro(pts[0])
		b.setPixel(int(math.Round(mx)), int(math.Round(my)), hex)
		return
	}
	for i := range pts {
		x0, y0 := b.micro(pts[i])
		x1, y1 := b.micro(pts[(i+1)%len(pts)])
		b.drawLineMicro(x0, y0, x1, y1, hex, dash)
	}
}

// Lines returns the grid as plain braille text, one string per row.
func (b *BrailleSurface) Lines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			row[x] = glyph(b.m[y][x])
		}
		out[y] = string(row)
	}
	return out
}

// View renders the grid with each cell in the colour last drawn into it.
func (b *BrailleSurface) View() string {
	var sb strings.Builder
	for y := 0; y < b.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.w; x++ {
			g := string(glyph(b.m[y][x]))
			hex := b.col[y][x]
			if hex == "" && b.bg == "" {
				sb.WriteString(g)
				continue
			}
			sb.WriteString(b.style(hex).Render(g))
		}
	}
	return sb.String()
}

func (b *BrailleSurface) style(hex string) lipgloss.Style {
	st, ok := b.styles[hex]
	if ok {
		return st
	}
	st = lipgloss.NewStyle()
	if hex != "" {
		st = st.Foreground(lipgloss.Color(hex))
	}
	if b.bg != "" {
		st = st.Background(lipgloss.Color(b.bg))
	}
	b.styles[hex] = st
	return st
}

func glyph(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}

func finite(p geom.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// clipSegment trims a segment to the box [minX,maxX]x[minY,maxY]
// (Liang-Barsky). ok is false when nothing of it is inside or an endpoint
// is not finite.
func clipSegment(x0, y0, x1, y1, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{
		{-dx, x0 - minX},
		{dx, maxX - x0},
		{-dy, y0 - minY},
		{dy, maxY - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
