package tui

import "viewport2d/internal/geom"

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2

	// 150x120 minimap at 2x4 dots per cell
	minimapCols = 30
	minimapRows = 12
	// border and horizontal padding of boxStyle
	boxExtraW = 4
	boxExtraH = 2
)

// layout is the screen geometry of one frame. Update computes it so that
// mouse handling and View agree on where the main view sits.
type layout struct {
	contentW, contentH int
	sidebarW           int
	panelW             int
	// main view origin and size in cells
	mainX, mainY int
	mainW, mainH int
}

func computeLayout(width, height int, sidebar bool, viewport geom.Rect) layout {
	var lay layout
	lay.contentW = max(10, width)
	lay.contentH = max(4, height-headerHeight-footerHeight)
	if sidebar {
		lay.sidebarW = sidebarWidth
		lay.mainX = sidebarWidth + 1
	}
	lay.panelW = minimapCols + boxExtraW
	lay.mainY = headerHeight
	aw := lay.contentW - lay.mainX - lay.panelW - 1
	lay.mainW, lay.mainH = fitCells(max(aw, 8), lay.contentH, viewport)
	return lay
}

// fitCells returns the largest cell grid inside aw x ah whose 2x4 dot raster
// has the viewport's aspect ratio.
func fitCells(aw, ah int, viewport geom.Rect) (int, int) {
	vw, vh := viewport.Width(), viewport.Height()
	if vw <= 0 || vh <= 0 {
		return aw, ah
	}
	// cells are twice as tall as wide: w*2 / (h*4) = vw / vh
	h := ah
	w := int(2 * float64(h) * vw / vh)
	if w > aw {
		w = aw
		h = int(float64(w) * vh / (2 * vw))
	}
	return max(w, 1), max(h, 1)
}

// cellAt reports the main-view cell under screen position (x, y).
func (l layout) cellAt(x, y int) (int, int, bool) {
	cx, cy := x-l.mainX, y-l.mainY
	if cx < 0 || cy < 0 || cx >= l.mainW || cy >= l.mainH {
		return 0, 0, false
	}
	return cx, cy, true
}
