package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"viewport2d/internal/geom"
	"viewport2d/internal/scene"
)

// MaxImageSide bounds the longer side of an ImageSurface in pixels.
const MaxImageSide = 4096

// ImageSurface draws into an in-memory RGBA image. Logical coordinates map
// onto pixels offset by the logical minimum, one-to-one unless the logical
// extent is longer than MaxImageSide, in which case the whole surface is
// scaled down to fit.
type ImageSurface struct {
	dc      *gg.Context
	logical geom.Rect
	scale   float64
	bg      color.Color
}

func NewImageSurface(logical geom.Rect, bg color.Color) *ImageSurface {
	scale := 1.0
	if side := max(logical.Width(), logical.Height()); side > MaxImageSide {
		scale = MaxImageSide / side
	}
	w := min(MaxImageSide, max(1, int(logical.Width()*scale+0.5)))
	h := min(MaxImageSide, max(1, int(logical.Height()*scale+0.5)))
	s := &ImageSurface{dc: gg.NewContext(w, h), logical: logical, scale: scale, bg: bg}
	s.Clear()
	return s
}

func (s *ImageSurface) Image() image.Image { return s.dc.Image() }

func (s *ImageSurface) px(p geom.Vec2) (float64, float64) {
	return (p.X - s.logical.MinX) * s.scale, (p.Y - s.logical.MinY) * s.scale
}

func (s *ImageSurface) Clear() {
	s.dc.SetColor(s.bg)
	s.dc.Clear()
}

func (s *ImageSurface) Dot(at geom.Vec2, radius float64, c color.Color) {
	x, y := s.px(at)
	s.dc.SetColor(c)
	s.dc.DrawCircle(x, y, radius)
	s.dc.Fill()
}

func (s *ImageSurface) Line(a, b geom.Vec2, c color.Color) {
	x0, y0 := s.px(a)
	x1, y1 := s.px(b)
	s.dc.SetDash()
	s.dc.SetLineWidth(1)
	s.dc.SetColor(c)
	s.dc.DrawLine(x0, y0, x1, y1)
	s.dc.Stroke()
}

func (s *ImageSurface) path(pts []geom.Vec2) {
	s.dc.NewSubPath()
	for i, p := range pts {
		x, y := s.px(p)
		if i == 0 {
			s.dc.MoveTo(x, y)
		} else {
			s.dc.LineTo(x, y)
		}
	}
	s.dc.ClosePath()
}

func (s *ImageSurface) Polygon(pts []geom.Vec2, c color.Color) {
	s.dc.SetDash()
	s.dc.SetLineWidth(2)
	s.dc.SetColor(c)
	s.path(pts)
	s.dc.Stroke()
}

func (s *ImageSurface) DashedPolygon(pts []geom.Vec2, c color.Color) {
	s.dc.SetDash(1, 2)
	s.dc.SetLineWidth(1)
	s.dc.SetColor(c)
	s.path(pts)
	s.dc.Stroke()
	s.dc.SetDash()
}

var (
	exportBackground  = color.White
	minimapBackground = color.RGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}
)

const (
	exportMargin  = 10
	captionHeight = 24
)

// Snapshot renders the main view and the minimap side by side, the way the
// interactive display lays them out, with the window corners as a caption.
func (c *Coordinator) Snapshot(s *scene.Scene, w geom.Window) (image.Image, error) {
	view := NewImageSurface(s.Viewport, exportBackground)
	c.RenderMain(s, w, view)
	mini := NewImageSurface(geom.MinimapViewport(), minimapBackground)
	c.RenderMinimap(s, w, mini)

	mw, mh := view.dc.Width(), view.dc.Height()
	nw, nh := mini.dc.Width(), mini.dc.Height()
	dc := gg.NewContext(mw+nw+3*exportMargin, max(mh, nh)+2*exportMargin+captionHeight)
	dc.SetColor(color.RGBA{R: 0xa9, G: 0xa9, B: 0xa9, A: 0xff})
	dc.Clear()
	dc.DrawImage(view.Image(), exportMargin, exportMargin)
	dc.DrawImage(mini.Image(), mw+2*exportMargin, exportMargin)

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	r := w.Corners()
	caption := fmt.Sprintf("window (%.3f, %.3f) - (%.3f, %.3f)   objects: %d", r.MinX, r.MinY, r.MaxX, r.MaxY, len(s.Primitives))
	dc.SetColor(color.Black)
	dc.DrawString(caption, exportMargin, float64(max(mh, nh)+2*exportMargin+captionHeight/2))
	return dc.Image(), nil
}

// ExportPNG writes Snapshot to path.
func (c *Coordinator) ExportPNG(path string, s *scene.Scene, w geom.Window) error {
	img, err := c.Snapshot(s, w)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
