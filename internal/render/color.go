package render

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"viewport2d/internal/scene"
)

// named covers the Tk colour names scene files commonly use.
var named = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#00ff00",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"orange":    "#ffa500",
	"purple":    "#a020f0",
	"pink":      "#ffc0cb",
	"brown":     "#a52a2a",
	"gray":      "#bebebe",
	"grey":      "#bebebe",
	"darkgray":  "#a9a9a9",
	"darkgrey":  "#a9a9a9",
	"lightgray": "#d3d3d3",
	"lightgrey": "#d3d3d3",
	"navy":      "#000080",
	"maroon":    "#b03060",
	"olive":     "#808000",
	"teal":      "#008080",
	"gold":      "#ffd700",
	"violet":    "#ee82ee",
	"darkgreen": "#006400",
	"darkblue":  "#00008b",
	"darkred":   "#8b0000",
}

// ParseColor resolves a Tk-style colour name or a #rgb / #rrggbb string.
func ParseColor(s string) (colorful.Color, bool) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if hex, ok := named[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// ResolveColor returns the colour a primitive is drawn with: its own when
// it parses, otherwise its kind's default.
func ResolveColor(p scene.Primitive) color.Color {
	if c, ok := ParseColor(p.ColorName()); ok {
		return c
	}
	c, _ := ParseColor(p.Kind().DefaultColor())
	return c
}

// Minimap colours ignore the primitive's own colour.
var (
	MinimapOutline = colorful.Color{R: 0, G: 0, B: 0}
	minimapColors  = map[scene.Kind]color.Color{
		scene.KindPoint:   colorful.Color{R: 0, G: 0, B: 0},
		scene.KindSegment: colorful.Color{R: 0, G: 0, B: 1},
		scene.KindPolygon: colorful.Color{R: 1, G: 0, B: 0},
	}
)

func hexOf(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Hex()
}
