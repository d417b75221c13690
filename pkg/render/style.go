// Package render draws widget scenes as standalone SVG documents and raster
// images.
package render

import (
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Style holds the colors used by the image surfaces. Colors are "#rrggbb",
// "#rgb", rgb()/rgba() or a CSS color name.
type Style struct {
	Background   string
	Bar          string
	Axis         string
	Text         string
	Brush        string
	BrushOpacity float64
	// Grip overrides the fill the scene assigns to the resize grips.
	Grip     string
	FontSize float64
}

// DefaultStyle matches the "default" palette preset.
func DefaultStyle() Style {
	return Style{
		Background:   "#ffffff",
		Bar:          "#4682b4",
		Axis:         "#333333",
		Text:         "#333333",
		Brush:        "#777777",
		BrushOpacity: 0.3,
		FontSize:     8,
	}
}

func (st Style) fontSize() float64 {
	if st.FontSize <= 0 {
		return 8
	}
	return st.FontSize
}

func (st Style) brushAlpha() uint8 {
	switch {
	case st.BrushOpacity <= 0:
		return 0
	case st.BrushOpacity >= 1:
		return 255
	}
	return uint8(st.BrushOpacity*255 + 0.5)
}

// names go-chart does not know about but scenes use.
var extraNames = map[string]string{
	"lightgray": "#d3d3d3",
	"lightgrey": "#d3d3d3",
	"gray":      "#808080",
	"grey":      "#808080",
	"steelblue": "#4682b4",
}

// parseColor returns the zero color for empty or malformed input, which the
// surfaces treat as "draw nothing".
func parseColor(s string) drawing.Color {
	s = strings.TrimSpace(s)
	if hex, ok := extraNames[strings.ToLower(s)]; ok {
		s = hex
	}
	if strings.HasPrefix(s, "#") {
		if !validHex(s[1:]) {
			return drawing.Color{}
		}
		return drawing.ColorFromHex(s)
	}
	return drawing.ParseColor(s)
}

func validHex(h string) bool {
	if len(h) != 3 && len(h) != 6 {
		return false
	}
	for _, r := range h {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func nrgba(c drawing.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// gripColor picks the configured grip color, falling back to the scene's.
func (st Style) gripColor(sceneFill string) drawing.Color {
	if st.Grip != "" {
		return parseColor(st.Grip)
	}
	return parseColor(sceneFill)
}
