package components

import (
	"math"
	"strings"

	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// Block characters: 8 vertical levels per cell.
var blocks = [8]rune{
	'▁', // 1/8 ▁
	'▂', // 2/8 ▂
	'▃', // 3/8 ▃
	'▄', // 4/8 ▄
	'▅', // 5/8 ▅
	'▆', // 6/8 ▆
	'▇', // 7/8 ▇
	'█', // 8/8 █
}

const (
	shadeRune = '░' // ░ empty cells under the brush
	gripRune  = '┃' // ┃
)

// SceneStyle holds the colors used to draw a scene in the terminal.
type SceneStyle struct {
	Palette Palette
	Bar     string
	Brush   string
	Grip    string
	Axis    string
}

// DefaultSceneStyle returns the colors used when none are configured.
func DefaultSceneStyle() SceneStyle {
	return SceneStyle{
		Bar:   "#4682b4",
		Brush: "#777777",
		Grip:  "#d3d3d3",
		Axis:  "#888888",
	}
}

// RenderScene draws a widget scene into cols x rows terminal cells. Bars are
// drawn with eighth-block precision; empty cells under the brush extent are
// shaded and the two grips are marked on the middle row. The last row holds
// the axis labels. Lines carry no trailing whitespace.
func RenderScene(s timebrush.Scene, cols, rows int, st SceneStyle) string {
	if cols < 10 || rows < 2 {
		return tooSmallMsg(cols)
	}
	if !s.Visible || s.Width <= 0 {
		return placeholder("no data", cols, rows)
	}

	chartRows := rows - 1
	levels := make([]int, cols)
	innerH := s.InnerHeight()
	if innerH > 0 {
		maxLevel := chartRows * 8
		for _, b := range s.Bars {
			c := CellAt(s, b.X, cols)
			lvl := int(math.Round(b.Height / innerH * float64(maxLevel)))
			if lvl > maxLevel {
				lvl = maxLevel
			}
			if lvl > levels[c] {
				levels[c] = lvl
			}
		}
	}

	brushFrom, brushTo := -1, -2
	if !s.Brush.Empty {
		brushFrom = CellAt(s, s.Brush.Extent.X, cols)
		brushTo = CellAt(s, s.Brush.Extent.X+s.Brush.Extent.Width, cols)
	}
	gripRow := chartRows / 2

	p := st.Palette
	reset := p.Reset()
	lines := make([]string, 0, rows)
	for r := 0; r < chartRows; r++ {
		fromBottom := chartRows - 1 - r
		var sb strings.Builder
		for c := 0; c < cols; c++ {
			inBrush := c >= brushFrom && c <= brushTo
			switch {
			case inBrush && r == gripRow && (c == brushFrom || c == brushTo):
				sb.WriteString(p.Fg(st.Grip))
				sb.WriteRune(gripRune)
				sb.WriteString(reset)
			case levels[c] > fromBottom*8:
				lvl := levels[c] - fromBottom*8
				if lvl > 8 {
					lvl = 8
				}
				sb.WriteString(p.Fg(st.Bar))
				sb.WriteRune(blocks[lvl-1])
				sb.WriteString(reset)
			case inBrush:
				sb.WriteString(p.Fg(st.Brush))
				sb.WriteRune(shadeRune)
				sb.WriteString(reset)
			default:
				sb.WriteByte(' ')
			}
		}
		lines = append(lines, trimRight(sb.String()))
	}

	lines = append(lines, renderAxis(s, cols, p, st.Axis))
	return strings.Join(lines, "\n")
}

// CellAt returns the column that shows plot coordinate x.
func CellAt(s timebrush.Scene, x float64, cols int) int {
	if s.Width <= 0 || cols <= 0 {
		return 0
	}
	c := int((s.Margin.Left + x) / s.Width * float64(cols))
	if c < 0 {
		return 0
	}
	if c >= cols {
		return cols - 1
	}
	return c
}

// PlotX returns the plot coordinate at the center of column col, the
// inverse of CellAt.
func PlotX(s timebrush.Scene, col, cols int) float64 {
	if cols <= 0 {
		return 0
	}
	return (float64(col)+0.5)*s.Width/float64(cols) - s.Margin.Left
}

// renderAxis places tick labels centered on their columns, dropping labels
// that would overlap the previous one.
func renderAxis(s timebrush.Scene, cols int, p Palette, color string) string {
	line := []rune(strings.Repeat(" ", cols))
	next := 0
	for _, tick := range s.Axis.Ticks {
		label := []rune(tick.Label)
		if len(label) == 0 || len(label) > cols {
			continue
		}
		start := CellAt(s, tick.X, cols) - len(label)/2
		if start < 0 {
			start = 0
		}
		if start+len(label) > cols {
			start = cols - len(label)
		}
		if start < next {
			continue
		}
		copy(line[start:], label)
		next = start + len(label) + 1
	}
	text := trimRight(string(line))
	if text == "" {
		return ""
	}
	return p.Fg(color) + text + p.Reset()
}

// placeholder centers msg on the middle row of a cols x rows area.
func placeholder(msg string, cols, rows int) string {
	lines := make([]string, rows)
	lines[rows/2] = trimRight(PadCenter(Truncate(msg, cols), cols))
	return strings.Join(lines, "\n")
}

// tooSmallMsg returns a "too small" message for tiny viewports.
func tooSmallMsg(width int) string {
	msg := "too small"
	if width < 0 {
		width = 0
	}
	if width < len(msg) {
		return msg[:width]
	}
	return msg
}

// trimRight removes trailing whitespace from a string.
func trimRight(s string) string {
	return strings.TrimRight(s, " \t")
}
