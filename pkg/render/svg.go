package render

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

const tickLength = 6

// SVG writes the scene as an SVG document. Hidden scenes produce an empty
// canvas with only the background.
func SVG(w io.Writer, s timebrush.Scene, st Style) error {
	width, height := canvasSize(s)
	r, err := chart.SVG(width, height)
	if err != nil {
		return fmt.Errorf("svg renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	r.SetFont(font)

	fillRect(r, timebrush.Rect{Width: float64(width), Height: float64(height)}, 0, 0, parseColor(st.Background))
	if s.Visible {
		drawScene(r, s, st)
	}
	return r.Save(w)
}

func canvasSize(s timebrush.Scene) (int, int) {
	w := int(math.Ceil(s.Width))
	h := int(math.Ceil(s.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func drawScene(r chart.Renderer, s timebrush.Scene, st Style) {
	ox, oy := s.Margin.Left, s.Margin.Top

	bar := parseColor(st.Bar)
	for _, b := range s.Bars {
		if b.Height <= 0 {
			continue
		}
		fillRect(r, b.Rect, ox, oy, bar)
	}

	axis := parseColor(st.Axis)
	y := px(oy + s.Axis.Y)
	r.ResetStyle()
	r.SetStrokeColor(axis)
	r.SetStrokeWidth(1)
	r.MoveTo(px(ox), y)
	r.LineTo(px(ox+s.Axis.Width), y)
	for _, t := range s.Axis.Ticks {
		x := px(ox + t.X)
		r.MoveTo(x, y)
		r.LineTo(x, y+tickLength)
	}
	r.Stroke()

	r.ResetStyle()
	r.SetFontColor(parseColor(st.Text))
	r.SetFontSize(st.fontSize())
	for _, t := range s.Axis.Ticks {
		if t.Label == "" {
			continue
		}
		box := r.MeasureText(t.Label)
		r.Text(t.Label, px(ox+t.X)-box.Width()/2, y+tickLength+box.Height()+1)
	}

	if s.Brush.Empty {
		return
	}
	brush := parseColor(st.Brush)
	if a := st.brushAlpha(); a > 0 && !brush.IsZero() {
		fillRect(r, s.Brush.Extent, ox, oy, brush.WithAlpha(a))
	}
	for _, g := range s.Brush.Grips {
		fillRoundRect(r, g, ox, oy, st.gripColor(g.Fill))
	}
}

func px(v float64) int {
	return int(math.Round(v))
}

func fillRect(r chart.Renderer, rc timebrush.Rect, ox, oy float64, c drawing.Color) {
	if c.IsZero() || rc.Width <= 0 || rc.Height <= 0 {
		return
	}
	x0, y0 := px(ox+rc.X), px(oy+rc.Y)
	x1, y1 := px(ox+rc.X+rc.Width), px(oy+rc.Y+rc.Height)
	r.ResetStyle()
	r.SetFillColor(c)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.Close()
	r.Fill()
}

// fillRoundRect approximates the grip's rounded corners with quadratic
// curves through each corner point.
func fillRoundRect(r chart.Renderer, g timebrush.Grip, ox, oy float64, c drawing.Color) {
	if g.RX <= 0 && g.RY <= 0 {
		fillRect(r, g.Rect, ox, oy, c)
		return
	}
	if c.IsZero() || g.Width <= 0 || g.Height <= 0 {
		return
	}
	x0, y0 := px(ox+g.X), px(oy+g.Y)
	x1, y1 := px(ox+g.X+g.Width), px(oy+g.Y+g.Height)
	rx := px(math.Min(g.RX, g.Width/2))
	ry := px(math.Min(g.RY, g.Height/2))

	r.ResetStyle()
	r.SetFillColor(c)
	r.MoveTo(x0+rx, y0)
	r.LineTo(x1-rx, y0)
	r.QuadCurveTo(x1, y0, x1, y0+ry)
	r.LineTo(x1, y1-ry)
	r.QuadCurveTo(x1, y1, x1-rx, y1)
	r.LineTo(x0+rx, y1)
	r.QuadCurveTo(x0, y1, x0, y1-ry)
	r.LineTo(x0, y0+ry)
	r.QuadCurveTo(x0, y0, x0+rx, y0)
	r.Close()
	r.Fill()
}
