package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// Image rasterizes the scene at its own pixel size. Labels use a fixed 7x13
// bitmap face regardless of Style.FontSize.
func Image(s timebrush.Scene, st Style) *image.NRGBA {
	w, h := canvasSize(s)
	img := imaging.New(w, h, nrgba(parseColor(st.Background)))
	if !s.Visible {
		return img
	}
	ox, oy := s.Margin.Left, s.Margin.Top

	bar := nrgba(parseColor(st.Bar))
	for _, b := range s.Bars {
		fillPixels(img, b.Rect, ox, oy, bar)
	}

	axis := nrgba(parseColor(st.Axis))
	y := px(oy + s.Axis.Y)
	fillPixels(img, timebrush.Rect{X: 0, Y: s.Axis.Y, Width: s.Axis.Width, Height: 1}, ox, oy, axis)
	for _, t := range s.Axis.Ticks {
		fillPixels(img, timebrush.Rect{X: t.X, Y: s.Axis.Y, Width: 1, Height: tickLength}, ox, oy, axis)
	}

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(nrgba(parseColor(st.Text))), Face: face}
	for _, t := range s.Axis.Ticks {
		if t.Label == "" {
			continue
		}
		adv := d.MeasureString(t.Label).Ceil()
		d.Dot = fixed.P(px(ox+t.X)-adv/2, y+tickLength+face.Ascent+1)
		d.DrawString(t.Label)
	}

	if s.Brush.Empty {
		return img
	}
	if a := st.brushAlpha(); a > 0 {
		c := nrgba(parseColor(st.Brush))
		if c.A > 0 {
			c.A = a
			fillPixels(img, s.Brush.Extent, ox, oy, c)
		}
	}
	for _, g := range s.Brush.Grips {
		fillRoundPixels(img, g, ox, oy, nrgba(st.gripColor(g.Fill)))
	}
	return img
}

// EncodePNG rasterizes the scene and writes it as PNG.
func EncodePNG(w io.Writer, s timebrush.Scene, st Style) error {
	if err := imaging.Encode(w, Image(s, st), imaging.PNG); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG rasterizes the scene into a file. The format follows the file
// extension.
func SavePNG(path string, s timebrush.Scene, st Style) error {
	if err := imaging.Save(Image(s, st), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func pixelRect(rc timebrush.Rect, ox, oy float64) image.Rectangle {
	return image.Rect(px(ox+rc.X), px(oy+rc.Y), px(ox+rc.X+rc.Width), px(oy+rc.Y+rc.Height))
}

func fillPixels(img *image.NRGBA, rc timebrush.Rect, ox, oy float64, c color.NRGBA) {
	if c.A == 0 || rc.Width <= 0 || rc.Height <= 0 {
		return
	}
	r := pixelRect(rc, ox, oy).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	op := draw.Over
	if c.A == 255 {
		op = draw.Src
	}
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, op)
}

// fillRoundPixels fills the grip, leaving out pixels whose centers fall
// outside the corner ellipses.
func fillRoundPixels(img *image.NRGBA, g timebrush.Grip, ox, oy float64, c color.NRGBA) {
	if c.A == 0 || g.Width <= 0 || g.Height <= 0 {
		return
	}
	x0, y0 := ox+g.X, oy+g.Y
	x1, y1 := x0+g.Width, y0+g.Height
	rx := math.Min(g.RX, g.Width/2)
	ry := math.Min(g.RY, g.Height/2)
	r := pixelRect(g.Rect, ox, oy).Intersect(img.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for pxl := r.Min.X; pxl < r.Max.X; pxl++ {
			cx, cy := float64(pxl)+0.5, float64(py)+0.5
			if rx > 0 && ry > 0 {
				ex := math.Max(x0+rx-cx, cx-(x1-rx))
				ey := math.Max(y0+ry-cy, cy-(y1-ry))
				if ex > 0 && ey > 0 && (ex*ex)/(rx*rx)+(ey*ey)/(ry*ry) > 1 {
					continue
				}
			}
			img.SetNRGBA(pxl, py, c)
		}
	}
}
