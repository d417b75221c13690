package timebrush

import (
	"math"
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/scale"
)

// gripReach is how close (in pixels) a press must land to an extent edge to
// grab it for resizing.
const gripReach = GripWidth / 2

type dragMode int

const (
	dragNone dragMode = iota
	dragNew
	dragResizeWest
	dragResizeEast
	dragMove
)

// Brush holds the selection extent in domain units so it survives rescaling,
// and the state of an in-progress drag gesture in pixel units.
type Brush struct {
	x          *scale.Time
	start, end time.Time
	set        bool

	mode   dragMode
	anchor float64
	origin float64
	ox0    float64
	ox1    float64
}

func newBrush(x *scale.Time) *Brush {
	return &Brush{x: x}
}

// attach re-homes the brush onto a (possibly rescaled) x-scale.
func (b *Brush) attach(x *scale.Time) {
	b.x = x
}

// Empty reports whether the extent is cleared or has zero width.
func (b *Brush) Empty() bool {
	return !b.set || !b.start.Before(b.end)
}

// Extent returns the current extent. It is the zero pair when cleared.
func (b *Brush) Extent() (time.Time, time.Time) {
	return b.start, b.end
}

// SetExtent sets the extent, ordering the endpoints.
func (b *Brush) SetExtent(a, c time.Time) {
	if c.Before(a) {
		a, c = c, a
	}
	b.start, b.end, b.set = a, c, true
}

// Clear removes the extent and aborts any drag.
func (b *Brush) Clear() {
	b.start, b.end, b.set = time.Time{}, time.Time{}, false
	b.mode = dragNone
}

// Dragging reports whether a gesture is in progress.
func (b *Brush) Dragging() bool {
	return b.mode != dragNone
}

// pixels returns the extent in plot pixels.
func (b *Brush) pixels() (float64, float64) {
	return sanitize(b.x.Map(b.start)), sanitize(b.x.Map(b.end))
}

// press starts a gesture at px within a plot of the given width and reports
// whether the extent changed.
func (b *Brush) press(px, width float64) bool {
	px = clamp(px, 0, width)
	if !b.Empty() {
		x0, x1 := b.pixels()
		switch {
		case math.Abs(px-x0) <= gripReach:
			b.mode, b.anchor = dragResizeWest, x1
			return b.setPixels(b.anchor, px)
		case math.Abs(px-x1) <= gripReach:
			b.mode, b.anchor = dragResizeEast, x0
			return b.setPixels(b.anchor, px)
		case px > x0 && px < x1:
			b.mode = dragMove
			b.origin, b.ox0, b.ox1 = px, x0, x1
			return false
		}
	}
	b.mode, b.anchor = dragNew, px
	return b.setPixels(px, px)
}

// drag continues the gesture at px and reports whether the extent changed.
func (b *Brush) drag(px, width float64) bool {
	px = clamp(px, 0, width)
	switch b.mode {
	case dragNew, dragResizeWest, dragResizeEast:
		return b.setPixels(b.anchor, px)
	case dragMove:
		dx := px - b.origin
		// Keep the whole extent inside the plot.
		dx = clamp(dx, -b.ox0, width-b.ox1)
		return b.setPixels(b.ox0+dx, b.ox1+dx)
	}
	return false
}

// release ends the gesture.
func (b *Brush) release() {
	b.mode = dragNone
}

// shift moves a non-empty extent by dx pixels, keeping it inside the plot.
func (b *Brush) shift(dx, width float64) bool {
	if b.Empty() {
		return false
	}
	x0, x1 := b.pixels()
	dx = clamp(dx, -x0, width-x1)
	return b.setPixels(x0+dx, x1+dx)
}

// stretch moves the east edge of a non-empty extent by dx pixels.
func (b *Brush) stretch(dx, width float64) bool {
	if b.Empty() {
		return false
	}
	x0, x1 := b.pixels()
	return b.setPixels(x0, clamp(x1+dx, 0, width))
}

func (b *Brush) setPixels(p0, p1 float64) bool {
	if p1 < p0 {
		p0, p1 = p1, p0
	}
	start, end := b.x.Invert(p0), b.x.Invert(p1)
	changed := !b.set || !start.Equal(b.start) || !end.Equal(b.end)
	b.start, b.end, b.set = start, end, true
	return changed
}

// overlay lays out the interaction surface for a plot of the given size.
func (b *Brush) overlay(width, height float64) BrushOverlay {
	o := BrushOverlay{
		Empty:      b.Empty(),
		Background: Rect{X: 0, Y: -6, Width: width, Height: height + 7},
	}
	if o.Empty {
		return o
	}
	x0, x1 := b.pixels()
	o.Extent = Rect{X: x0, Y: -6, Width: x1 - x0, Height: height + 7}
	gripY := height/2 - GripHeight/2
	for i, edge := range [2]float64{x0, x1} {
		o.Grips[i] = Grip{
			Rect: Rect{X: edge - GripWidth/2, Y: gripY, Width: GripWidth, Height: GripHeight},
			RX:   2,
			RY:   2,
			Fill: "lightgray",
		}
	}
	return o
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// sanitize maps non-finite positions to 0.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
