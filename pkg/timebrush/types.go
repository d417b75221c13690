// Package timebrush implements a time-range brushing widget: a bar-chart
// overview of timestamped values across a time axis, with a drag-selectable
// range that is reported, debounced, together with the data items nearest
// its two edges.
//
// The widget does not draw anything itself. Every redraw produces a Scene
// that is handed to the host's Container; surfaces in pkg/render and
// pkg/components turn scenes into SVG, PNG or terminal cells.
package timebrush

import (
	"math"
	"time"
)

// EventRangeSelected is raised on the widget's notifier when a user brush
// gesture settles. Handlers receive (range []time.Time, nearest []DataItem).
const EventRangeSelected = "rangeSelected"

const (
	// DefaultWidth and DefaultHeight size the canvas when the host passes no
	// dimensions.
	DefaultWidth  = 500
	DefaultHeight = 500

	// MinDimension floors both canvas dimensions.
	MinDimension = 50

	// DefaultDebounce is the quiet period after the last brush update before
	// a selection is emitted.
	DefaultDebounce = 1000 * time.Millisecond

	// TickWidth is the canvas width budgeted per axis tick.
	TickWidth = 100

	// BarWidth is the fixed width of every bar.
	BarWidth = 2

	// GripWidth and GripHeight size the two resize handles.
	GripWidth  = 6
	GripHeight = 30
)

// DataItem is one bucketed observation.
type DataItem struct {
	Date  time.Time `json:"date" yaml:"date"`
	Value float64   `json:"value" yaml:"value"`
}

// Dimensions is the outer canvas size in canvas units.
type Dimensions struct {
	Width  float64
	Height float64
}

// DimensionsPatch is a partial dimension update; nil fields keep their
// current value.
type DimensionsPatch struct {
	Width  *float64
	Height *float64
}

// Resize returns a patch that sets both dimensions.
func Resize(width, height float64) DimensionsPatch {
	return DimensionsPatch{Width: &width, Height: &height}
}

// Width returns a patch that sets only the width.
func Width(w float64) DimensionsPatch {
	return DimensionsPatch{Width: &w}
}

// Height returns a patch that sets only the height.
func Height(h float64) DimensionsPatch {
	return DimensionsPatch{Height: &h}
}

// apply merges p into d and floors the result.
func (p DimensionsPatch) apply(d Dimensions) Dimensions {
	if p.Width != nil {
		d.Width = *p.Width
	}
	if p.Height != nil {
		d.Height = *p.Height
	}
	d.Width = floorDimension(d.Width)
	d.Height = floorDimension(d.Height)
	return d
}

func floorDimension(v float64) float64 {
	if math.IsNaN(v) || v < MinDimension {
		return MinDimension
	}
	if math.IsInf(v, 1) {
		return DefaultWidth
	}
	return v
}

// Margin is the space between the canvas edge and the plotting area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// PlotMargin is the fixed margin around the plotting area; the bottom margin
// holds the time axis.
var PlotMargin = Margin{Top: 0, Right: 10, Bottom: 20, Left: 10}

// RangeSelected is the typed payload of EventRangeSelected. Range and
// Nearest are both empty or both hold two elements.
type RangeSelected struct {
	Range   []time.Time
	Nearest []DataItem
}

// Empty reports whether the selection was cleared.
func (r RangeSelected) Empty() bool {
	return len(r.Range) == 0
}
