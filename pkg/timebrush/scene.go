package timebrush

import "time"

// Rect is an axis-aligned rectangle in plot coordinates (origin at the
// top-left of the plotting area, y growing downwards).
type Rect struct {
	X, Y, Width, Height float64
}

// Bar is the mark drawn for one data item.
type Bar struct {
	Item DataItem
	Rect
}

// Tick is one labelled mark on the time axis.
type Tick struct {
	Time  time.Time
	X     float64
	Label string
}

// Axis is the time axis drawn beneath the plot at offset Y.
type Axis struct {
	Y     float64
	Width float64
	Ticks []Tick
}

// Grip is a resize handle drawn on one edge of the brush extent.
type Grip struct {
	Rect
	RX, RY float64
	Fill   string
}

// BrushOverlay is the interaction surface: Background spans the whole plot
// and Extent covers the current selection. Extent and Grips are meaningless
// when Empty is true.
type BrushOverlay struct {
	Empty      bool
	Background Rect
	Extent     Rect
	Grips      [2]Grip
}

// Scene is everything a surface needs to draw the widget. Scenes are values;
// the widget hands out copies.
type Scene struct {
	Revision uint64
	Visible  bool
	Width    float64
	Height   float64
	Margin   Margin
	Clip     Rect
	Bars     []Bar
	Axis     Axis
	Brush    BrushOverlay
}

// InnerWidth returns the width of the plotting area.
func (s Scene) InnerWidth() float64 {
	return s.Clip.Width
}

// InnerHeight returns the height of the plotting area.
func (s Scene) InnerHeight() float64 {
	return s.Clip.Height
}

func (s Scene) clone() Scene {
	out := s
	if s.Bars != nil {
		out.Bars = make([]Bar, len(s.Bars))
		copy(out.Bars, s.Bars)
	}
	if s.Axis.Ticks != nil {
		out.Axis.Ticks = make([]Tick, len(s.Axis.Ticks))
		copy(out.Axis.Ticks, s.Axis.Ticks)
	}
	return out
}

// Container is the host element the widget is mounted in.
type Container interface {
	// SetVisible shows or hides the element.
	SetVisible(visible bool)
	// Render receives a new scene after every redraw.
	Render(scene Scene)
}

// ContainerFuncs adapts two functions to a Container. Nil fields are no-ops.
type ContainerFuncs struct {
	OnVisible func(bool)
	OnRender  func(Scene)
}

// SetVisible calls OnVisible.
func (c ContainerFuncs) SetVisible(v bool) {
	if c.OnVisible != nil {
		c.OnVisible(v)
	}
}

// Render calls OnRender.
func (c ContainerFuncs) Render(s Scene) {
	if c.OnRender != nil {
		c.OnRender(s)
	}
}
