package timebrush

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/debounce"
	"gitlab.com/tinyland/lab/timebrush/pkg/events"
	"gitlab.com/tinyland/lab/timebrush/pkg/scale"
)

// Option configures a TimeBrush.
type Option func(*options)

type options struct {
	debounce time.Duration
	clock    debounce.Clock
	logger   *slog.Logger
	loc      *time.Location
}

// WithDebounce overrides the quiet period before a brush gesture is emitted.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithClock sets the clock that schedules the debounced emission.
func WithClock(c debounce.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithLogger sets the logger. The default discards all records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithLocation sets the location used for axis ticks and labels.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

// TimeBrush is the brushing widget. All methods are safe for concurrent use;
// container callbacks and event handlers run without internal locks held, so
// they may call back into the widget.
type TimeBrush struct {
	mu sync.Mutex

	container Container
	notifier  *events.Notifier
	debouncer *debounce.Debouncer
	logger    *slog.Logger

	dims     Dimensions
	x        *scale.Time
	y        *scale.Linear
	brush    *Brush
	data     []DataItem
	selected []time.Time
	visible  bool
	scene    Scene
	closed   bool

	// epoch invalidates emissions scheduled before the last SetData or
	// SetSelectedRange.
	epoch uint64
}

// New mounts a widget in container. A nil dims lays the widget out at
// DefaultWidth x DefaultHeight. The container is hidden until non-empty
// data arrives.
func New(container Container, dims *Dimensions, opts ...Option) *TimeBrush {
	o := options{debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if container == nil {
		container = ContainerFuncs{}
	}

	x := scale.NewTime(o.loc)
	tb := &TimeBrush{
		container: container,
		notifier:  events.New(),
		debouncer: debounce.New(o.debounce, o.clock),
		logger:    o.logger,
		dims:      Dimensions{Width: DefaultWidth, Height: DefaultHeight},
		x:         x,
		y:         scale.NewLinear(),
		brush:     newBrush(x),
	}
	tb.y.SetDomain(0, 0)

	container.SetVisible(false)

	patch := DimensionsPatch{}
	if dims != nil {
		patch = Resize(dims.Width, dims.Height)
	}
	tb.SetDimensions(patch)
	return tb
}

// Events returns the notifier on which EventRangeSelected is raised.
func (tb *TimeBrush) Events() *events.Notifier {
	return tb.notifier
}

// OnRangeSelected subscribes fn to EventRangeSelected with a typed payload.
func (tb *TimeBrush) OnRangeSelected(fn func(RangeSelected)) *events.Subscription {
	return tb.notifier.On(EventRangeSelected, func(args ...any) {
		var ev RangeSelected
		if len(args) > 0 {
			ev.Range, _ = args[0].([]time.Time)
		}
		if len(args) > 1 {
			ev.Nearest, _ = args[1].([]DataItem)
		}
		fn(ev)
	})
}

// SetData replaces the dataset. It clears the selection and any pending
// brush emission, shows the widget only when items is non-empty, rebuilds
// both domains and redraws.
func (tb *TimeBrush) SetData(items []DataItem) {
	tb.mu.Lock()
	if tb.closed {
		tb.mu.Unlock()
		return
	}

	tb.data = make([]DataItem, len(items))
	copy(tb.data, items)

	tb.selected = nil
	tb.epoch++
	tb.debouncer.Cancel()
	tb.brush.Clear()

	tb.visible = len(tb.data) > 0

	if minDate, maxDate, maxValue, ok := extents(tb.data); ok {
		tb.x.SetDomain(minDate, maxDate)
		tb.y.SetDomain(0, maxValue)
	} else {
		tb.x.ClearDomain()
		tb.y.SetDomain(0, 0)
	}

	tb.redrawLocked()
	scene, visible := tb.scene.clone(), tb.visible
	n := len(tb.data)
	tb.mu.Unlock()

	tb.logger.Debug("timebrush data replaced", "items", n, "visible", visible)
	tb.container.SetVisible(visible)
	tb.container.Render(scene)
}

// SetDimensions merges patch into the current dimensions, floors both at
// MinDimension and redraws. A committed selection is re-applied to the
// resized brush.
func (tb *TimeBrush) SetDimensions(patch DimensionsPatch) {
	tb.mu.Lock()
	if tb.closed {
		tb.mu.Unlock()
		return
	}

	tb.dims = patch.apply(tb.dims)
	if len(tb.selected) == 2 {
		tb.brush.SetExtent(tb.selected[0], tb.selected[1])
	}
	tb.redrawLocked()
	scene := tb.scene.clone()
	tb.mu.Unlock()

	tb.container.Render(scene)
}

// SetSelectedRange imposes a selection from the host. Nothing happens unless
// the range differs from the current one. A two-element range moves the
// brush there; nil or any other length clears it. It never raises
// EventRangeSelected.
func (tb *TimeBrush) SetSelectedRange(r []time.Time) {
	tb.mu.Lock()
	if tb.closed {
		tb.mu.Unlock()
		return
	}

	next := normalizeRange(r)
	if !rangeChanged(next, tb.selected) {
		tb.mu.Unlock()
		return
	}

	tb.selected = next
	// A pending gesture emission would otherwise report the imposed range.
	tb.epoch++
	tb.debouncer.Cancel()
	if len(next) == 2 {
		tb.brush.SetExtent(next[0], next[1])
	} else {
		tb.brush.Clear()
	}
	tb.redrawBrushLocked()
	scene := tb.scene.clone()
	tb.mu.Unlock()

	tb.container.Render(scene)
}

// BeginBrush starts a brush gesture at px, measured from the left edge of
// the plotting area. Pressing outside the extent starts a new one, pressing
// on an edge resizes it and pressing inside moves it.
func (tb *TimeBrush) BeginBrush(px float64) {
	tb.gesture(func(width float64) bool { return tb.brush.press(px, width) })
}

// DragBrush continues the gesture started by BeginBrush.
func (tb *TimeBrush) DragBrush(px float64) {
	tb.gesture(func(width float64) bool { return tb.brush.drag(px, width) })
}

// EndBrush finishes the current gesture.
func (tb *TimeBrush) EndBrush() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.brush.release()
}

// ShiftBrush moves the current extent by dx pixels.
func (tb *TimeBrush) ShiftBrush(dx float64) {
	tb.gesture(func(width float64) bool { return tb.brush.shift(dx, width) })
}

// StretchBrush moves the right edge of the current extent by dx pixels.
func (tb *TimeBrush) StretchBrush(dx float64) {
	tb.gesture(func(width float64) bool { return tb.brush.stretch(dx, width) })
}

// ClearBrush clears the extent as a user gesture; unlike SetSelectedRange it
// results in an (empty) emission.
func (tb *TimeBrush) ClearBrush() {
	tb.gesture(func(float64) bool {
		if !tb.brush.set {
			return false
		}
		tb.brush.Clear()
		return true
	})
}

// gesture applies a user brush update. Gestures are ignored while the widget
// is hidden. A changed extent redraws the overlay and reschedules emission.
func (tb *TimeBrush) gesture(apply func(width float64) bool) {
	tb.mu.Lock()
	if tb.closed || !tb.visible {
		tb.mu.Unlock()
		return
	}
	if !apply(tb.scene.InnerWidth()) {
		tb.mu.Unlock()
		return
	}
	tb.redrawBrushLocked()
	scene := tb.scene.clone()
	epoch := tb.epoch
	tb.debouncer.Trigger(func() { tb.settle(epoch) })
	tb.mu.Unlock()

	tb.container.Render(scene)
}

// settle runs once the brush has been quiet for the debounce period. It
// commits the live extent as the selection and emits it with the items
// nearest to each edge.
func (tb *TimeBrush) settle(epoch uint64) {
	tb.mu.Lock()
	if tb.closed || epoch != tb.epoch {
		tb.mu.Unlock()
		return
	}

	dateRange := []time.Time{}
	nearest := []DataItem{}
	if !tb.brush.Empty() {
		start, end := tb.brush.Extent()
		dateRange = []time.Time{start, end}
		if lo, hi, ok := Nearest(tb.data, start, end); ok {
			nearest = []DataItem{lo, hi}
		}
	}
	tb.selected = normalizeRange(dateRange)
	tb.mu.Unlock()

	tb.logger.Debug("timebrush range selected", "range", dateRange, "nearest", len(nearest))
	tb.notifier.RaiseEvent(EventRangeSelected, dateRange, nearest)
}

// Close tears the widget down: the pending emission is dropped and later
// calls are ignored.
func (tb *TimeBrush) Close() error {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if tb.closed {
		return nil
	}
	tb.closed = true
	tb.debouncer.Stop()
	return nil
}

// Data returns a copy of the current dataset.
func (tb *TimeBrush) Data() []DataItem {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	out := make([]DataItem, len(tb.data))
	copy(out, tb.data)
	return out
}

// Dimensions returns the effective canvas size.
func (tb *TimeBrush) Dimensions() Dimensions {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.dims
}

// SelectedRange returns a copy of the committed selection; nil when unset.
func (tb *TimeBrush) SelectedRange() []time.Time {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return normalizeRange(tb.selected)
}

// BrushExtent returns the live brush extent and whether it is non-empty.
func (tb *TimeBrush) BrushExtent() (time.Time, time.Time, bool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	start, end := tb.brush.Extent()
	return start, end, !tb.brush.Empty()
}

// Dragging reports whether a brush gesture is in progress.
func (tb *TimeBrush) Dragging() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.brush.Dragging()
}

// XDomain returns the time domain and whether it is set.
func (tb *TimeBrush) XDomain() (time.Time, time.Time, bool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.x.Domain()
}

// YDomain returns the value domain.
func (tb *TimeBrush) YDomain() (float64, float64) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.y.Domain()
}

// Visible reports whether the widget is shown.
func (tb *TimeBrush) Visible() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.visible
}

// Scene returns a copy of the most recent scene.
func (tb *TimeBrush) Scene() Scene {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.scene.clone()
}

// PixelAt maps a timestamp to its x position in the plotting area.
func (tb *TimeBrush) PixelAt(t time.Time) float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return sanitize(tb.x.Map(t))
}

// redrawLocked rebuilds the whole scene from the current dimensions, scales
// and data.
func (tb *TimeBrush) redrawLocked() {
	m := PlotMargin
	width := tb.dims.Width - m.Left - m.Right
	height := tb.dims.Height - m.Top - m.Bottom

	tb.x.SetRange(0, width)
	tb.y.SetRange(height, 0)

	bars := make([]Bar, 0, len(tb.data))
	for _, d := range tb.data {
		barHeight := sanitize(tb.y.Map(0) - tb.y.Map(d.Value))
		bars = append(bars, Bar{
			Item: d,
			Rect: Rect{
				X:      sanitize(tb.x.Map(d.Date)),
				Y:      height - barHeight,
				Width:  BarWidth,
				Height: math.Max(0, barHeight),
			},
		})
	}

	var ticks []Tick
	for _, t := range tb.x.Ticks(tb.dims.Width / TickWidth) {
		ticks = append(ticks, Tick{Time: t, X: sanitize(tb.x.Map(t)), Label: tb.x.Format(t)})
	}

	tb.scene = Scene{
		Revision: tb.scene.Revision,
		Visible:  tb.visible,
		Width:    width + m.Left + m.Right,
		Height:   height + m.Top + m.Bottom,
		Margin:   m,
		Clip:     Rect{Width: width, Height: height},
		Bars:     bars,
		Axis:     Axis{Y: height, Width: width, Ticks: ticks},
	}
	tb.redrawBrushLocked()
}

// redrawBrushLocked re-homes the brush onto the x-scale and recreates its
// overlay.
func (tb *TimeBrush) redrawBrushLocked() {
	tb.brush.attach(tb.x)
	tb.scene.Brush = tb.brush.overlay(tb.scene.Clip.Width, tb.scene.Clip.Height)
	tb.scene.Revision++
}
