package widgets

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/timebrush/pkg/app"
	"gitlab.com/tinyland/lab/timebrush/pkg/components"
	"gitlab.com/tinyland/lab/timebrush/pkg/data"
	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// A terminal cell stands for this many canvas units.
const (
	CellWidth  = 8
	CellHeight = 16
)

const selectionBuffer = 16

// TimeBrushConfig configures a TimeBrushWidget.
type TimeBrushConfig struct {
	ID    string
	Title string

	// Source selects which DataUpdateEvents feed the widget.
	Source string
	// Feed, when set, is polled on every tick instead.
	Feed *data.Feed

	Interval    data.Interval
	Aggregation data.Aggregation

	Style components.SceneStyle
	// Zones resolves mouse positions. Without it the widget is keyboard only.
	Zones   *zone.Manager
	Options []timebrush.Option
	Logger  *slog.Logger
}

type brushKeys struct {
	Left, Right  key.Binding
	Shrink, Grow key.Binding
	Clear        key.Binding
}

func defaultBrushKeys() brushKeys {
	return brushKeys{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "move brush left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "move brush right")),
		Shrink: key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←", "shrink brush")),
		Grow:   key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+→", "grow brush")),
		Clear:  key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc", "clear brush")),
	}
}

// TimeBrushWidget hosts a timebrush.TimeBrush in a terminal pane. Selections
// settle on the widget's debounce timer and reach the update loop as
// app.RangeSelectedEvent.
type TimeBrushWidget struct {
	cfg    TimeBrushConfig
	keys   brushKeys
	logger *slog.Logger
	zoneID string

	tb         *timebrush.TimeBrush
	selections chan app.RangeSelectedEvent

	cols, rows int

	dragging    bool
	frozen      bool
	freezeToken data.FreezeToken
	pending     []timebrush.DataItem
	hasPending  bool

	feedVersion uint64
	feedSynced  bool

	last app.RangeSelectedEvent
}

// NewTimeBrushWidget creates the widget. It stays hidden until data arrives.
func NewTimeBrushWidget(cfg TimeBrushConfig) *TimeBrushWidget {
	if cfg.ID == "" {
		cfg.ID = "timebrush"
	}
	if cfg.Title == "" {
		cfg.Title = "Time Brush"
	}
	if cfg.Source == "" {
		cfg.Source = "data"
	}
	if cfg.Style == (components.SceneStyle{}) {
		cfg.Style = components.DefaultSceneStyle()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("widget", cfg.ID)

	w := &TimeBrushWidget{
		cfg:        cfg,
		keys:       defaultBrushKeys(),
		logger:     logger,
		zoneID:     cfg.ID + "-" + uuid.NewString(),
		selections: make(chan app.RangeSelectedEvent, selectionBuffer),
	}

	opts := append([]timebrush.Option{timebrush.WithLogger(logger)}, cfg.Options...)
	container := timebrush.ContainerFuncs{
		OnVisible: func(v bool) { logger.Debug("visibility changed", "visible", v) },
	}
	w.tb = timebrush.New(container, &timebrush.Dimensions{
		Width:  80 * CellWidth,
		Height: 10 * CellHeight,
	}, opts...)
	w.tb.OnRangeSelected(w.forward)
	return w
}

// forward runs on the debounce timer. It must not block.
func (w *TimeBrushWidget) forward(ev timebrush.RangeSelected) {
	msg := app.RangeSelectedEvent{
		WidgetID: w.cfg.ID,
		Range:    ev.Range,
		Nearest:  ev.Nearest,
		At:       time.Now(),
	}
	select {
	case w.selections <- msg:
	default:
		w.logger.Warn("selection dropped, update loop behind")
	}
}

func (w *TimeBrushWidget) ID() string    { return w.cfg.ID }
func (w *TimeBrushWidget) Title() string { return w.cfg.Title }

// MinSize is a 10 column chart with one bar row, the axis and the hint.
func (w *TimeBrushWidget) MinSize() (int, int) { return 10, 3 }

// Init loads the feed, if any, and starts listening for selections.
func (w *TimeBrushWidget) Init() tea.Cmd {
	w.syncFeed()
	return app.WaitForSelection(w.selections)
}

// Brush exposes the hosted widget.
func (w *TimeBrushWidget) Brush() *timebrush.TimeBrush { return w.tb }

// Selections returns the channel settled selections are queued on.
func (w *TimeBrushWidget) Selections() <-chan app.RangeSelectedEvent { return w.selections }

// SetSelectedRange imposes a selection without emitting. The selection
// survives later data updates, including the first.
func (w *TimeBrushWidget) SetSelectedRange(r []time.Time) {
	w.tb.SetSelectedRange(r)
}

// Close stops the hosted widget and releases any feed freeze.
func (w *TimeBrushWidget) Close() error {
	w.thaw()
	return w.tb.Close()
}

func (w *TimeBrushWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.RangeSelectedEvent:
		if msg.WidgetID != w.cfg.ID {
			return nil
		}
		w.last = msg
		w.flush()
		w.syncFeed()
		return app.WaitForSelection(w.selections)

	case app.DataUpdateEvent:
		if w.cfg.Feed != nil || msg.Source != w.cfg.Source || msg.Err != nil {
			return nil
		}
		w.apply(data.Bucket(msg.Items, w.cfg.Interval, w.cfg.Aggregation))

	case app.TickEvent:
		w.flush()
		w.syncFeed()

	case app.ClearSelectionEvent:
		w.tb.ClearBrush()
	}
	return nil
}

// apply replaces the dataset and puts the committed selection back. Data
// arriving mid-gesture, or before a gesture has settled, waits.
func (w *TimeBrushWidget) apply(items []timebrush.DataItem) {
	if w.dragging || w.settling() {
		w.pending, w.hasPending = items, true
		return
	}
	sel := w.tb.SelectedRange()
	w.tb.SetData(items)
	if len(sel) == 2 {
		w.tb.SetSelectedRange(sel)
	}
}

func (w *TimeBrushWidget) flush() {
	if !w.hasPending {
		return
	}
	items := w.pending
	w.pending, w.hasPending = nil, false
	w.apply(items)
}

// settling reports whether the live extent differs from the committed
// selection, i.e. an emission is still due.
func (w *TimeBrushWidget) settling() bool {
	start, end, live := w.tb.BrushExtent()
	sel := w.tb.SelectedRange()
	if !live {
		return len(sel) == 2
	}
	if len(sel) != 2 {
		return true
	}
	return start.UnixMilli() != sel[0].UnixMilli() || end.UnixMilli() != sel[1].UnixMilli()
}

func (w *TimeBrushWidget) syncFeed() {
	if w.cfg.Feed == nil || w.dragging || w.settling() {
		return
	}
	v := w.cfg.Feed.Version()
	if w.feedSynced && v == w.feedVersion {
		return
	}
	w.feedVersion, w.feedSynced = v, true
	w.apply(w.cfg.Feed.Buckets(w.cfg.Interval, w.cfg.Aggregation))
}

func (w *TimeBrushWidget) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, w.keys.Left):
		w.tb.ShiftBrush(-CellWidth)
	case key.Matches(msg, w.keys.Right):
		w.tb.ShiftBrush(CellWidth)
	case key.Matches(msg, w.keys.Shrink):
		w.tb.StretchBrush(-CellWidth)
	case key.Matches(msg, w.keys.Grow):
		w.tb.StretchBrush(CellWidth)
	case key.Matches(msg, w.keys.Clear):
		w.tb.ClearBrush()
	}
	return nil
}

// HandleMouse resolves the event against the widget's zone. A drag keeps
// tracking after the pointer leaves the zone.
func (w *TimeBrushWidget) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	if w.cfg.Zones == nil {
		return nil
	}
	z := w.cfg.Zones.Get(w.zoneID)
	if z.IsZero() {
		return nil
	}
	if !w.dragging && !z.InBounds(msg) {
		return nil
	}
	w.pointer(msg.Action, msg.Button, msg.X-z.StartX)
	return nil
}

// pointer drives the brush from a column inside the chart.
func (w *TimeBrushWidget) pointer(action tea.MouseAction, button tea.MouseButton, col int) {
	switch {
	case action == tea.MouseActionPress && button == tea.MouseButtonLeft:
		if !w.tb.Visible() {
			return
		}
		w.dragging = true
		if w.cfg.Feed != nil && !w.frozen {
			w.freezeToken, w.frozen = w.cfg.Feed.Freeze(), true
		}
		w.tb.BeginBrush(w.plotX(col))
	case action == tea.MouseActionMotion && w.dragging:
		w.tb.DragBrush(w.plotX(col))
	case action == tea.MouseActionRelease && w.dragging:
		w.tb.DragBrush(w.plotX(col))
		w.tb.EndBrush()
		w.dragging = false
		w.thaw()
		w.flush()
		w.syncFeed()
	}
}

func (w *TimeBrushWidget) thaw() {
	if w.frozen {
		w.cfg.Feed.Unfreeze(w.freezeToken)
		w.frozen = false
	}
}

func (w *TimeBrushWidget) plotX(col int) float64 {
	if w.cols <= 0 {
		return 0
	}
	col = max(0, min(col, w.cols-1))
	return components.PlotX(w.tb.Scene(), col, w.cols)
}

// resize matches the canvas to the pane, one cell per CellWidth x
// CellHeight units.
func (w *TimeBrushWidget) resize(cols, rows int) {
	if cols == w.cols && rows == w.rows {
		return
	}
	w.cols, w.rows = cols, rows
	w.tb.SetDimensions(timebrush.Resize(float64(cols*CellWidth), float64(rows*CellHeight)))
}

func (w *TimeBrushWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := height
	showHint := height >= 3
	if showHint {
		rows--
	}
	w.resize(width, rows)

	chart := components.RenderScene(w.tb.Scene(), width, rows, w.cfg.Style)
	body := fitLines(strings.Split(chart, "\n"), width, rows)
	if w.cfg.Zones != nil {
		body = w.cfg.Zones.Mark(w.zoneID, body)
	}
	if !showHint {
		return body
	}
	return body + "\n" + w.hint(width)
}

func (w *TimeBrushWidget) hint(width int) string {
	if w.last.Cleared() || !w.tb.Visible() {
		msg := "drag to select  ←/→ move  shift+←/→ resize  esc clear"
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim)).
			Render(components.PadRight(components.Truncate(msg, width), width))
	}
	msg := "▸ " + app.FormatRange(w.last.Range)
	if len(w.last.Nearest) == 2 {
		msg += "  nearest " + w.last.Nearest[0].Date.Format("01-02 15:04") +
			" … " + w.last.Nearest[1].Date.Format("01-02 15:04")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)).
		Render(components.PadRight(components.Truncate(msg, width), width))
}

var (
	_ app.Widget       = (*TimeBrushWidget)(nil)
	_ app.MouseHandler = (*TimeBrushWidget)(nil)
	_ app.Initializer  = (*TimeBrushWidget)(nil)
)
