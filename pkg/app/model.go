package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/timebrush/pkg/components"
)

// Config controls the root model.
type Config struct {
	// RefreshInterval is the tick period.
	RefreshInterval time.Duration
	// Source names the dataset delivered by Fetch.
	Source string
	// Fetch loads the dataset on start and on the refresh key. Nil disables
	// loading.
	Fetch FetchFunc
	// Follow reloads the dataset on every tick.
	Follow bool
	// Zones, when set, scans the final view so widgets can resolve mouse
	// positions against their marked regions.
	Zones  *zone.Manager
	Logger *slog.Logger
}

// DefaultConfig returns a config with a 5s refresh and no data source.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 5 * time.Second,
		Source:          "data",
	}
}

// AppModel is the root bubbletea model. Widgets are stacked vertically in
// registration order; the first widget takes any spare height.
type AppModel struct {
	cfg    Config
	keys   KeyMap
	help   help.Model
	logger *slog.Logger

	widgets        map[string]Widget
	widgetOrder    []string
	focusedWidget  string
	expandedWidget string

	width, height int
	layoutDirty   bool
	quitting      bool
	showHelp      bool

	lastData  map[string]DataUpdateEvent
	lastErr   error
	selection *RangeSelectedEvent
}

// NewAppModel registers widgets in order and focuses the first.
func NewAppModel(cfg Config, widgets ...Widget) AppModel {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultConfig().RefreshInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := AppModel{
		cfg:         cfg,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		logger:      logger,
		widgets:     make(map[string]Widget, len(widgets)),
		layoutDirty: true,
		lastData:    make(map[string]DataUpdateEvent),
	}
	for _, w := range widgets {
		if w == nil {
			continue
		}
		if _, dup := m.widgets[w.ID()]; dup {
			continue
		}
		m.widgets[w.ID()] = w
		m.widgetOrder = append(m.widgetOrder, w.ID())
	}
	if len(m.widgetOrder) > 0 {
		m.focusedWidget = m.widgetOrder[0]
	}
	return m
}

// Init starts the ticker, the first load and any widget commands.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(m.cfg.RefreshInterval), DataFetchCmd(m.cfg.Source, m.cfg.Fetch)}
	for _, id := range m.widgetOrder {
		if in, ok := m.widgets[id].(Initializer); ok {
			cmds = append(cmds, in.Init())
		}
	}
	return tea.Batch(cmds...)
}

// Update routes a message.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layoutDirty = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmds []tea.Cmd
		for _, id := range m.widgetOrder {
			if mh, ok := m.widgets[id].(MouseHandler); ok {
				cmds = append(cmds, mh.HandleMouse(msg))
			}
		}
		return m, tea.Batch(cmds...)

	case TickEvent:
		cmds := []tea.Cmd{m.broadcast(msg), TickCmd(m.cfg.RefreshInterval)}
		if m.cfg.Follow {
			cmds = append(cmds, DataFetchCmd(m.cfg.Source, m.cfg.Fetch))
		}
		return m, tea.Batch(cmds...)

	case DataUpdateEvent:
		if msg.Err != nil {
			m.lastErr = msg.Err
			m.logger.Warn("data load failed", "source", msg.Source, "error", msg.Err)
			return m, nil
		}
		m.lastErr = nil
		m.lastData[msg.Source] = msg
		m.logger.Debug("data loaded", "source", msg.Source, "items", len(msg.Items))
		return m, m.broadcast(msg)

	case RangeSelectedEvent:
		ev := msg
		m.selection = &ev
		m.logger.Info("range selected", "widget", msg.WidgetID, "range", msg.Range)
		return m, m.broadcast(msg)
	}
	return m, m.broadcast(msg)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.layoutDirty = true
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.CycleFocusForward()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.CycleFocusBackward()
		return m, nil
	case key.Matches(msg, m.keys.Expand):
		m.ToggleExpand()
		m.layoutDirty = true
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, DataFetchCmd(m.cfg.Source, m.cfg.Fetch)
	case key.Matches(msg, m.keys.ClearAll):
		return m, m.broadcast(ClearSelectionEvent{})
	}
	if w, ok := m.widgets[m.focusedWidget]; ok {
		return m, w.HandleKey(msg)
	}
	return m, nil
}

func (m AppModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.widgetOrder {
		if cmd := m.widgets[id].Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// View renders the panes, the status line and the help line.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "Initializing..."
	}

	footer := []string{m.statusLine(), m.help.View(m.keys)}
	bodyH := m.height - lipgloss.Height(strings.Join(footer, "\n"))

	var panes []string
	if w, ok := m.widgets[m.expandedWidget]; ok {
		panes = append(panes, m.renderPane(w, m.width, bodyH, true))
	} else {
		heights := m.paneHeights(bodyH)
		for i, id := range m.widgetOrder {
			if heights[i] > 0 {
				panes = append(panes, m.renderPane(m.widgets[id], m.width, heights[i], id == m.focusedWidget))
			}
		}
	}

	out := lipgloss.JoinVertical(lipgloss.Left, append(panes, footer...)...)
	if m.cfg.Zones != nil {
		out = m.cfg.Zones.Scan(out)
	}
	return out
}

// paneHeights gives each widget its minimum (plus border and title) and the
// first widget the remainder. Widgets that do not fit get 0.
func (m AppModel) paneHeights(total int) []int {
	heights := make([]int, len(m.widgetOrder))
	left := total
	for i, id := range m.widgetOrder {
		_, minH := m.widgets[id].MinSize()
		need := minH + 3
		if need > left {
			break
		}
		heights[i] = need
		left -= need
	}
	if len(heights) > 0 && heights[0] > 0 {
		heights[0] += left
	}
	return heights
}

func (m AppModel) renderPane(w Widget, width, height int, focused bool) string {
	innerW, innerH := width-2, height-2
	if innerW < 1 || innerH < 2 {
		return ""
	}
	title := titleStyle.Render(components.Truncate(w.Title(), innerW))
	body := w.View(innerW, innerH-1)
	return paneStyle(focused).
		Width(innerW).
		Height(innerH).
		Render(title + "\n" + body)
}

func (m AppModel) statusLine() string {
	if m.lastErr != nil {
		return errorStyle.Render(components.TruncateWithTail("error: "+m.lastErr.Error(), m.width, "…"))
	}
	var parts []string
	if m.selection == nil || m.selection.Cleared() {
		parts = append(parts, "no selection")
	} else {
		parts = append(parts, "selected "+FormatRange(m.selection.Range))
	}
	if ev, ok := m.lastData[m.cfg.Source]; ok {
		parts = append(parts, fmt.Sprintf("%d items @ %s", len(ev.Items), ev.Timestamp.Format("15:04:05")))
	}
	return statusStyle.Render(components.Truncate(strings.Join(parts, "  |  "), m.width))
}

// FormatRange renders a two-element range compactly, dropping the date from
// the end when both fall on the same day.
func FormatRange(r []time.Time) string {
	if len(r) != 2 {
		return ""
	}
	const full = "2006-01-02 15:04"
	end := r[1].Format(full)
	y1, m1, d1 := r[0].Date()
	y2, m2, d2 := r[1].Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		end = r[1].Format("15:04")
	}
	return r[0].Format(full) + " → " + end
}

// Width returns the terminal width.
func (m AppModel) Width() int { return m.width }

// Height returns the terminal height.
func (m AppModel) Height() int { return m.height }

// LayoutDirty reports whether a resize or mode change is pending a redraw.
func (m AppModel) LayoutDirty() bool { return m.layoutDirty }

// Quitting reports whether quit was requested.
func (m AppModel) Quitting() bool { return m.quitting }

// HelpVisible reports whether the full help is shown.
func (m AppModel) HelpVisible() bool { return m.showHelp }

// FocusedWidgetID returns the focused widget's ID.
func (m AppModel) FocusedWidgetID() string { return m.focusedWidget }

// ExpandedWidgetID returns the expanded widget's ID, or "".
func (m AppModel) ExpandedWidgetID() string { return m.expandedWidget }

// LastData returns the last successful load for source.
func (m AppModel) LastData(source string) (DataUpdateEvent, bool) {
	ev, ok := m.lastData[source]
	return ev, ok
}

// LastError returns the error of the most recent failed load, cleared by
// the next successful one.
func (m AppModel) LastError() error { return m.lastErr }

// Selection returns the most recent selection event.
func (m AppModel) Selection() (RangeSelectedEvent, bool) {
	if m.selection == nil {
		return RangeSelectedEvent{}, false
	}
	return *m.selection, true
}
