package widgets

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/timebrush/pkg/app"
	"gitlab.com/tinyland/lab/timebrush/pkg/components"
)

// DefaultSelectionHistory is how many selections the log keeps.
const DefaultSelectionHistory = 50

// SelectionLogWidget lists recent range selections, newest first.
type SelectionLogWidget struct {
	entries      []app.RangeSelectedEvent
	limit        int
	scrollOffset int
	// nowFunc allows tests to override time.Now for deterministic output.
	nowFunc func() time.Time
}

// NewSelectionLogWidget keeps up to limit entries; limit <= 0 means
// DefaultSelectionHistory.
func NewSelectionLogWidget(limit int) *SelectionLogWidget {
	if limit <= 0 {
		limit = DefaultSelectionHistory
	}
	return &SelectionLogWidget{limit: limit, nowFunc: time.Now}
}

func (w *SelectionLogWidget) ID() string    { return "selections" }
func (w *SelectionLogWidget) Title() string { return "Selections" }

func (w *SelectionLogWidget) MinSize() (int, int) { return 20, 2 }

// Entries returns the logged selections, newest first.
func (w *SelectionLogWidget) Entries() []app.RangeSelectedEvent {
	out := make([]app.RangeSelectedEvent, len(w.entries))
	copy(out, w.entries)
	return out
}

func (w *SelectionLogWidget) Update(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(app.RangeSelectedEvent)
	if !ok {
		return nil
	}
	w.entries = append([]app.RangeSelectedEvent{ev}, w.entries...)
	if len(w.entries) > w.limit {
		w.entries = w.entries[:w.limit]
	}
	// Keep the view anchored to the entry the user scrolled to.
	if w.scrollOffset > 0 {
		w.scrollOffset = min(w.scrollOffset+1, len(w.entries)-1)
	}
	return nil
}

func (w *SelectionLogWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "up", "k":
		if w.scrollOffset > 0 {
			w.scrollOffset--
		}
	case "down", "j":
		if w.scrollOffset < len(w.entries)-1 {
			w.scrollOffset++
		}
	case "home", "g":
		w.scrollOffset = 0
	case "D":
		w.entries = nil
		w.scrollOffset = 0
	}
	return nil
}

func (w *SelectionLogWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(w.entries) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim)).
			Render(centerMessage("no selections yet", width, height))
	}

	lines := make([]string, 0, height)
	for _, ev := range w.entries[w.scrollOffset:] {
		if len(lines) == height {
			break
		}
		lines = append(lines, w.line(ev, width))
	}
	return fitLines(lines, width, height)
}

func (w *SelectionLogWidget) line(ev app.RangeSelectedEvent, width int) string {
	age := components.PadRight(formatAge(w.nowFunc().Sub(ev.At)), 8)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))
	if ev.Cleared() {
		return components.Truncate(dim.Render(age+"cleared"), width)
	}
	text := app.FormatRange(ev.Range)
	if len(ev.Nearest) == 2 {
		text += fmt.Sprintf("  [%s … %s]", formatValue(ev.Nearest[0].Value), formatValue(ev.Nearest[1].Value))
	}
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))
	return components.Truncate(dim.Render(age)+accent.Render(text), width)
}

// formatAge renders a duration as a short relative age.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

var _ app.Widget = (*SelectionLogWidget)(nil)
