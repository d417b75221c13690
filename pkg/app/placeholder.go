package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/timebrush/pkg/components"
)

// PlaceholderWidget shows a centered message. The CLI mounts one when nothing
// is piped in and no data file is given.
type PlaceholderWidget struct {
	id      string
	title   string
	message string
}

// NewPlaceholder returns a placeholder that shows its size.
func NewPlaceholder(id, title string) *PlaceholderWidget {
	return &PlaceholderWidget{id: id, title: title}
}

// NewMessage returns a placeholder that shows msg.
func NewMessage(id, title, msg string) *PlaceholderWidget {
	return &PlaceholderWidget{id: id, title: title, message: msg}
}

func (w *PlaceholderWidget) ID() string    { return w.id }
func (w *PlaceholderWidget) Title() string { return w.title }

func (w *PlaceholderWidget) Update(tea.Msg) tea.Cmd { return nil }

func (w *PlaceholderWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

func (w *PlaceholderWidget) MinSize() (int, int) { return 10, 1 }

// View centers the message (or the pane size) vertically.
func (w *PlaceholderWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	msg := w.message
	if msg == "" {
		msg = fmt.Sprintf("%dx%d", width, height)
	}
	line := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim)).
		Render(components.PadCenter(components.Truncate(msg, width), width))

	lines := make([]string, height)
	lines[(height-1)/2] = line
	return strings.Join(lines, "\n")
}
