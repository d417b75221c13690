package app

import tea "github.com/charmbracelet/bubbletea"

// Widget is a dashboard pane. View must return at most height lines of at
// most width cells.
type Widget interface {
	ID() string
	Title() string
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
	MinSize() (int, int)
	HandleKey(msg tea.KeyMsg) tea.Cmd
}

// MouseHandler is implemented by widgets that react to the mouse. Every
// mouse message is offered to every handler; widgets decide by their zone.
type MouseHandler interface {
	HandleMouse(msg tea.MouseMsg) tea.Cmd
}

// Initializer is implemented by widgets that start commands on launch.
type Initializer interface {
	Init() tea.Cmd
}
