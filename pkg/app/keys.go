package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global bindings. Widget keys are documented by the
// widget's own hint line.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Expand    key.Binding
	Refresh   key.Binding
	ClearAll  key.Binding
	ShiftHint key.Binding
	ClearHint key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Expand:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		ClearAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear selection")),
		// Handled by the focused widget; bound here so help lists them.
		ShiftHint: key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→ shift+←/→", "move/resize")),
		ClearHint: key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc", "clear brush")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.ClearAll, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ShiftHint, k.ClearHint, k.ClearAll},
		{k.Next, k.Prev, k.Expand},
		{k.Refresh, k.Help, k.Quit},
	}
}
