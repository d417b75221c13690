package app

// CycleFocusForward focuses the next pane, wrapping after the last.
func (m *AppModel) CycleFocusForward() {
	m.moveFocus(1)
}

// CycleFocusBackward focuses the previous pane, wrapping before the first.
func (m *AppModel) CycleFocusBackward() {
	m.moveFocus(-1)
}

func (m *AppModel) moveFocus(step int) {
	n := len(m.widgetOrder)
	if n == 0 {
		return
	}
	idx := 0
	for i, id := range m.widgetOrder {
		if id == m.focusedWidget {
			idx = i
			break
		}
	}
	m.focusedWidget = m.widgetOrder[(idx+step+n)%n]
	// An expanded pane follows focus.
	if m.expandedWidget != "" {
		m.expandedWidget = m.focusedWidget
	}
}

// FocusWidget focuses the pane with the given ID; unknown IDs are ignored.
func (m *AppModel) FocusWidget(id string) {
	if _, ok := m.widgets[id]; ok {
		m.focusedWidget = id
	}
}

// ToggleExpand shows the focused pane alone, or returns to the stacked view.
func (m *AppModel) ToggleExpand() {
	if m.focusedWidget == "" {
		return
	}
	if m.expandedWidget == m.focusedWidget {
		m.expandedWidget = ""
		return
	}
	m.expandedWidget = m.focusedWidget
}
