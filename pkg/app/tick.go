package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// TickCmd sends a TickEvent after d.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// FetchFunc loads a complete dataset.
type FetchFunc func() ([]timebrush.DataItem, error)

// DataFetchCmd runs fetch off the update loop and delivers the result as a
// DataUpdateEvent. On error Items is nil.
func DataFetchCmd(source string, fetch FetchFunc) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := fetch()
		if err != nil {
			items = nil
		}
		return DataUpdateEvent{
			Source:    source,
			Items:     items,
			Err:       err,
			Timestamp: time.Now(),
		}
	}
}

// WaitForSelection blocks until the next selection arrives on ch. A closed
// channel yields a nil message, which ends the wait loop.
func WaitForSelection(ch <-chan RangeSelectedEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ev
	}
}
