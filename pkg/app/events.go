// Package app is the bubbletea host for timebrush widgets. It defines the
// messages exchanged with widgets, the Widget interface, the key map and the
// root model that lays widgets out and routes input to them.
package app

import (
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// DataUpdateEvent carries a fresh dataset from a loader goroutine into the
// update loop. Widgets pick the events whose Source they were built for.
type DataUpdateEvent struct {
	Source    string
	Items     []timebrush.DataItem
	Err       error
	Timestamp time.Time
}

// RangeSelectedEvent is a widget's settled brush selection. Range and Nearest
// are both empty (cleared) or both hold two elements.
type RangeSelectedEvent struct {
	WidgetID string
	Range    []time.Time
	Nearest  []timebrush.DataItem
	At       time.Time
}

// Cleared reports whether the selection was cleared.
func (e RangeSelectedEvent) Cleared() bool {
	return len(e.Range) == 0
}

// TickEvent drives periodic refresh and pruning.
type TickEvent struct {
	Time time.Time
}

// ClearSelectionEvent asks every widget to drop its selection as a user
// gesture.
type ClearSelectionEvent struct{}
