// Package widgets holds the dashboard panes of the timebrush host. Each
// widget implements app.Widget and receives data through the update loop.
package widgets

import (
	"strings"

	"gitlab.com/tinyland/lab/timebrush/pkg/components"
)

// Hint and accent colors shared by the panes.
const (
	ColorAccent = "#A78BFA"
	ColorDim    = "#9CA3AF"
)

// fitLines truncates or pads lines so the result is exactly width x height.
func fitLines(lines []string, width, height int) string {
	out := make([]string, height)
	for i := range out {
		if i < len(lines) {
			out[i] = components.PadRight(components.Truncate(lines[i], width), width)
		} else {
			out[i] = strings.Repeat(" ", width)
		}
	}
	return strings.Join(out, "\n")
}

// centerMessage places msg on the middle line of a width x height area.
func centerMessage(msg string, width, height int) string {
	lines := make([]string, height)
	lines[(height-1)/2] = components.PadCenter(components.Truncate(msg, width), width)
	return fitLines(lines, width, height)
}
