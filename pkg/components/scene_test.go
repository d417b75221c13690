package components

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

func plainStyle() SceneStyle {
	st := DefaultSceneStyle()
	st.Palette = Palette{Profile: termenv.Ascii}
	return st
}

// testScene is a 120x120 canvas: 10 canvas units per column at 12 columns.
func testScene() timebrush.Scene {
	return timebrush.Scene{
		Visible: true,
		Width:   120,
		Height:  120,
		Margin:  timebrush.PlotMargin,
		Clip:    timebrush.Rect{Width: 100, Height: 100},
		Bars: []timebrush.Bar{
			{Rect: timebrush.Rect{X: 0, Y: 0, Width: 2, Height: 100}},
			{Rect: timebrush.Rect{X: 50, Y: 75, Width: 2, Height: 25}},
			{Rect: timebrush.Rect{X: 80, Y: 90, Width: 2, Height: 10}},
		},
		Axis: timebrush.Axis{Y: 100, Width: 100, Ticks: []timebrush.Tick{
			{X: 0, Label: "Jan"},
			{X: 50, Label: "Feb"},
			{X: 55, Label: "Mar"},
		}},
		Brush: timebrush.BrushOverlay{
			Extent: timebrush.Rect{X: 40, Y: -6, Width: 30, Height: 107},
		},
	}
}

func TestRenderScene(t *testing.T) {
	got := RenderScene(testScene(), 12, 5, plainStyle())
	want := strings.Join([]string{
		" █   ░░░░",
		" █   ░░░░",
		" █   ┃░░┃",
		" █   ░█░░▃",
		"Jan  Feb",
	}, "\n")
	if got != want {
		t.Errorf("RenderScene =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderSceneEmptyBrush(t *testing.T) {
	s := testScene()
	s.Brush.Empty = true
	got := RenderScene(s, 12, 5, plainStyle())
	if strings.ContainsRune(got, shadeRune) || strings.ContainsRune(got, gripRune) {
		t.Errorf("empty brush should not be drawn:\n%s", got)
	}
}

func TestRenderSceneLineCount(t *testing.T) {
	for _, rows := range []int{2, 3, 10} {
		got := RenderScene(testScene(), 40, rows, plainStyle())
		if n := strings.Count(got, "\n") + 1; n != rows {
			t.Errorf("rows=%d: got %d lines", rows, n)
		}
		for i, line := range strings.Split(got, "\n") {
			if VisibleLen(line) > 40 {
				t.Errorf("rows=%d line %d too wide: %q", rows, i, line)
			}
		}
	}
}

func TestRenderSceneHiddenAndTiny(t *testing.T) {
	s := testScene()
	s.Visible = false
	got := RenderScene(s, 20, 3, plainStyle())
	if !strings.Contains(got, "no data") {
		t.Errorf("hidden scene = %q, want placeholder", got)
	}
	if got := RenderScene(testScene(), 5, 5, plainStyle()); got != "too s" {
		t.Errorf("tiny = %q", got)
	}
}

func TestRenderSceneColors(t *testing.T) {
	st := DefaultSceneStyle()
	got := RenderScene(testScene(), 12, 5, st)
	if !strings.Contains(got, "\x1b[38;2;") {
		t.Error("truecolor palette should emit 24-bit sequences")
	}
	if Strip(got) != RenderScene(testScene(), 12, 5, plainStyle()) {
		t.Error("colored and plain renders should show the same cells")
	}
}

func TestCellAtAndPlotX(t *testing.T) {
	s := testScene()
	tests := []struct {
		x    float64
		want int
	}{
		{-50, 0},
		{0, 1},
		{45, 5},
		{100, 11},
		{500, 11},
	}
	for _, tt := range tests {
		if got := CellAt(s, tt.x, 12); got != tt.want {
			t.Errorf("CellAt(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
	for c := 0; c < 12; c++ {
		if got := CellAt(s, PlotX(s, c, 12), 12); got != c {
			t.Errorf("CellAt(PlotX(%d)) = %d", c, got)
		}
	}
}

func TestPalette(t *testing.T) {
	if got := Color("#ff0000"); got != "\x1b[38;2;255;0;0m" {
		t.Errorf("Color = %q", got)
	}
	if got := BgColor("00ff00"); got != "\x1b[48;2;0;255;0m" {
		t.Errorf("BgColor = %q", got)
	}
	if got := (Palette{Profile: termenv.ANSI256}).Fg("#ff0000"); !strings.HasPrefix(got, "\x1b[38;5;") {
		t.Errorf("ANSI256 Fg = %q", got)
	}
	for _, bad := range []string{"", "#fff", "zzzzzz"} {
		if got := Color(bad); got != "" {
			t.Errorf("Color(%q) = %q, want empty", bad, got)
		}
	}
	if (Palette{Profile: termenv.Ascii}).Reset() != "" {
		t.Error("Ascii reset should be empty")
	}
}

func TestTextHelpers(t *testing.T) {
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadCenter("ab", 5); got != " ab  " {
		t.Errorf("PadCenter = %q", got)
	}
	if got := TruncateWithTail("abcdef", 4, "…"); VisibleLen(got) != 4 {
		t.Errorf("TruncateWithTail = %q", got)
	}
	if got := VisibleLen(Color("#ff0000") + "x" + Reset()); got != 1 {
		t.Errorf("VisibleLen = %d, want 1", got)
	}
}
