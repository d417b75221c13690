package preview

import (
	"os"
	"strconv"

	"github.com/charmbracelet/x/term"
)

const (
	defaultCellW = 8
	defaultCellH = 16
)

// Size is the terminal size in cells plus the pixel size of one cell.
type Size struct {
	Cols, Rows   int
	CellW, CellH int
}

// TerminalSize queries f, falling back to COLUMNS/LINES and then 80x24.
// Cell pixels come from TIOCGWINSZ where the platform reports them and
// default to 8x16 otherwise.
func TerminalSize(f *os.File) Size {
	s := Size{CellW: defaultCellW, CellH: defaultCellH}
	if f != nil {
		if w, h, err := term.GetSize(f.Fd()); err == nil && w > 0 && h > 0 {
			s.Cols, s.Rows = w, h
		}
		if cw, ch, ok := cellPixels(f.Fd()); ok {
			s.CellW, s.CellH = cw, ch
		}
	}
	if s.Cols == 0 || s.Rows == 0 {
		s.Cols = envInt("COLUMNS", 80)
		s.Rows = envInt("LINES", 24)
	}
	return s
}

func envInt(name string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
