package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/blacktop/go-termimg"
	"github.com/disintegration/imaging"

	"gitlab.com/tinyland/lab/timebrush/pkg/render"
	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// ErrDisabled is returned when the protocol is ProtocolNone.
var ErrDisabled = errors.New("inline previews are disabled")

// Renderer turns images into terminal escape output for one protocol. The
// last scene output is cached by revision and cell size.
type Renderer struct {
	protocol Protocol
	cellW    int
	cellH    int

	mu   sync.Mutex
	last cacheEntry
}

type cacheEntry struct {
	revision   uint64
	cols, rows int
	out        string
	ok         bool
}

// NewRenderer returns a renderer for p with the given cell pixel size.
// Non-positive cell sizes use 8x16.
func NewRenderer(p Protocol, cellW, cellH int) *Renderer {
	if cellW <= 0 {
		cellW = defaultCellW
	}
	if cellH <= 0 {
		cellH = defaultCellH
	}
	return &Renderer{protocol: p, cellW: cellW, cellH: cellH}
}

// Protocol returns the active protocol.
func (r *Renderer) Protocol() Protocol {
	return r.protocol
}

// RenderScene rasterizes the scene and renders it into cols x rows cells.
// Repeated calls for the same revision and size reuse the previous output.
func (r *Renderer) RenderScene(s timebrush.Scene, st render.Style, cols, rows int) (string, error) {
	r.mu.Lock()
	if r.last.ok && r.last.revision == s.Revision && r.last.cols == cols && r.last.rows == rows {
		out := r.last.out
		r.mu.Unlock()
		return out, nil
	}
	r.mu.Unlock()

	out, err := r.Render(render.Image(s, st), cols, rows)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.last = cacheEntry{revision: s.Revision, cols: cols, rows: rows, out: out, ok: true}
	r.mu.Unlock()
	return out, nil
}

// Render fits img into cols x rows cells, preserving its aspect ratio.
func (r *Renderer) Render(img image.Image, cols, rows int) (string, error) {
	if img == nil {
		return "", errors.New("image is nil")
	}
	if cols <= 0 || rows <= 0 {
		return "", fmt.Errorf("invalid preview size %dx%d", cols, rows)
	}
	switch r.protocol {
	case ProtocolNone:
		return "", ErrDisabled
	case ProtocolKitty:
		return r.termimg(img, termimg.Kitty, cols, rows)
	case ProtocolITerm2:
		return r.termimg(img, termimg.ITerm2, cols, rows)
	case ProtocolSixel:
		return r.termimg(img, termimg.Sixel, cols, rows)
	}
	// Each halfblock cell carries two vertical pixels.
	return Halfblocks(imaging.Fit(img, cols, rows*2, imaging.Lanczos)), nil
}

func (r *Renderer) termimg(img image.Image, proto termimg.Protocol, cols, rows int) (string, error) {
	fitted := imaging.Fit(img, cols*r.cellW, rows*r.cellH, imaging.Lanczos)
	ti := termimg.New(fitted)
	if ti == nil {
		return "", errors.New("go-termimg: failed to wrap image")
	}
	out, err := ti.Protocol(proto).Size(cols, rows).Scale(termimg.ScaleFit).Render()
	if err != nil {
		return "", fmt.Errorf("%s render: %w", r.protocol, err)
	}
	return out, nil
}

// Halfblocks renders img with upper-half-block characters: the foreground
// is the top pixel and the background the bottom one. Fully transparent
// pixels are left to the terminal's default colors.
func Halfblocks(img image.Image) string {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if w == 0 || h == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(w * (h/2 + 1) * 32)
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteString("\x1b[0m\n")
		}
		for x := 0; x < w; x++ {
			top := src.NRGBAAt(x, y)
			var bot color.NRGBA
			if y+1 < h {
				bot = src.NRGBAAt(x, y+1)
			}
			switch {
			case top.A == 0 && bot.A == 0:
				b.WriteString("\x1b[0m ")
			case top.A == 0:
				fmt.Fprintf(&b, "\x1b[49;38;2;%d;%d;%dm▄", bot.R, bot.G, bot.B)
			case bot.A == 0:
				fmt.Fprintf(&b, "\x1b[49;38;2;%d;%d;%dm▀", top.R, top.G, top.B)
			default:
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%d;48;2;%d;%d;%dm▀",
					top.R, top.G, top.B, bot.R, bot.G, bot.B)
			}
		}
	}
	b.WriteString("\x1b[0m")
	return b.String()
}
