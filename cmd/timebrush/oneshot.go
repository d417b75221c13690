package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/timebrush/pkg/components"
	"gitlab.com/tinyland/lab/timebrush/pkg/config"
	"gitlab.com/tinyland/lab/timebrush/pkg/data"
	"gitlab.com/tinyland/lab/timebrush/pkg/preview"
	"gitlab.com/tinyland/lab/timebrush/pkg/render"
	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
	"gitlab.com/tinyland/lab/timebrush/pkg/widgets"
)

// textRows is the chart height of the plain terminal rendering.
const textRows = 12

// runOneShot loads the data once, imposes -select and writes the requested
// exports. Without an export it prints the chart as terminal cells.
func runOneShot(cfg *config.Config, opts options, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	now := time.Now().In(location(cfg))
	res, err := readObservations(opts, stdin, now)
	if err != nil {
		return err
	}
	if res.Skipped > 0 {
		logger.Warn("rows without a date skipped", "count", res.Skipped)
	}
	iv, agg := bucketing(cfg)
	items := data.Bucket(res.Items, iv, agg)
	logger.Debug("data loaded", "observations", len(res.Items), "items", len(items), "bucket", iv, "aggregate", agg)

	tb := timebrush.New(nil, &timebrush.Dimensions{
		Width:  cfg.Widget.Width,
		Height: cfg.Widget.Height,
	}, append(coreOptions(cfg), timebrush.WithLogger(logger))...)
	defer tb.Close()
	tb.SetData(items)

	var sel []time.Time
	if opts.selection != "" {
		if sel, err = parseSelection(opts.selection, now); err != nil {
			return err
		}
		tb.SetSelectedRange(sel)
	}

	style := cfg.ResolvedStyle()
	wrote := false
	if opts.svgPath != "" {
		if err := writeSVG(opts.svgPath, tb.Scene(), renderStyle(style)); err != nil {
			return err
		}
		logger.Info("svg written", "path", opts.svgPath)
		wrote = true
	}
	if opts.pngPath != "" {
		if err := render.SavePNG(opts.pngPath, tb.Scene(), renderStyle(style)); err != nil {
			return err
		}
		logger.Info("png written", "path", opts.pngPath)
		wrote = true
	}

	out, _ := stdout.(*os.File)
	size := preview.TerminalSize(out)
	if opts.preview {
		if err := showPreview(cfg, tb.Scene(), renderStyle(style), size, stdout); err != nil {
			return err
		}
		wrote = true
	}
	if !wrote {
		cols := size.Cols
		tb.SetDimensions(timebrush.Resize(float64(cols*widgets.CellWidth), float64(textRows*widgets.CellHeight)))
		palette := components.Palette{Profile: termenv.NewOutput(stdout).EnvColorProfile()}
		fmt.Fprintln(stdout, components.RenderScene(tb.Scene(), cols, textRows, sceneStyle(style, palette)))
	}

	if len(sel) == 2 {
		lo, hi, ok := timebrush.Nearest(tb.Data(), sel[0], sel[1])
		var nearest []timebrush.DataItem
		if ok {
			nearest = []timebrush.DataItem{lo, hi}
		}
		if !wrote || opts.preview {
			fmt.Fprintln(stdout, formatSelection(sel, nearest))
		}
		logger.Info("range imposed", "range", sel, "nearest", nearest)
	}
	return nil
}

func writeSVG(path string, s timebrush.Scene, st render.Style) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := render.SVG(w, s, st); err != nil {
		f.Close()
		return fmt.Errorf("render svg: %w", err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write svg: %w", err)
	}
	return f.Close()
}

// showPreview draws the chart inline, sized to the configured cells or to
// the terminal width and half its height.
func showPreview(cfg *config.Config, s timebrush.Scene, st render.Style, size preview.Size, stdout io.Writer) error {
	proto, err := preview.ResolveProtocol(cfg.Image.Protocol, os.Getenv)
	if err != nil {
		return err
	}
	cols, rows := cfg.Image.Cols, cfg.Image.Rows
	if cols <= 0 {
		cols = size.Cols
	}
	if rows <= 0 {
		rows = max(size.Rows/2, 4)
	}
	r := preview.NewRenderer(proto, size.CellW, size.CellH)
	out, err := r.RenderScene(s, st, cols, rows)
	if err != nil {
		return fmt.Errorf("preview (%s): %w", proto, err)
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}
