package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/timebrush/pkg/app"
	"gitlab.com/tinyland/lab/timebrush/pkg/components"
	"gitlab.com/tinyland/lab/timebrush/pkg/config"
	"gitlab.com/tinyland/lab/timebrush/pkg/data"
	"gitlab.com/tinyland/lab/timebrush/pkg/widgets"
)

// runTUI starts the dashboard: the brushing widget above a selection log.
// A file source is loaded through the app's fetch command (reloaded on
// every tick with -follow); standard input is streamed into a live feed.
// The final selection is printed on exit.
func runTUI(ctx context.Context, cfg *config.Config, opts options, logger *slog.Logger) error {
	zm := zone.New()
	defer zm.Close()

	iv, agg := bucketing(cfg)
	style := cfg.ResolvedStyle()

	appCfg := app.DefaultConfig()
	if d := cfg.Data.RefreshInterval.Duration; d > 0 {
		appCfg.RefreshInterval = d
	}
	appCfg.Zones = zm
	appCfg.Logger = logger

	wcfg := widgets.TimeBrushConfig{
		Source:      appCfg.Source,
		Interval:    iv,
		Aggregation: agg,
		Style:       sceneStyle(style, components.DetectPalette()),
		Zones:       zm,
		Options:     coreOptions(cfg),
		Logger:      logger,
	}

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}

	var notice app.Widget
	switch {
	case opts.fromStdin() && isatty.IsTerminal(os.Stdin.Fd()):
		// Nothing is piped in; the brush stays hidden.
		notice = app.NewMessage("source", "Source", "no data: pass a file or pipe observations on stdin")
	case opts.fromStdin():
		feed := data.NewFeed(cfg.FeedConfig())
		wcfg.Feed = feed
		go feed.Run(ctx)
		go func() {
			stats, err := data.Stream(ctx, os.Stdin, feed, logger)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("stdin stream ended", "error", err)
			}
			logger.Info("stdin closed", "added", stats.Added, "skipped", stats.Skipped, "invalid", stats.Invalid)
		}()
		// Keys come from the terminal while data comes from the pipe.
		progOpts = append(progOpts, tea.WithInputTTY())
	default:
		appCfg.Fetch = fileFetcher(opts, location(cfg))
		appCfg.Follow = opts.follow
	}

	brush := widgets.NewTimeBrushWidget(wcfg)
	defer brush.Close()
	if opts.selection != "" {
		sel, err := parseSelection(opts.selection, time.Now().In(location(cfg)))
		if err != nil {
			return err
		}
		brush.SetSelectedRange(sel)
	}

	panes := []app.Widget{brush, widgets.NewSelectionLogWidget(0)}
	if notice != nil {
		panes = append(panes, notice)
	}
	model := app.NewAppModel(appCfg, panes...)
	final, err := tea.NewProgram(model, progOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil
		}
		return fmt.Errorf("run dashboard: %w", err)
	}

	if m, ok := final.(app.AppModel); ok {
		if ev, ok := m.Selection(); ok && !ev.Cleared() {
			fmt.Println(formatSelection(ev.Range, ev.Nearest))
		}
	}
	return nil
}
