// timebrush draws a bar-chart overview of timestamped values and lets the
// user brush a time range across it.
//
// Usage:
//
//	timebrush [flags] [data-file]
//
// With a terminal on stdout it starts an interactive dashboard; the last
// selected range is printed on exit. Otherwise, or with -svg / -png /
// -preview, it renders once and exits.
//
// Flags:
//
//	-config string   Path to configuration file (default: XDG search path)
//	-format string   Data format when it cannot be detected (csv|json|yaml)
//	-bucket string   Bucket interval (none|minute|hour|day|week|month|year|<duration>)
//	-aggregate string Bucket aggregation (sum|count)
//	-follow          Reload the data file on every refresh
//	-select string   Impose a range "start,end" before rendering
//	-svg string      Write an SVG export
//	-png string      Write a PNG export
//	-preview         Show the chart inline in the terminal
//	-style string    Style preset
//	-verbose         Enable verbose logging
//	-version         Print version and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/timebrush/pkg/config"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// options are the resolved command line settings.
type options struct {
	dataPath  string
	format    string
	selection string
	svgPath   string
	pngPath   string
	preview   bool
	follow    bool
	verbose   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code. Deferred
// cleanup such as closing the log file runs before main exits.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("timebrush", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath  = fs.String("config", "", "Path to configuration file")
		format      = fs.String("format", "", "Data format when it cannot be detected (csv|json|yaml)")
		bucket      = fs.String("bucket", "", "Bucket interval (none|minute|hour|day|week|month|year|<duration>)")
		aggregate   = fs.String("aggregate", "", "Bucket aggregation (sum|count)")
		follow      = fs.Bool("follow", false, "Reload the data file on every refresh (stdin: stream observations)")
		selection   = fs.String("select", "", "Impose a range \"start,end\" before rendering")
		svgPath     = fs.String("svg", "", "Write an SVG export to this path")
		pngPath     = fs.String("png", "", "Write a PNG export to this path")
		showPreview = fs.Bool("preview", false, "Show the chart inline in the terminal")
		stylePreset = fs.String("style", "", "Style preset ("+strings.Join(config.StylePresetNames(), "|")+")")
		verbose     = fs.Bool("verbose", false, "Enable verbose logging")
		showVersion = fs.Bool("version", false, "Print version and exit")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "timebrush %s (%s) built %s\n", version, commit, date)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	if *bucket != "" {
		cfg.Data.Bucket = *bucket
	}
	if *aggregate != "" {
		cfg.Data.Aggregate = *aggregate
	}
	if *stylePreset != "" {
		cfg.Style.Preset = *stylePreset
	}
	if *format != "" {
		cfg.Data.Format = *format
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 1
	}

	opts := options{
		dataPath:  cfg.Data.Path,
		format:    cfg.Data.Format,
		selection: *selection,
		svgPath:   *svgPath,
		pngPath:   *pngPath,
		preview:   *showPreview,
		follow:    *follow,
		verbose:   *verbose,
	}
	if fs.NArg() > 0 {
		opts.dataPath = fs.Arg(0)
	}

	interactive := false
	if f, ok := stdout.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	oneShot := opts.svgPath != "" || opts.pngPath != "" || opts.preview || !interactive

	// The dashboard owns the screen, so it only logs to a file.
	logOut := io.Writer(stderr)
	if !oneShot {
		logOut = io.Discard
	}
	if cfg.General.LogFile != "" {
		if err := ensureLogDir(cfg.General.LogFile); err != nil {
			fmt.Fprintf(stderr, "failed to create log directory: %v\n", err)
			return 1
		}
		logFile, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "failed to open log file: %v\n", err)
			return 1
		}
		defer logFile.Close()
		if oneShot {
			logOut = io.MultiWriter(stderr, logFile)
		} else {
			logOut = logFile
		}
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel(cfg.General.LogLevel, opts.verbose),
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if oneShot {
		err = runOneShot(cfg, opts, logger, stdin, stdout)
	} else {
		err = runTUI(ctx, cfg, opts, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("timebrush failed", "error", err)
		fmt.Fprintf(stderr, "timebrush: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// logLevel maps the configured level; -verbose forces debug.
func logLevel(name string, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// ensureLogDir creates the parent directory for the log file if needed.
func ensureLogDir(logFile string) error {
	return os.MkdirAll(filepath.Dir(logFile), 0o755)
}
