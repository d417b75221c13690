package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/app"
	"gitlab.com/tinyland/lab/timebrush/pkg/coerce"
	"gitlab.com/tinyland/lab/timebrush/pkg/config"
	"gitlab.com/tinyland/lab/timebrush/pkg/data"
	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// fromStdin reports whether observations are read from standard input.
func (o options) fromStdin() bool {
	return o.dataPath == "" || o.dataPath == "-"
}

// readObservations loads the configured source once. Standard input is read
// as CSV unless a format is given. now anchors relative dates.
func readObservations(opts options, stdin io.Reader, now time.Time) (data.Result, error) {
	var (
		format data.Format
		err    error
	)
	switch {
	case opts.format != "":
		format, err = data.ParseFormat(opts.format)
	case opts.fromStdin():
		format = data.FormatCSV
	default:
		format, err = data.DetectFormat(opts.dataPath)
	}
	if err != nil {
		return data.Result{}, err
	}

	name, r := "stdin", stdin
	if !opts.fromStdin() {
		f, err := os.Open(opts.dataPath)
		if err != nil {
			return data.Result{}, fmt.Errorf("open data file: %w", err)
		}
		defer f.Close()
		name, r = opts.dataPath, f
	}
	res, err := data.LoadAt(r, format, now)
	if err != nil {
		return data.Result{}, fmt.Errorf("load %s: %w", name, err)
	}
	return res, nil
}

// fileFetcher re-reads the data file on every call.
func fileFetcher(opts options, loc *time.Location) app.FetchFunc {
	return func() ([]timebrush.DataItem, error) {
		res, err := readObservations(opts, nil, time.Now().In(loc))
		if err != nil {
			return nil, err
		}
		return res.Items, nil
	}
}

// location returns the configured zone, falling back to the system zone.
func location(cfg *config.Config) *time.Location {
	loc, err := cfg.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

// bucketing returns the validated bucket settings.
func bucketing(cfg *config.Config) (data.Interval, data.Aggregation) {
	iv, err := data.ParseInterval(cfg.Data.Bucket)
	if err != nil {
		iv = data.NoBucket
	}
	agg, err := data.ParseAggregation(cfg.Data.Aggregate)
	if err != nil {
		agg = data.AggSum
	}
	return iv, agg
}

// coreOptions maps the widget settings onto timebrush options.
func coreOptions(cfg *config.Config) []timebrush.Option {
	var opts []timebrush.Option
	if d := cfg.Widget.Debounce.Duration; d > 0 {
		opts = append(opts, timebrush.WithDebounce(d))
	}
	return append(opts, timebrush.WithLocation(location(cfg)))
}

// parseSelection reads "start,end" with the same date rules as data files.
func parseSelection(s string, now time.Time) ([]time.Time, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("selection %q: want \"start,end\"", s)
	}
	out := make([]time.Time, 2)
	for i, p := range parts {
		t, err := coerce.DateAt(strings.TrimSpace(p), now)
		if err != nil {
			return nil, fmt.Errorf("selection %q: %w", s, err)
		}
		if t.IsZero() {
			return nil, fmt.Errorf("selection %q: empty bound", s)
		}
		out[i] = t
	}
	if out[1].Before(out[0]) {
		out[0], out[1] = out[1], out[0]
	}
	return out, nil
}

// formatSelection prints a selection as tab-separated RFC 3339 bounds
// followed by the nearest values, for scripts reading stdout.
func formatSelection(r []time.Time, nearest []timebrush.DataItem) string {
	if len(r) != 2 {
		return ""
	}
	line := r[0].Format(time.RFC3339) + "\t" + r[1].Format(time.RFC3339)
	if len(nearest) == 2 {
		line += fmt.Sprintf("\t%g\t%g", nearest[0].Value, nearest[1].Value)
	}
	return line
}
