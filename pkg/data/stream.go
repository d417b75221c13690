package data

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gitlab.com/tinyland/lab/timebrush/pkg/coerce"
)

// StreamStats counts the rows Stream handled.
type StreamStats struct {
	Added   int
	Skipped int
	Invalid int
}

// Stream reads CSV observations from r into feed one row at a time until r
// is exhausted or ctx is done. It accepts the same columns as Load. Rows
// that cannot be read are logged and counted, not fatal. Cancellation is
// checked between rows.
func Stream(ctx context.Context, r io.Reader, feed *Feed, logger *slog.Logger) (StreamStats, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var stats StreamStats
	dateCol, valueCol := 0, 1
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				stats.Invalid++
				logger.Debug("stream row unreadable", "line", perr.Line, "error", perr.Err)
				continue
			}
			return stats, fmt.Errorf("read stream: %w", err)
		}

		if first {
			first = false
			if cols, ok := csvHeader(row); ok {
				dateCol, valueCol = cols[0], cols[1]
				continue
			}
		}

		rec := rowRecord(row, dateCol, valueCol)
		date, err := coerce.DateAt(rec.Date, feed.now())
		if err != nil {
			stats.Invalid++
			logger.Debug("stream row has a bad date", "date", rec.Date, "error", err)
			continue
		}
		if date.IsZero() {
			stats.Skipped++
			continue
		}
		value, err := coerceValue(rec.Value)
		if err != nil {
			stats.Invalid++
			logger.Debug("stream row has a bad value", "value", rec.Value, "error", err)
			continue
		}
		feed.Add(date, value)
		stats.Added++
	}
}
