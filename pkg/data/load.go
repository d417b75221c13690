package data

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/timebrush/pkg/coerce"
	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// Format is a data file encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned when a format cannot be determined.
var ErrUnknownFormat = errors.New("unknown data format")

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// ParseFormat reads a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Result is the outcome of a load.
type Result struct {
	Items []timebrush.DataItem
	// Skipped counts rows whose date coerced to no value.
	Skipped int
}

// record is one row before coercion. A missing value counts as one
// occurrence, so event logs load as counts.
type record struct {
	Date  any `json:"date" yaml:"date"`
	Value any `json:"value" yaml:"value"`
}

// LoadFile reads path, detecting its format from the extension.
func LoadFile(path string) (Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Result{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	res, err := Load(f, format)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", path, err)
	}
	return res, nil
}

// Load reads observations in the given format, coercing dates relative to
// the current time.
func Load(r io.Reader, format Format) (Result, error) {
	return LoadAt(r, format, time.Now())
}

// LoadAt is Load with an explicit reference time for date coercion.
func LoadAt(r io.Reader, format Format, now time.Time) (Result, error) {
	var (
		recs []record
		err  error
	)
	switch format {
	case FormatCSV:
		recs, err = readCSV(r)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&recs)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&recs)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Result{}, fmt.Errorf("decode %s: %w", format, err)
	}

	res := Result{Items: make([]timebrush.DataItem, 0, len(recs))}
	for i, rec := range recs {
		date, err := coerce.DateAt(rec.Date, now)
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		if date.IsZero() {
			res.Skipped++
			continue
		}
		value, err := coerceValue(rec.Value)
		if err != nil {
			return Result{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		res.Items = append(res.Items, timebrush.DataItem{Date: date, Value: value})
	}
	return res, nil
}

// readCSV reads a date column and an optional value column. A header row
// naming "date" and "value" selects the columns; otherwise the first two
// columns are used.
func readCSV(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	dateCol, valueCol := 0, 1
	if cols, ok := csvHeader(rows[0]); ok {
		dateCol, valueCol = cols[0], cols[1]
		rows = rows[1:]
	}

	recs := make([]record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, rowRecord(row, dateCol, valueCol))
	}
	return recs, nil
}

// rowRecord picks the date and value cells out of a CSV row. A blank value
// cell is a missing value.
func rowRecord(row []string, dateCol, valueCol int) record {
	var rec record
	if dateCol < len(row) {
		rec.Date = row[dateCol]
	}
	if valueCol >= 0 && valueCol < len(row) && strings.TrimSpace(row[valueCol]) != "" {
		rec.Value = row[valueCol]
	}
	return rec
}

// csvHeader reports whether row is a header and, if so, the date and value
// column indexes. A header without a value column yields -1 for it.
func csvHeader(row []string) ([2]int, bool) {
	cols := [2]int{-1, -1}
	for i, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "date", "time", "timestamp":
			if cols[0] < 0 {
				cols[0] = i
			}
		case "value", "count":
			if cols[1] < 0 {
				cols[1] = i
			}
		}
	}
	return cols, cols[0] >= 0
}

func coerceValue(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 1, nil
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 1, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid value %q: %w", x, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("invalid value of type %T", v)
}
