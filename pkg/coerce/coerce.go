// Package coerce turns loosely typed date values from data files and hosts
// into time.Time.
//
// The zero time with a nil error means "no value": nil, empty strings and nil
// pointers coerce to nothing rather than to an error, and callers skip such
// rows. Values that look like a date but cannot be read return
// ErrUnrecognized.
package coerce

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrUnrecognized is returned for values that cannot be read as a date.
var ErrUnrecognized = errors.New("unrecognized date")

// Year bounds for bare integers read as calendar years.
const (
	minYear = 1000
	maxYear = 9999
)

// isoLayouts are tried in order against date strings.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006",
	"2 Jan 2006",
}

// clockLayouts are times of day applied to the reference date.
var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
}

// Date coerces v relative to the current local time. See DateAt.
func Date(v any) (time.Time, error) {
	return DateAt(v, time.Now())
}

// DateAt coerces v. now supplies the date for bare times of day and the
// month for bare day numbers, and its location is used for every value that
// carries no zone of its own.
//
// Integral numbers between 1000 and 9999 are years, 1 through 31 are days of
// now's month, and any other number is milliseconds since the Unix epoch.
func DateAt(v any, now time.Time) (time.Time, error) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return x, nil
	case *time.Time:
		if x == nil {
			return time.Time{}, nil
		}
		return *x, nil
	case string:
		return parseString(x, now)
	case *string:
		if x == nil {
			return time.Time{}, nil
		}
		return parseString(*x, now)
	case int:
		return fromNumber(float64(x), now)
	case int32:
		return fromNumber(float64(x), now)
	case int64:
		return fromNumber(float64(x), now)
	case uint:
		return fromNumber(float64(x), now)
	case uint64:
		return fromNumber(float64(x), now)
	case float32:
		return fromNumber(float64(x), now)
	case float64:
		return fromNumber(x, now)
	case fmt.Stringer:
		return parseString(x.String(), now)
	}
	return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrUnrecognized, v)
}

func fromNumber(f float64, now time.Time) (time.Time, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, fmt.Errorf("%w: %v", ErrUnrecognized, f)
	}
	if f == math.Trunc(f) {
		n := int(f)
		switch {
		case n >= minYear && n <= maxYear:
			return time.Date(n, time.January, 1, 0, 0, 0, 0, now.Location()), nil
		case n >= 1 && n <= 31:
			return time.Date(now.Year(), now.Month(), n, 0, 0, 0, 0, now.Location()), nil
		}
	}
	ms := int64(math.Round(f))
	return time.UnixMilli(ms).In(now.Location()), nil
}

func parseString(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromNumber(f, now)
	}

	loc := now.Location()
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	for _, layout := range clockLayouts {
		t, err := time.ParseInLocation(layout, strings.ToUpper(s), loc)
		if err != nil {
			continue
		}
		return time.Date(now.Year(), now.Month(), now.Day(),
			t.Hour(), t.Minute(), t.Second(), 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, s)
}
