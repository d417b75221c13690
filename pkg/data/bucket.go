package data

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// Aggregation folds the observations of one bucket into a value.
type Aggregation int

const (
	// AggSum adds the observation values.
	AggSum Aggregation = iota
	// AggCount counts the observations.
	AggCount
)

func (a Aggregation) String() string {
	switch a {
	case AggCount:
		return "count"
	default:
		return "sum"
	}
}

// ParseAggregation reads "sum" or "count".
func ParseAggregation(s string) (Aggregation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sum":
		return AggSum, nil
	case "count":
		return AggCount, nil
	}
	return AggSum, fmt.Errorf("unknown aggregation %q", s)
}

type calendarUnit int

const (
	unitNone calendarUnit = iota
	unitFixed
	unitDay
	unitWeek
	unitMonth
	unitYear
)

// Interval is a bucket width. Day and longer intervals follow the calendar
// of each observation's location; shorter ones are fixed durations.
type Interval struct {
	unit calendarUnit
	d    time.Duration
}

// Common intervals.
var (
	NoBucket = Interval{}
	Minute   = Interval{unit: unitFixed, d: time.Minute}
	Hour     = Interval{unit: unitFixed, d: time.Hour}
	Day      = Interval{unit: unitDay}
	Week     = Interval{unit: unitWeek}
	Month    = Interval{unit: unitMonth}
	Year     = Interval{unit: unitYear}
)

// Every returns a fixed-width interval. Non-positive durations disable
// bucketing.
func Every(d time.Duration) Interval {
	if d <= 0 {
		return NoBucket
	}
	return Interval{unit: unitFixed, d: d}
}

// ParseInterval reads a named interval (none, minute, hour, day, week,
// month, year) or a Go duration such as "15m".
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoBucket, nil
	case "minute":
		return Minute, nil
	case "hour":
		return Hour, nil
	case "day":
		return Day, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	case "year":
		return Year, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return NoBucket, fmt.Errorf("parse interval %q: %w", s, err)
	}
	if d <= 0 {
		return NoBucket, fmt.Errorf("parse interval %q: must be positive", s)
	}
	return Every(d), nil
}

func (iv Interval) String() string {
	switch iv.unit {
	case unitFixed:
		return iv.d.String()
	case unitDay:
		return "day"
	case unitWeek:
		return "week"
	case unitMonth:
		return "month"
	case unitYear:
		return "year"
	}
	return "none"
}

// Floor returns the start of the bucket containing t.
func (iv Interval) Floor(t time.Time) time.Time {
	loc := t.Location()
	switch iv.unit {
	case unitFixed:
		return t.Truncate(iv.d)
	case unitDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	case unitWeek:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		return d.AddDate(0, 0, -int(d.Weekday()))
	case unitMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case unitYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
	}
	return t
}

// Bucket groups observations by interval and folds each group with agg. The
// result is ordered by bucket start and holds one item per non-empty bucket.
// With NoBucket each observation is its own bucket. Non-finite values count
// as zero in sums.
func Bucket(obs []timebrush.DataItem, iv Interval, agg Aggregation) []timebrush.DataItem {
	buckets := make(map[int64]*timebrush.DataItem)
	order := make([]int64, 0)

	for _, o := range obs {
		if o.Date.IsZero() {
			continue
		}
		start := iv.Floor(o.Date)
		key := start.UnixNano()
		if iv.unit == unitNone {
			// Keep duplicates of the same instant apart.
			key = int64(len(order))
		}
		b, ok := buckets[key]
		if !ok {
			b = &timebrush.DataItem{Date: start}
			buckets[key] = b
			order = append(order, key)
		}
		switch agg {
		case AggCount:
			b.Value++
		default:
			if !math.IsNaN(o.Value) && !math.IsInf(o.Value, 0) {
				b.Value += o.Value
			}
		}
	}

	out := make([]timebrush.DataItem, 0, len(order))
	for _, k := range order {
		out = append(out, *buckets[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
