package timebrush

import (
	"sort"
	"time"
)

// Nearest scans items once and returns the item whose date is closest to
// lower and the item closest to upper. Ties keep the earliest scanned item.
// ok is false when items is empty.
func Nearest(items []DataItem, lower, upper time.Time) (lo, hi DataItem, ok bool) {
	if len(items) == 0 {
		return DataItem{}, DataItem{}, false
	}
	lo, hi = items[0], items[0]
	for _, item := range items[1:] {
		if distance(lower, item.Date) < distance(lower, lo.Date) {
			lo = item
		}
		if distance(upper, item.Date) < distance(upper, hi.Date) {
			hi = item
		}
	}
	return lo, hi, true
}

// distance is the absolute difference in milliseconds.
func distance(a, b time.Time) int64 {
	d := a.UnixMilli() - b.UnixMilli()
	if d < 0 {
		return -d
	}
	return d
}

// rangeChanged reports whether next differs from current. nil is "unset" and
// differs from any non-nil range, including an empty one; equal-length ranges
// differ when any endpoint differs at millisecond precision.
func rangeChanged(next, current []time.Time) bool {
	if (next == nil) != (current == nil) {
		return true
	}
	if len(next) != len(current) {
		return true
	}
	for i := range next {
		if next[i].UnixMilli() != current[i].UnixMilli() {
			return true
		}
	}
	return false
}

// normalizeRange copies r, preserving the nil/empty distinction, and orders
// a two-element range. Any other length is no selection.
func normalizeRange(r []time.Time) []time.Time {
	if r == nil || (len(r) != 0 && len(r) != 2) {
		return nil
	}
	out := make([]time.Time, len(r))
	copy(out, r)
	if len(out) == 2 && out[1].Before(out[0]) {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// extents returns the min/max date and max value over items; ok is false
// for an empty slice.
func extents(items []DataItem) (minDate, maxDate time.Time, maxValue float64, ok bool) {
	if len(items) == 0 {
		return time.Time{}, time.Time{}, 0, false
	}
	minDate, maxDate = items[0].Date, items[0].Date
	maxValue = sanitize(items[0].Value)
	for _, it := range items[1:] {
		if it.Date.Before(minDate) {
			minDate = it.Date
		}
		if it.Date.After(maxDate) {
			maxDate = it.Date
		}
		if v := sanitize(it.Value); v > maxValue {
			maxValue = v
		}
	}
	return minDate, maxDate, maxValue, true
}

// SortByDate returns a copy of items ordered by date. The widget does not
// need sorted input; hosts use this for display and export.
func SortByDate(items []DataItem) []DataItem {
	out := make([]DataItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
