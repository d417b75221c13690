package scale

import (
	"math"
	"sort"
	"time"
)

type unit int

const (
	unitMillisecond unit = iota
	unitSecond
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitMonth
	unitYear
)

// interval is a calendar unit with a step; ticks fall on unit boundaries
// whose field value is a multiple of step.
type interval struct {
	unit unit
	step int
}

// tickLadder lists candidate intervals in increasing duration. approxMS is
// the nominal length used to pick the interval closest to the target span.
var tickLadder = []struct {
	iv       interval
	approxMS float64
}{
	{interval{unitSecond, 1}, 1e3},
	{interval{unitSecond, 5}, 5e3},
	{interval{unitSecond, 15}, 15e3},
	{interval{unitSecond, 30}, 30e3},
	{interval{unitMinute, 1}, 60e3},
	{interval{unitMinute, 5}, 300e3},
	{interval{unitMinute, 15}, 900e3},
	{interval{unitMinute, 30}, 1800e3},
	{interval{unitHour, 1}, 3600e3},
	{interval{unitHour, 3}, 10800e3},
	{interval{unitHour, 6}, 21600e3},
	{interval{unitHour, 12}, 43200e3},
	{interval{unitDay, 1}, 86400e3},
	{interval{unitDay, 2}, 172800e3},
	{interval{unitWeek, 1}, 604800e3},
	{interval{unitMonth, 1}, 2592e6},
	{interval{unitMonth, 3}, 7776e6},
	{interval{unitYear, 1}, 31536e6},
}

// maxTickIterations bounds boundary walking for pathological spans.
const maxTickIterations = 100000

func chooseInterval(spanMS, count float64) interval {
	target := spanMS / count
	i := sort.Search(len(tickLadder), func(i int) bool {
		return tickLadder[i].approxMS > target
	})
	switch {
	case i == len(tickLadder):
		years := spanMS / 31536e6
		return interval{unitYear, int(math.Max(1, linearTickStep(years, count)))}
	case i == 0:
		return interval{unitMillisecond, int(math.Max(1, linearTickStep(spanMS, count)))}
	}
	lo, hi := tickLadder[i-1], tickLadder[i]
	if target/lo.approxMS < hi.approxMS/target {
		return lo.iv
	}
	return hi.iv
}

// linearTickStep returns a 1, 2 or 5 multiple of a power of ten that splits
// span into roughly count parts.
func linearTickStep(span, count float64) float64 {
	if span <= 0 || count <= 0 {
		return 1
	}
	step := math.Pow(10, math.Floor(math.Log10(span/count)))
	errRatio := count / span * step
	switch {
	case errRatio <= 0.15:
		step *= 10
	case errRatio <= 0.35:
		step *= 5
	case errRatio <= 0.75:
		step *= 2
	}
	return step
}

// between returns the interval boundaries in [t0, t1].
func (iv interval) between(t0, t1 time.Time) []time.Time {
	if iv.unit == unitMillisecond {
		return iv.millisBetween(t0, t1)
	}
	if iv.unit == unitYear {
		return iv.yearsBetween(t0, t1)
	}

	var ticks []time.Time
	t := iv.floor(t0)
	for n := 0; !t.After(t1) && n < maxTickIterations; n++ {
		if !t.Before(t0) && iv.matches(t) {
			ticks = append(ticks, t)
		}
		t = iv.next(t)
	}
	return ticks
}

func (iv interval) millisBetween(t0, t1 time.Time) []time.Time {
	step := int64(iv.step)
	start := t0.UnixMilli()
	first := (start + step - 1) / step * step
	if start < 0 && start%step != 0 {
		first = start / step * step
	}
	var ticks []time.Time
	for ms, n := first, 0; ms <= t1.UnixMilli() && n < maxTickIterations; ms, n = ms+step, n+1 {
		ticks = append(ticks, time.UnixMilli(ms).In(t0.Location()))
	}
	return ticks
}

func (iv interval) yearsBetween(t0, t1 time.Time) []time.Time {
	step := iv.step
	y := t0.Year()
	if r := y % step; r != 0 {
		if r < 0 {
			r += step
		}
		y += step - r
	}
	var ticks []time.Time
	for n := 0; n < maxTickIterations; n++ {
		t := time.Date(y, time.January, 1, 0, 0, 0, 0, t0.Location())
		if t.After(t1) {
			break
		}
		if !t.Before(t0) {
			ticks = append(ticks, t)
		}
		y += step
	}
	return ticks
}

// floor truncates t to the start of its unit.
func (iv interval) floor(t time.Time) time.Time {
	loc := t.Location()
	y, mo, d := t.Date()
	switch iv.unit {
	case unitSecond:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
	case unitMinute:
		return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, loc)
	case unitHour:
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, loc)
	case unitDay:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case unitWeek:
		return time.Date(y, mo, d-int(t.Weekday()), 0, 0, 0, 0, loc)
	case unitMonth:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
}

// next advances t by one unit.
func (iv interval) next(t time.Time) time.Time {
	switch iv.unit {
	case unitSecond:
		return t.Add(time.Second)
	case unitMinute:
		return t.Add(time.Minute)
	case unitHour:
		return t.Add(time.Hour)
	case unitDay:
		return t.AddDate(0, 0, 1)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(1, 0, 0)
	}
}

// matches reports whether the boundary t falls on a multiple of the step.
func (iv interval) matches(t time.Time) bool {
	if iv.step <= 1 {
		return true
	}
	switch iv.unit {
	case unitSecond:
		return t.Second()%iv.step == 0
	case unitMinute:
		return t.Minute()%iv.step == 0
	case unitHour:
		return t.Hour()%iv.step == 0
	case unitDay:
		return (t.Day()-1)%iv.step == 0
	case unitMonth:
		return int(t.Month()-1)%iv.step == 0
	default:
		return true
	}
}
