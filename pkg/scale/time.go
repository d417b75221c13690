package scale

import (
	"fmt"
	"math"
	"time"
)

// Time maps a timestamp domain onto a numeric range. Timestamps are compared
// at millisecond precision. Calendar-sensitive operations (ticks, labels) use
// the scale's location.
type Time struct {
	t0, t1 time.Time
	set    bool
	r0, r1 float64
	loc    *time.Location
}

// NewTime returns a Time scale with an unset domain, range [0, 1] and the
// given location (nil means time.Local).
func NewTime(loc *time.Location) *Time {
	if loc == nil {
		loc = time.Local
	}
	return &Time{r1: 1, loc: loc}
}

// Location returns the location used for ticks and labels.
func (s *Time) Location() *time.Location {
	return s.loc
}

// SetDomain sets the input interval.
func (s *Time) SetDomain(t0, t1 time.Time) {
	s.t0, s.t1, s.set = t0, t1, true
}

// ClearDomain unsets the domain. Map then returns NaN so callers can detect
// positions that cannot be computed.
func (s *Time) ClearDomain() {
	s.t0, s.t1, s.set = time.Time{}, time.Time{}, false
}

// Domain returns the input interval and whether it is set.
func (s *Time) Domain() (time.Time, time.Time, bool) {
	return s.t0, s.t1, s.set
}

// SetRange sets the output interval.
func (s *Time) SetRange(r0, r1 float64) {
	s.r0, s.r1 = finite(r0), finite(r1)
}

// Range returns the output interval.
func (s *Time) Range() (float64, float64) {
	return s.r0, s.r1
}

// Map converts a timestamp to its range position. It returns NaN when the
// domain is unset; a degenerate domain maps every input to the range start.
func (s *Time) Map(t time.Time) float64 {
	if !s.set {
		return math.NaN()
	}
	m0 := float64(s.t0.UnixMilli())
	span := float64(s.t1.UnixMilli()) - m0
	if span == 0 {
		return s.r0
	}
	return s.r0 + (float64(t.UnixMilli())-m0)/span*(s.r1-s.r0)
}

// Invert converts a range position back to a timestamp, rounded to the
// millisecond. It returns the zero time when the domain is unset.
func (s *Time) Invert(px float64) time.Time {
	if !s.set {
		return time.Time{}
	}
	span := s.r1 - s.r0
	if span == 0 {
		return s.t0
	}
	m0 := float64(s.t0.UnixMilli())
	m1 := float64(s.t1.UnixMilli())
	ms := m0 + (px-s.r0)/span*(m1-m0)
	return time.UnixMilli(int64(math.Round(ms))).In(s.loc)
}

// Ticks returns roughly count evenly spaced, calendar-aligned timestamps
// within the domain. It returns nil for an unset or degenerate domain or a
// non-positive count.
func (s *Time) Ticks(count float64) []time.Time {
	if !s.set || count <= 0 || math.IsNaN(count) {
		return nil
	}
	t0, t1 := s.t0.In(s.loc), s.t1.In(s.loc)
	if t1.Before(t0) {
		t0, t1 = t1, t0
	}
	spanMS := float64(t1.UnixMilli() - t0.UnixMilli())
	if spanMS <= 0 {
		return nil
	}
	iv := chooseInterval(spanMS, count)
	return iv.between(t0, t1)
}

// Format renders a tick label, choosing the coarsest field at which t is
// not aligned.
func (s *Time) Format(t time.Time) string {
	t = t.In(s.loc)
	switch {
	case t.Nanosecond()/int(time.Millisecond) != 0:
		return fmt.Sprintf(".%03d", t.Nanosecond()/int(time.Millisecond))
	case t.Second() != 0:
		return fmt.Sprintf(":%02d", t.Second())
	case t.Minute() != 0:
		return t.Format("03:04")
	case t.Hour() != 0:
		return t.Format("03 PM")
	case t.Weekday() != time.Sunday && t.Day() != 1:
		return t.Format("Mon 02")
	case t.Day() != 1:
		return t.Format("Jan 02")
	case t.Month() != time.January:
		return t.Format("January")
	default:
		return t.Format("2006")
	}
}
