// Package scale provides continuous scales that map a data domain onto a
// pixel range: Linear for values and Time for timestamps.
package scale

import "math"

// Linear maps a numeric domain [D0, D1] onto a range [R0, R1].
// A degenerate domain (D0 == D1) maps every input to R0.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear returns a Linear scale with domain and range [0, 1].
func NewLinear() *Linear {
	return &Linear{d1: 1, r1: 1}
}

// SetDomain sets the input interval. Non-finite bounds are replaced by 0.
func (s *Linear) SetDomain(d0, d1 float64) {
	s.d0, s.d1 = finite(d0), finite(d1)
}

// Domain returns the input interval.
func (s *Linear) Domain() (float64, float64) {
	return s.d0, s.d1
}

// SetRange sets the output interval.
func (s *Linear) SetRange(r0, r1 float64) {
	s.r0, s.r1 = finite(r0), finite(r1)
}

// Range returns the output interval.
func (s *Linear) Range() (float64, float64) {
	return s.r0, s.r1
}

// Map converts a domain value to its range position.
func (s *Linear) Map(v float64) float64 {
	span := s.d1 - s.d0
	if span == 0 {
		return s.r0
	}
	return s.r0 + (v-s.d0)/span*(s.r1-s.r0)
}

// Invert converts a range position back to a domain value.
func (s *Linear) Invert(px float64) float64 {
	span := s.r1 - s.r0
	if span == 0 {
		return s.d0
	}
	return s.d0 + (px-s.r0)/span*(s.d1-s.d0)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
