package scale

import (
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLinearMapAndInvert(t *testing.T) {
	s := NewLinear()
	s.SetDomain(0, 20)
	s.SetRange(480, 0)

	tests := []struct {
		v, px float64
	}{
		{0, 480},
		{20, 0},
		{5, 360},
		{10, 240},
	}
	for _, tt := range tests {
		if got := s.Map(tt.v); got != tt.px {
			t.Errorf("Map(%v) = %v, want %v", tt.v, got, tt.px)
		}
		if got := s.Invert(tt.px); got != tt.v {
			t.Errorf("Invert(%v) = %v, want %v", tt.px, got, tt.v)
		}
	}
}

func TestLinearDegenerateDomain(t *testing.T) {
	s := NewLinear()
	s.SetDomain(0, 0)
	s.SetRange(100, 0)
	if got := s.Map(42); got != 100 {
		t.Errorf("Map on degenerate domain = %v, want range start 100", got)
	}
}

func TestLinearNonFiniteDomain(t *testing.T) {
	s := NewLinear()
	s.SetDomain(0, math.NaN())
	d0, d1 := s.Domain()
	if d0 != 0 || d1 != 0 {
		t.Errorf("Domain = [%v, %v], want [0, 0]", d0, d1)
	}
	if got := s.Map(3); math.IsNaN(got) {
		t.Error("Map must not produce NaN for a sanitized domain")
	}
}

func TestTimeMapAndInvert(t *testing.T) {
	s := NewTime(time.UTC)
	s.SetDomain(day(2020, 1, 1), day(2020, 1, 11))
	s.SetRange(0, 1000)

	if got := s.Map(day(2020, 1, 6)); got != 500 {
		t.Errorf("Map(mid) = %v, want 500", got)
	}
	if got := s.Invert(100); !got.Equal(day(2020, 1, 2)) {
		t.Errorf("Invert(100) = %v, want 2020-01-02", got)
	}
}

func TestTimeUnsetDomain(t *testing.T) {
	s := NewTime(time.UTC)
	s.SetRange(0, 100)
	if got := s.Map(day(2020, 1, 1)); !math.IsNaN(got) {
		t.Errorf("Map on unset domain = %v, want NaN", got)
	}
	if got := s.Invert(10); !got.IsZero() {
		t.Errorf("Invert on unset domain = %v, want zero time", got)
	}
	if ticks := s.Ticks(5); ticks != nil {
		t.Errorf("Ticks on unset domain = %v, want nil", ticks)
	}
}

func TestTimeDegenerateDomain(t *testing.T) {
	s := NewTime(time.UTC)
	s.SetDomain(day(2020, 1, 1), day(2020, 1, 1))
	s.SetRange(0, 100)
	if got := s.Map(day(2020, 1, 1)); got != 0 {
		t.Errorf("Map on single-instant domain = %v, want 0", got)
	}
	if ticks := s.Ticks(5); ticks != nil {
		t.Errorf("Ticks on single-instant domain = %v, want nil", ticks)
	}
}

func TestTicksDaily(t *testing.T) {
	s := NewTime(time.UTC)
	s.SetDomain(day(2020, 1, 1), day(2020, 1, 10))
	// 9 days over ~9 ticks picks the 1-day interval.
	ticks := s.Ticks(9)
	if len(ticks) != 10 {
		t.Fatalf("len(ticks) = %d, want 10: %v", len(ticks), ticks)
	}
	for i, tk := range ticks {
		want := day(2020, 1, 1+i)
		if !tk.Equal(want) {
			t.Errorf("tick %d = %v, want %v", i, tk, want)
		}
	}
}

func TestTicksTwoDayStepAlignsToOddDays(t *testing.T) {
	s := NewTime(time.UTC)
	s.SetDomain(day(2020, 1, 2), day(2020, 1, 12))
	ticks := s.Ticks(5)
	if len(ticks) == 0 {
		t.Fatal("expected ticks")
	}
	for _, tk := range ticks {
		if (tk.Day()-1)%2 != 0 {
			t.Errorf("tick %v is not on a 2-day boundary", tk)
		}
	}
}

func TestTicksMonthly(t *testing.T) {
	s := NewTime(time.UTC)
	s.SetDomain(day(2020, 1, 15), day(2020, 12, 15))
	ticks := s.Ticks(11)
	if len(ticks) == 0 {
		t.Fatal("expected ticks")
	}
	for _, tk := range ticks {
		if tk.Day() != 1 || tk.Hour() != 0 {
			t.Errorf("monthly tick %v not at start of month", tk)
		}
	}
	if !ticks[0].Equal(day(2020, 2, 1)) {
		t.Errorf("first tick = %v, want 2020-02-01", ticks[0])
	}
}

func TestTicksYearsUseLinearStep(t *testing.T) {
	s := NewTime(time.UTC)
	s.SetDomain(day(1900, 1, 1), day(2000, 1, 1))
	ticks := s.Ticks(5)
	if len(ticks) == 0 {
		t.Fatal("expected ticks")
	}
	for _, tk := range ticks {
		if tk.Year()%20 != 0 {
			t.Errorf("tick %v not on a 20-year step", tk)
		}
	}
}

func TestTicksMilliseconds(t *testing.T) {
	s := NewTime(time.UTC)
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s.SetDomain(base, base.Add(100*time.Millisecond))
	ticks := s.Ticks(5)
	if len(ticks) != 6 {
		t.Fatalf("len(ticks) = %d, want 6: %v", len(ticks), ticks)
	}
	if got := ticks[1].Sub(ticks[0]); got != 20*time.Millisecond {
		t.Errorf("tick spacing = %v, want 20ms", got)
	}
}

func TestTicksNonPositiveCount(t *testing.T) {
	s := NewTime(time.UTC)
	s.SetDomain(day(2020, 1, 1), day(2020, 2, 1))
	if ticks := s.Ticks(0); ticks != nil {
		t.Errorf("Ticks(0) = %v, want nil", ticks)
	}
}

func TestChooseIntervalPicksCloser(t *testing.T) {
	// 10 hours over 4 ticks: target 2.5h sits between 1h and 3h; 3h is closer
	// by ratio (3/2.5 < 2.5/1).
	iv := chooseInterval(10*3600e3, 4)
	if iv.unit != unitHour || iv.step != 3 {
		t.Errorf("interval = %+v, want 3-hour", iv)
	}
}

func TestFormat(t *testing.T) {
	s := NewTime(time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2020, 3, 4, 5, 6, 7, 8e6, time.UTC), ".008"},
		{time.Date(2020, 3, 4, 5, 6, 7, 0, time.UTC), ":07"},
		{time.Date(2020, 3, 4, 17, 6, 0, 0, time.UTC), "05:06"},
		{time.Date(2020, 3, 4, 17, 0, 0, 0, time.UTC), "05 PM"},
		{day(2020, 3, 4), "Wed 04"},
		{day(2020, 3, 8), "Mar 08"},
		{day(2020, 3, 1), "March"},
		{day(2020, 1, 1), "2020"},
	}
	for _, tt := range tests {
		if got := s.Format(tt.t); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}
