package perf

import (
	"testing"
	"time"
)

func TestDefaultThresholds(t *testing.T) {
	seen := make(map[string]bool)
	for _, th := range DefaultThresholds() {
		if th.MaxNs <= 0 || th.MaxAlloc <= 0 {
			t.Errorf("%s: budgets must be positive, got %+v", th.Name, th)
		}
		if seen[th.Name] {
			t.Errorf("duplicate threshold name: %q", th.Name)
		}
		seen[th.Name] = true
		if _, ok := benchmarks[th.Name]; !ok {
			t.Errorf("threshold %q has no benchmark", th.Name)
		}
	}
	for name := range benchmarks {
		if !seen[name] {
			t.Errorf("benchmark %q has no threshold", name)
		}
	}
}

func TestCheckRegression(t *testing.T) {
	thresholds := []Threshold{
		{Name: "fast_op", MaxNs: 1_000, MaxAlloc: 100},
		{Name: "other_op", MaxNs: 1_000, MaxAlloc: 100},
	}

	tests := []struct {
		name    string
		results map[string]testing.BenchmarkResult
		want    []string
	}{
		{
			name: "within budget",
			results: map[string]testing.BenchmarkResult{
				"fast_op": {N: 1000, T: 100 * time.Microsecond, MemBytes: 64000},
			},
		},
		{
			name: "too slow",
			results: map[string]testing.BenchmarkResult{
				"fast_op": {N: 1, T: 10 * time.Millisecond},
			},
			want: []string{"fast_op/ns"},
		},
		{
			name: "too many bytes",
			results: map[string]testing.BenchmarkResult{
				"other_op": {N: 1, T: time.Nanosecond, MemBytes: 1000},
			},
			want: []string{"other_op/alloc"},
		},
		{
			name: "both fields in threshold order",
			results: map[string]testing.BenchmarkResult{
				"other_op": {N: 1, T: time.Millisecond},
				"fast_op":  {N: 1, T: time.Nanosecond, MemBytes: 1000},
			},
			want: []string{"fast_op/alloc", "other_op/ns"},
		},
		{
			name: "unknown and empty results ignored",
			results: map[string]testing.BenchmarkResult{
				"mystery": {N: 1, T: time.Hour},
				"fast_op": {},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckRegression(tt.results, thresholds)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d violations %+v, want %v", len(got), got, tt.want)
			}
			for i, v := range got {
				if key := v.Threshold.Name + "/" + v.Field; key != tt.want[i] {
					t.Errorf("violation %d = %s, want %s", i, key, tt.want[i])
				}
			}
		})
	}
}

func TestCheckRegressionEmptyInputs(t *testing.T) {
	if v := CheckRegression(nil, DefaultThresholds()); v != nil {
		t.Errorf("expected nil for nil results, got %v", v)
	}
	results := map[string]testing.BenchmarkResult{"feed_add": {N: 1, T: time.Second}}
	if v := CheckRegression(results, nil); v != nil {
		t.Errorf("expected nil for nil thresholds, got %v", v)
	}
}

func TestBrushedScene(t *testing.T) {
	s := pfBrushedScene()
	if !s.Visible || len(s.Bars) != 200 {
		t.Fatalf("scene visible=%v bars=%d", s.Visible, len(s.Bars))
	}
	if s.Brush.Extent.Width <= 0 {
		t.Errorf("brush extent width = %v, want > 0", s.Brush.Extent.Width)
	}
}
