// Package perf holds the performance budgets for the brushing widget's hot
// paths and the benchmarks that measure them.
package perf

import "testing"

// Threshold defines a performance budget for a named operation.
type Threshold struct {
	// Name identifies the operation (must match a key of the results map).
	Name string

	// MaxNs is the maximum allowed nanoseconds per operation.
	MaxNs int64

	// MaxAlloc is the maximum allowed bytes allocated per operation.
	MaxAlloc int64
}

// Violation records a threshold breach for a specific benchmark.
type Violation struct {
	// Threshold is the budget that was exceeded.
	Threshold Threshold

	// Actual is the measured value that exceeded the threshold.
	Actual int64

	// Field indicates which metric was violated: "ns" for time or "alloc"
	// for memory allocation.
	Field string
}

// DefaultThresholds returns the budgets for the paths a user waits on.
//
//   - set_data_1k: rescale and redraw after a data refresh
//   - brush_gesture: one press, drag and release cycle
//   - scene_terminal: one dashboard frame at 120 columns
//   - svg_render / png_render: exports of a 500x500 chart
//   - bucket_day_10k: aggregating a full feed into days
//   - feed_add: one streamed observation
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Name: "set_data_1k", MaxNs: 5_000_000, MaxAlloc: 1_048_576},
		{Name: "brush_gesture", MaxNs: 1_000_000, MaxAlloc: 131072},
		{Name: "scene_terminal", MaxNs: 10_000_000, MaxAlloc: 1_048_576},
		{Name: "svg_render", MaxNs: 20_000_000, MaxAlloc: 4_194_304},
		{Name: "png_render", MaxNs: 50_000_000, MaxAlloc: 8_388_608},
		{Name: "bucket_day_10k", MaxNs: 20_000_000, MaxAlloc: 4_194_304},
		{Name: "feed_add", MaxNs: 100_000, MaxAlloc: 4096},
	}
}

// CheckRegression compares benchmark results against thresholds and returns
// all violations found, in threshold order. Results without a threshold and
// thresholds without a result are ignored.
func CheckRegression(results map[string]testing.BenchmarkResult, thresholds []Threshold) []Violation {
	if len(results) == 0 || len(thresholds) == 0 {
		return nil
	}

	var violations []Violation
	for _, t := range thresholds {
		r, ok := results[t.Name]
		if !ok || r.N == 0 {
			continue
		}

		if ns := r.NsPerOp(); t.MaxNs > 0 && ns > t.MaxNs {
			violations = append(violations, Violation{Threshold: t, Actual: ns, Field: "ns"})
		}
		if alloc := r.AllocedBytesPerOp(); t.MaxAlloc > 0 && alloc > t.MaxAlloc {
			violations = append(violations, Violation{Threshold: t, Actual: alloc, Field: "alloc"})
		}
	}
	return violations
}
