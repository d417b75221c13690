package perf

import (
	"io"
	"os"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/components"
	"gitlab.com/tinyland/lab/timebrush/pkg/data"
	"gitlab.com/tinyland/lab/timebrush/pkg/debounce"
	"gitlab.com/tinyland/lab/timebrush/pkg/render"
	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

var refTime = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

// pfSeries returns n hourly observations ending at refTime.
func pfSeries(n int) []timebrush.DataItem {
	items := make([]timebrush.DataItem, n)
	start := refTime.Add(-time.Duration(n) * time.Hour)
	for i := range items {
		items[i] = timebrush.DataItem{
			Date:  start.Add(time.Duration(i) * time.Hour),
			Value: float64((i*37)%100) + 0.5,
		}
	}
	return items
}

// pfBrush returns a loaded, visible widget on a manual clock.
func pfBrush(n int) (*timebrush.TimeBrush, *debounce.ManualClock) {
	clock := debounce.NewManualClock(refTime)
	tb := timebrush.New(nil, &timebrush.Dimensions{Width: 500, Height: 500},
		timebrush.WithClock(clock), timebrush.WithLocation(time.UTC))
	tb.SetData(pfSeries(n))
	return tb, clock
}

// pfBrushedScene returns a scene with data and an active brush.
func pfBrushedScene() timebrush.Scene {
	tb, clock := pfBrush(200)
	defer tb.Close()
	tb.BeginBrush(100)
	tb.DragBrush(300)
	tb.EndBrush()
	clock.Advance(timebrush.DefaultDebounce)
	return tb.Scene()
}

func benchSetData(b *testing.B) {
	tb, _ := pfBrush(0)
	defer tb.Close()
	items := pfSeries(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tb.SetData(items)
	}
}

func benchGesture(b *testing.B) {
	tb, clock := pfBrush(500)
	defer tb.Close()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tb.BeginBrush(50)
		tb.DragBrush(150)
		tb.DragBrush(250)
		tb.EndBrush()
		clock.Advance(timebrush.DefaultDebounce)
	}
}

func benchSceneTerminal(b *testing.B) {
	s := pfBrushedScene()
	st := components.DefaultSceneStyle()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = components.RenderScene(s, 120, 30, st)
	}
}

func benchSVG(b *testing.B) {
	s := pfBrushedScene()
	st := render.DefaultStyle()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := render.SVG(io.Discard, s, st); err != nil {
			b.Fatal(err)
		}
	}
}

func benchPNG(b *testing.B) {
	s := pfBrushedScene()
	st := render.DefaultStyle()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = render.Image(s, st)
	}
}

func benchBucketDay(b *testing.B) {
	obs := pfSeries(10000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = data.Bucket(obs, data.Day, data.AggSum)
	}
}

func benchFeedAdd(b *testing.B) {
	feed := data.NewFeed(data.FeedConfig{Retention: 365 * 24 * time.Hour, MaxPoints: 1000})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		feed.Add(time.Now(), float64(i))
	}
}

// benchmarks maps threshold names to the benchmark that measures them.
var benchmarks = map[string]func(*testing.B){
	"set_data_1k":    benchSetData,
	"brush_gesture":  benchGesture,
	"scene_terminal": benchSceneTerminal,
	"svg_render":     benchSVG,
	"png_render":     benchPNG,
	"bucket_day_10k": benchBucketDay,
	"feed_add":       benchFeedAdd,
}

func BenchmarkSetData1k(b *testing.B) { benchSetData(b) }
func BenchmarkBrushGesture(b *testing.B) { benchGesture(b) }
func BenchmarkSceneTerminal(b *testing.B) { benchSceneTerminal(b) }
func BenchmarkSVGRender(b *testing.B) { benchSVG(b) }
func BenchmarkPNGRender(b *testing.B) { benchPNG(b) }
func BenchmarkBucketDay10k(b *testing.B) { benchBucketDay(b) }
func BenchmarkFeedAdd(b *testing.B) { benchFeedAdd(b) }

// TestBudgets runs every benchmark and fails on a budget breach. Timing is
// machine dependent, so it only runs with PERF_BUDGETS=1.
func TestBudgets(t *testing.T) {
	if os.Getenv("PERF_BUDGETS") != "1" {
		t.Skip("set PERF_BUDGETS=1 to check performance budgets")
	}
	results := make(map[string]testing.BenchmarkResult, len(benchmarks))
	for name, fn := range benchmarks {
		results[name] = testing.Benchmark(fn)
		t.Logf("%-16s %s %s", name, results[name].String(), results[name].MemString())
	}
	for _, v := range CheckRegression(results, DefaultThresholds()) {
		t.Errorf("%s: %s %d exceeds budget", v.Threshold.Name, v.Field, v.Actual)
	}
}
