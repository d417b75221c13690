package data

import (
	"context"
	"sync"
	"testing"
	"time"
)

// ---------- helpers ----------

func baseTime() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func addN(f *Feed, n int, interval time.Duration) {
	t := baseTime()
	for i := 0; i < n; i++ {
		f.Add(t.Add(time.Duration(i)*interval), float64(i))
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ---------- Feed basics ----------

func TestFeedDefaults(t *testing.T) {
	cfg := NewFeed(FeedConfig{}).Config()
	if cfg.Retention != 24*time.Hour || cfg.MaxPoints != 10000 || cfg.PruneInterval != 30*time.Second {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestFeedAddKeepsTimeOrder(t *testing.T) {
	f := NewFeed(FeedConfig{})
	t0 := baseTime()
	f.Add(t0.Add(2*time.Second), 2)
	f.Add(t0, 0)
	f.Add(t0.Add(3*time.Second), 3)
	f.Add(t0.Add(time.Second), 1)

	snap := f.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 points, got %d", len(snap))
	}
	for i, it := range snap {
		if it.Value != float64(i) {
			t.Errorf("point %d: expected %d, got %f", i, i, it.Value)
		}
	}
}

func TestFeedSnapshotIsolation(t *testing.T) {
	f := NewFeed(FeedConfig{})
	addN(f, 3, time.Second)

	snap := f.Snapshot()
	snap[0].Value = 999
	if again := f.Snapshot(); again[0].Value != 0 {
		t.Error("mutating a snapshot changed the feed")
	}
}

func TestFeedRange(t *testing.T) {
	f := NewFeed(FeedConfig{})
	addN(f, 10, time.Minute)

	got := f.Range(baseTime().Add(2*time.Minute), baseTime().Add(5*time.Minute))
	if len(got) != 4 {
		t.Fatalf("expected 4 points in range, got %d", len(got))
	}
	if got[0].Value != 2 || got[3].Value != 5 {
		t.Errorf("range = %v", got)
	}

	empty := f.Range(baseTime().Add(time.Hour), baseTime().Add(2*time.Hour))
	if empty == nil || len(empty) != 0 {
		t.Errorf("empty range = %#v, want empty non-nil", empty)
	}
}

func TestFeedSinceUsesClock(t *testing.T) {
	f := NewFeed(FeedConfig{})
	f.now = fixedNow(baseTime().Add(10 * time.Minute))
	addN(f, 11, time.Minute)

	if got := f.Since(3 * time.Minute); len(got) != 4 {
		t.Errorf("Since(3m) = %d points, want 4", len(got))
	}
}

func TestFeedLastAndLatest(t *testing.T) {
	f := NewFeed(FeedConfig{})
	if _, ok := f.Latest(); ok {
		t.Error("Latest on empty feed should report false")
	}
	addN(f, 5, time.Second)

	last := f.Last(2)
	if len(last) != 2 || last[0].Value != 3 || last[1].Value != 4 {
		t.Errorf("Last(2) = %v", last)
	}
	if got := f.Last(100); len(got) != 5 {
		t.Errorf("Last(100) = %d points, want 5", len(got))
	}
	if got := f.Last(0); len(got) != 0 {
		t.Errorf("Last(0) = %d points, want 0", len(got))
	}
	latest, ok := f.Latest()
	if !ok || latest.Value != 4 {
		t.Errorf("Latest = %v, %v", latest, ok)
	}
}

func TestFeedMaxPoints(t *testing.T) {
	f := NewFeed(FeedConfig{MaxPoints: 5})
	addN(f, 12, time.Second)

	snap := f.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("expected 5 points, got %d", len(snap))
	}
	if snap[0].Value != 7 {
		t.Errorf("oldest kept = %v, want 7", snap[0].Value)
	}
}

// ---------- Prune ----------

func TestPruneRemovesOldData(t *testing.T) {
	f := NewFeed(FeedConfig{Retention: 5 * time.Minute})
	f.now = fixedNow(baseTime().Add(10 * time.Minute))
	addN(f, 11, time.Minute)

	stats := f.Prune()
	if stats.PointsRemoved != 6 {
		t.Errorf("removed %d, want 6", stats.PointsRemoved)
	}
	if f.Len() != 5 {
		t.Errorf("Len = %d, want 5", f.Len())
	}
	if f.PruneStats().PointsRemoved != 6 {
		t.Error("PruneStats should report the last cycle")
	}
}

func TestPruneSkipsFrozenFeed(t *testing.T) {
	f := NewFeed(FeedConfig{Retention: time.Minute})
	f.now = fixedNow(baseTime().Add(time.Hour))
	addN(f, 5, time.Second)

	tok := f.Freeze()
	if stats := f.Prune(); stats.PointsRemoved != 0 {
		t.Errorf("pruned %d points while frozen", stats.PointsRemoved)
	}
	f.Unfreeze(tok)
	if stats := f.Prune(); stats.PointsRemoved != 5 {
		t.Errorf("pruned %d points after unfreeze, want 5", stats.PointsRemoved)
	}
}

func TestFeedVersion(t *testing.T) {
	f := NewFeed(FeedConfig{Retention: time.Minute})
	f.now = fixedNow(baseTime().Add(time.Hour))
	v0 := f.Version()

	f.Add(baseTime(), 1)
	v1 := f.Version()
	if v1 == v0 {
		t.Fatal("Add should bump the version")
	}
	f.AddItems(nil)
	if f.Version() != v1 {
		t.Error("empty batch should not bump the version")
	}

	tok := f.Freeze()
	f.Add(baseTime().Add(time.Second), 2)
	if f.Version() != v1 {
		t.Error("buffered adds should not bump the version while frozen")
	}
	f.Unfreeze(tok)
	v2 := f.Version()
	if v2 == v1 {
		t.Error("merging buffered adds should bump the version")
	}

	f.Prune()
	if f.Version() == v2 {
		t.Error("pruning points should bump the version")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	f := NewFeed(FeedConfig{PruneInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// ---------- Freeze ----------

func TestFreezeBuffersAndMerges(t *testing.T) {
	f := NewFeed(FeedConfig{})
	addN(f, 3, time.Second)

	tok := f.Freeze()
	if !f.IsFrozen() {
		t.Fatal("expected frozen")
	}
	f.Add(baseTime().Add(10*time.Second), 10)
	if f.Len() != 3 {
		t.Errorf("frozen Len = %d, want 3", f.Len())
	}

	f.Unfreeze(tok)
	if f.IsFrozen() {
		t.Error("expected unfrozen")
	}
	if f.Len() != 4 {
		t.Errorf("Len after unfreeze = %d, want 4", f.Len())
	}
}

func TestMultipleFreezesStack(t *testing.T) {
	f := NewFeed(FeedConfig{})
	addN(f, 2, time.Second)

	a := f.Freeze()
	b := f.Freeze()
	f.Add(baseTime().Add(time.Minute), 1)

	f.Unfreeze(a)
	if !f.IsFrozen() || f.Len() != 2 {
		t.Error("feed should stay frozen until every token is released")
	}
	f.Unfreeze(a)
	f.Unfreeze(b)
	if f.IsFrozen() || f.Len() != 3 {
		t.Errorf("after release frozen=%v len=%d", f.IsFrozen(), f.Len())
	}
}

func TestUnfreezeUnknownToken(t *testing.T) {
	f := NewFeed(FeedConfig{})
	f.Unfreeze(FreezeToken(12345))
	tok := f.Freeze()
	f.Unfreeze(tok + 1000)
	if !f.IsFrozen() {
		t.Error("unknown token must not release the freeze")
	}
}

func TestFeedBuckets(t *testing.T) {
	f := NewFeed(FeedConfig{})
	addN(f, 120, time.Minute)

	got := f.Buckets(Hour, AggCount)
	if len(got) != 2 || got[0].Value != 60 || got[1].Value != 60 {
		t.Errorf("Buckets = %v", got)
	}
}

func TestConcurrentAddAndRead(t *testing.T) {
	f := NewFeed(FeedConfig{MaxPoints: 500})
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				f.Add(baseTime().Add(time.Duration(w*1000+i)*time.Second), 1)
			}
		}(w)
	}
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				tok := f.Freeze()
				_ = f.Snapshot()
				f.Unfreeze(tok)
			}
		}()
	}
	wg.Wait()

	snap := f.Snapshot()
	if len(snap) != 500 {
		t.Fatalf("Len = %d, want 500", len(snap))
	}
	for i := 1; i < len(snap); i++ {
		if snap[i].Date.Before(snap[i-1].Date) {
			t.Fatal("feed out of order after concurrent writes")
		}
	}
}
