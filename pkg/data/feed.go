// Package data is the adapter side of the brushing widget: it reads
// observations from files, buckets them into per-interval items and keeps a
// live, bounded feed of observations for hosts that follow a stream.
//
// The feed stores timestamps and values in parallel slices sharing one time
// axis, kept in ascending time order so range lookups are binary searches.
package data

import (
	"sort"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// FeedConfig controls retention and size of a Feed.
type FeedConfig struct {
	// Retention is how long observations are kept before pruning.
	// Zero means 24 hours.
	Retention time.Duration

	// MaxPoints bounds the number of observations kept. Zero means 10000.
	MaxPoints int

	// PruneInterval is how often Run prunes. Zero means 30 seconds.
	PruneInterval time.Duration
}

func (c FeedConfig) defaults() FeedConfig {
	if c.Retention == 0 {
		c.Retention = 24 * time.Hour
	}
	if c.MaxPoints == 0 {
		c.MaxPoints = 10000
	}
	if c.PruneInterval == 0 {
		c.PruneInterval = 30 * time.Second
	}
	return c
}

// Feed is a bounded, time-ordered buffer of observations. It is safe for
// concurrent use.
type Feed struct {
	mu     sync.RWMutex
	cfg    FeedConfig
	now    func() time.Time
	times  []time.Time
	values []float64

	frozen *frozenState
	// version counts changes to the visible observations.
	version uint64

	lastPruneStats PruneStats
}

// NewFeed creates an empty feed.
func NewFeed(cfg FeedConfig) *Feed {
	return &Feed{cfg: cfg.defaults(), now: time.Now}
}

// Config returns the effective configuration.
func (f *Feed) Config() FeedConfig {
	return f.cfg
}

// Add records one observation. Out-of-order observations are inserted at
// their place on the time axis. While the feed is frozen the observation is
// buffered until the last Unfreeze.
func (f *Feed) Add(t time.Time, v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.frozen != nil {
		f.frozen.pending = append(f.frozen.pending, timebrush.DataItem{Date: t, Value: v})
		return
	}
	f.insert(t, v)
	f.enforceMaxPoints()
	f.version++
}

// AddItems records a batch of observations.
func (f *Feed) AddItems(items []timebrush.DataItem) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.frozen != nil {
		f.frozen.pending = append(f.frozen.pending, items...)
		return
	}
	for _, it := range items {
		f.insert(it.Date, it.Value)
	}
	f.enforceMaxPoints()
	if len(items) > 0 {
		f.version++
	}
}

// Version changes whenever the observations readers see change. Hosts poll
// it to decide whether to redraw.
func (f *Feed) Version() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version
}

// Len returns the number of visible observations.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	times, _ := f.view()
	return len(times)
}

// Snapshot returns a copy of the visible observations in time order. A
// frozen feed returns the observations as of the first Freeze.
func (f *Feed) Snapshot() []timebrush.DataItem {
	f.mu.RLock()
	defer f.mu.RUnlock()
	times, values := f.view()
	return items(times, values)
}

// Range returns the observations within [start, end].
func (f *Feed) Range(start, end time.Time) []timebrush.DataItem {
	f.mu.RLock()
	defer f.mu.RUnlock()

	times, values := f.view()
	lo := sort.Search(len(times), func(i int) bool {
		return !times[i].Before(start)
	})
	hi := sort.Search(len(times), func(i int) bool {
		return times[i].After(end)
	})
	if lo >= hi {
		return []timebrush.DataItem{}
	}
	return items(times[lo:hi], values[lo:hi])
}

// Since returns the observations from the last d, measured from the feed's
// clock.
func (f *Feed) Since(d time.Duration) []timebrush.DataItem {
	now := f.now()
	return f.Range(now.Add(-d), now)
}

// Last returns the most recent n observations.
func (f *Feed) Last(n int) []timebrush.DataItem {
	f.mu.RLock()
	defer f.mu.RUnlock()

	times, values := f.view()
	if n > len(times) {
		n = len(times)
	}
	if n <= 0 {
		return []timebrush.DataItem{}
	}
	start := len(times) - n
	return items(times[start:], values[start:])
}

// Latest returns the most recent observation.
func (f *Feed) Latest() (timebrush.DataItem, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	times, values := f.view()
	if len(times) == 0 {
		return timebrush.DataItem{}, false
	}
	n := len(times) - 1
	return timebrush.DataItem{Date: times[n], Value: values[n]}, true
}

// Buckets aggregates the visible observations into per-interval items.
func (f *Feed) Buckets(interval Interval, agg Aggregation) []timebrush.DataItem {
	return Bucket(f.Snapshot(), interval, agg)
}

// view returns the slices readers should see. Must be called with the lock
// held.
func (f *Feed) view() ([]time.Time, []float64) {
	if f.frozen != nil {
		return f.frozen.times, f.frozen.values
	}
	return f.times, f.values
}

// insert places one observation on the time axis. Must be called with the
// write lock held.
func (f *Feed) insert(t time.Time, v float64) {
	n := len(f.times)
	if n == 0 || !t.Before(f.times[n-1]) {
		f.times = append(f.times, t)
		f.values = append(f.values, v)
		return
	}
	i := sort.Search(n, func(i int) bool {
		return f.times[i].After(t)
	})
	f.times = append(f.times, time.Time{})
	copy(f.times[i+1:], f.times[i:])
	f.times[i] = t
	f.values = append(f.values, 0)
	copy(f.values[i+1:], f.values[i:])
	f.values[i] = v
}

// enforceMaxPoints drops the oldest observations beyond MaxPoints.
func (f *Feed) enforceMaxPoints() {
	if excess := len(f.times) - f.cfg.MaxPoints; excess > 0 {
		f.times = f.times[excess:]
		f.values = f.values[excess:]
	}
}

func items(times []time.Time, values []float64) []timebrush.DataItem {
	out := make([]timebrush.DataItem, len(times))
	for i := range times {
		out[i] = timebrush.DataItem{Date: times[i], Value: values[i]}
	}
	return out
}
