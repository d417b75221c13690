package data

import (
	"context"
	"sort"
	"time"
)

// PruneStats holds metrics from the most recent prune cycle.
type PruneStats struct {
	PointsRemoved int
	Duration      time.Duration
}

// Prune drops observations older than the retention period. A frozen feed is
// left alone.
func (f *Feed) Prune() PruneStats {
	f.mu.Lock()
	defer f.mu.Unlock()

	start := time.Now()
	var stats PruneStats

	if f.frozen == nil {
		cutoff := f.now().Add(-f.cfg.Retention)
		idx := sort.Search(len(f.times), func(i int) bool {
			return f.times[i].After(cutoff)
		})
		if idx > 0 {
			stats.PointsRemoved = idx
			f.version++
			// Compact when most of the buffer goes, so the backing array
			// can be released.
			if idx > len(f.times)/2 {
				f.times = append([]time.Time(nil), f.times[idx:]...)
				f.values = append([]float64(nil), f.values[idx:]...)
			} else {
				f.times = f.times[idx:]
				f.values = f.values[idx:]
			}
		}
	}

	stats.Duration = time.Since(start)
	f.lastPruneStats = stats
	return stats
}

// PruneStats returns the metrics from the most recent Prune call.
func (f *Feed) PruneStats() PruneStats {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastPruneStats
}

// Run prunes every PruneInterval until ctx is done.
func (f *Feed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.cfg.PruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.Prune()
		}
	}
}
