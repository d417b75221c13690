package data

import (
	"sync/atomic"
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/timebrush"
)

// FreezeToken is returned by Freeze and released by Unfreeze.
type FreezeToken uint64

var nextToken uint64

func newFreezeToken() FreezeToken {
	return FreezeToken(atomic.AddUint64(&nextToken, 1))
}

// frozenState pins the observations readers see while a host is brushing, so
// the bars under the brush do not move mid-gesture. It is reference counted.
type frozenState struct {
	times   []time.Time
	values  []float64
	pending []timebrush.DataItem
	tokens  map[FreezeToken]struct{}
}

// Freeze pins the current observations. Until every token is released,
// readers see the pinned copy, and new observations and pruning wait.
func (f *Feed) Freeze() FreezeToken {
	f.mu.Lock()
	defer f.mu.Unlock()

	token := newFreezeToken()
	if f.frozen == nil {
		f.frozen = &frozenState{
			times:  append([]time.Time(nil), f.times...),
			values: append([]float64(nil), f.values...),
			tokens: make(map[FreezeToken]struct{}),
		}
	}
	f.frozen.tokens[token] = struct{}{}
	return token
}

// Unfreeze releases token. Releasing the last token merges the buffered
// observations. Unknown tokens are ignored.
func (f *Feed) Unfreeze(token FreezeToken) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.frozen == nil {
		return
	}
	if _, ok := f.frozen.tokens[token]; !ok {
		return
	}
	delete(f.frozen.tokens, token)
	if len(f.frozen.tokens) > 0 {
		return
	}

	pending := f.frozen.pending
	f.frozen = nil
	for _, it := range pending {
		f.insert(it.Date, it.Value)
	}
	f.enforceMaxPoints()
	if len(pending) > 0 {
		f.version++
	}
}

// IsFrozen reports whether any freeze is held.
func (f *Feed) IsFrozen() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.frozen != nil
}
