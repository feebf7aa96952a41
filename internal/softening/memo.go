package softening

import "sync"

// memoMaxEntries bounds the memo map. Interactive callers recompute on every
// field edit, so the working set is small; when the cap is hit the map is
// reset rather than tracking recency.
const memoMaxEntries = 256

// Memo wraps Compute with exact-input memoization. RawWaterSample is a
// comparable value type, so it serves directly as the cache key.
//
// Memoization is purely an optimization: Memo.Compute always returns the same
// outcome Compute would. Safe for concurrent use.
type Memo struct {
	mu    sync.Mutex
	cache map[RawWaterSample]SofteningOutcome
}

// NewMemo returns an empty memoizing wrapper.
func NewMemo() *Memo {
	return &Memo{cache: make(map[RawWaterSample]SofteningOutcome)}
}

// Compute returns the memoized outcome for s, computing and caching it on
// first sight.
func (m *Memo) Compute(s RawWaterSample) SofteningOutcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if out, ok := m.cache[s]; ok {
		return out
	}
	if len(m.cache) >= memoMaxEntries {
		m.cache = make(map[RawWaterSample]SofteningOutcome)
	}
	out := Compute(s)
	m.cache[s] = out
	return out
}

// Len returns the number of cached entries.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cache)
}
