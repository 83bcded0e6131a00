package abbrev

import (
	"sort"
	"sync"
	"time"
)

// UnknownComponent accumulates sightings of a code the catalog cannot
// classify. Frequency and value history drive catalog promotion candidates.
type UnknownComponent struct {
	Code      string    `json:"code"`
	Count     int       `json:"count"`
	Values    []float64 `json:"values"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// maxValueHistory bounds the per-code value history.
const maxValueHistory = 20

// Tracker records unknown pay-component codes for later user categorization.
// Safe for concurrent use.
type Tracker struct {
	mu    sync.Mutex
	seen  map[string]*UnknownComponent
	clock func() time.Time
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]*UnknownComponent), clock: time.Now}
}

// Record notes one sighting of an unknown code with its parsed amount.
func (t *Tracker) Record(code string, value float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	entry, ok := t.seen[code]
	if !ok {
		entry = &UnknownComponent{Code: code, FirstSeen: now}
		t.seen[code] = entry
	}
	entry.Count++
	entry.LastSeen = now
	if len(entry.Values) < maxValueHistory {
		entry.Values = append(entry.Values, value)
	}
}

// Candidates returns unknown components seen at least minCount times,
// ordered by frequency descending with code as the tie-break. These are the
// catalog-promotion candidates surfaced to the user.
func (t *Tracker) Candidates(minCount int) []UnknownComponent {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []UnknownComponent
	for _, entry := range t.seen {
		if entry.Count >= minCount {
			copied := *entry
			copied.Values = append([]float64(nil), entry.Values...)
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Len returns the number of distinct unknown codes recorded.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
