package pipeline

import (
	"sync"

	"paymax/internal/domain"
)

// Telemetry is a bounded ring buffer of parser attempts. When full, the
// oldest attempt is evicted. Diagnostics only, never business data.
type Telemetry struct {
	mu       sync.RWMutex
	buf      []domain.ParseAttempt
	next     int
	size     int
	capacity int
}

// NewTelemetry creates a ring buffer holding up to capacity attempts.
func NewTelemetry(capacity int) *Telemetry {
	if capacity <= 0 {
		capacity = 1
	}
	return &Telemetry{buf: make([]domain.ParseAttempt, capacity), capacity: capacity}
}

// Record appends one attempt, evicting the oldest when full.
func (t *Telemetry) Record(attempt domain.ParseAttempt) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.next] = attempt
	t.next = (t.next + 1) % t.capacity
	if t.size < t.capacity {
		t.size++
	}
}

// Snapshot returns the recorded attempts ordered oldest first.
func (t *Telemetry) Snapshot() []domain.ParseAttempt {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.ParseAttempt, 0, t.size)
	start := t.next - t.size
	if start < 0 {
		start += t.capacity
	}
	for i := 0; i < t.size; i++ {
		out = append(out, t.buf[(start+i)%t.capacity])
	}
	return out
}

// Len returns the number of attempts currently held.
func (t *Telemetry) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}
