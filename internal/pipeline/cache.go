package pipeline

import (
	"sync"
	"time"

	"paymax/internal/domain"
)

// CacheEntry is the stored best result for one document identifier.
type CacheEntry struct {
	Record     domain.Payslip
	Confidence domain.Confidence
	ParserName string
	StoredAt   time.Time
}

// Cache is the content-addressed processing cache. Reads dominate after
// startup; a single RWMutex keeps writers serialized.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*CacheEntry
	order    []string // insertion order for capacity eviction
	capacity int
}

// NewCache creates a Cache bounded to capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	return &Cache{
		entries:  make(map[string]*CacheEntry, capacity),
		capacity: capacity,
	}
}

// Get returns the cached entry for a document identifier, or nil.
func (c *Cache) Get(id string) *CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry := c.entries[id]
	if entry == nil {
		return nil
	}
	copied := *entry
	return &copied
}

// Put stores the best result for a document identifier, evicting the oldest
// entry when the cache is full.
func (c *Cache) Put(id string, entry CacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[id]; !exists {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, id)
	}
	entry.StoredAt = time.Now()
	c.entries[id] = &entry
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
