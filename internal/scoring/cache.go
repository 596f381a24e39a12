package scoring

import (
	"sync"

	"github.com/Veraticus/the-rent-must-flow/internal/model"
)

// Cache memoizes rule breakdowns by tenant content hash.
// Scoring is pure, so entries never need invalidating.
type Cache struct {
	entries map[string]model.Breakdown
	hits    int
	misses  int
	mu      sync.RWMutex
}

// NewCache creates an empty score cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]model.Breakdown),
	}
}

// get retrieves a breakdown from the cache if present.
func (c *Cache) get(key string) (model.Breakdown, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.entries[key]
	return b, ok
}

// set stores a breakdown in the cache.
func (c *Cache) set(key string, b model.Breakdown) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = b
}

func (c *Cache) record(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hit {
		c.hits++
	} else {
		c.misses++
	}
}

// Lookup returns the breakdown for t, computing and storing it on a miss.
func (c *Cache) Lookup(hash string, t *model.Tenant) model.Breakdown {
	if b, ok := c.get(hash); ok {
		c.record(true)
		return b
	}
	b := Calculate(t)
	c.set(hash, b)
	c.record(false)
	return b
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
