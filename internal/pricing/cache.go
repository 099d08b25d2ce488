package pricing

import (
	"context"
	"sync"
	"time"
)

// Loader fetches a fresh rate table snapshot, typically from the database.
type Loader func(ctx context.Context) (*Table, error)

// Cache hands out rate table snapshots, reloading through its Loader once the
// configured TTL has elapsed. It is an explicit dependency handed to the
// pricing service; there is no package-level cache state.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	load    Loader
	table   *Table
	fetched time.Time
	now     func() time.Time
}

// NewCache builds a cache around loader. A zero or negative ttl disables
// caching and every Snapshot call reloads.
func NewCache(ttl time.Duration, loader Loader) *Cache {
	return &Cache{ttl: ttl, load: loader, now: time.Now}
}

// Snapshot returns the current table, reloading it when stale. On reload
// failure a previously loaded snapshot is served rather than failing the
// lookup; only a cold cache propagates the error.
func (c *Cache) Snapshot(ctx context.Context) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil && c.ttl > 0 && c.now().Sub(c.fetched) < c.ttl {
		return c.table, nil
	}
	table, err := c.load(ctx)
	if err != nil {
		if c.table != nil {
			return c.table, nil
		}
		return nil, err
	}
	c.table = table
	c.fetched = c.now()
	return c.table, nil
}

// Invalidate drops the cached snapshot so the next Snapshot call reloads.
// Called after rate table writes.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.table = nil
	c.mu.Unlock()
}
