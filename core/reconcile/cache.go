package reconcile

import (
	"context"
	"sync"
	"time"

	"par-manager/core/catalog"

	"golang.org/x/sync/singleflight"
)

const snapshotKey = "active_products"

// snapshot is one cached read of the active catalog.
type snapshot struct {
	products []catalog.ProductStock
	built    time.Time
}

// Cache is a TTL cache over catalog.ProductReader.
type Cache struct {
	reader catalog.ProductReader
	ttl    time.Duration

	mu      sync.RWMutex
	current *snapshot
	// generation increments on every Invalidate so an in-flight load started
	// before the invalidation is not stored.
	generation uint64
	sf         singleflight.Group
}

// NewCache wraps reader. A zero or negative TTL disables caching.
func NewCache(reader catalog.ProductReader, ttl time.Duration) *Cache {
	return &Cache{reader: reader, ttl: ttl}
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) fresh(s *snapshot) bool {
	return s != nil && c.ttl > 0 && time.Since(s.built) <= c.ttl
}

// Products returns the active catalog, reading through to storage when the
// snapshot is missing or expired. Concurrent misses share a single read.
func (c *Cache) Products(ctx context.Context) ([]catalog.ProductStock, error) {
	if c.ttl <= 0 {
		return c.reader.ListActiveProducts(ctx)
	}

	// Fast path
	c.mu.RLock()
	current := c.current
	c.mu.RUnlock()
	if c.fresh(current) {
		return current.products, nil
	}

	result, err, _ := c.sf.Do(snapshotKey, func() (interface{}, error) {
		c.mu.RLock()
		current := c.current
		gen := c.generation
		c.mu.RUnlock()
		if c.fresh(current) {
			return current.products, nil
		}

		// shared by every waiter, so one caller's cancellation must not end it
		products, err := c.reader.ListActiveProducts(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if gen == c.generation {
			c.current = &snapshot{products: products, built: time.Now()}
		}
		c.mu.Unlock()

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]catalog.ProductStock), nil
}

// Report builds the purchase list from the cached catalog.
func (c *Cache) Report(ctx context.Context) (*Report, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}
	return BuildReport(products), nil
}

// Invalidate drops the cached snapshot.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.generation++
	c.mu.Unlock()
}
