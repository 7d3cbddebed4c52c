// Package memory provides the in-memory page cache.
package memory

import (
	"context"
	"sync"

	"github.com/veltran/swoop/pkg/domain"
)

// Cache implements ports.PageCache in memory.
// Safe for concurrent use; overwrites are last write wins.
type Cache struct {
	pages map[string]*domain.PageRecord
	mu    sync.RWMutex
}

// NewCache creates a new empty in-memory cache.
func NewCache() *Cache {
	return &Cache{
		pages: make(map[string]*domain.PageRecord),
	}
}

// Store inserts or overwrites a record under record.URL.
func (c *Cache) Store(ctx context.Context, record *domain.PageRecord) error {
	// Clone to ensure isolation from later caller mutation.
	cp := record.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[cp.URL] = cp
	return nil
}

// Lookup retrieves a record by resolved URL.
func (c *Cache) Lookup(ctx context.Context, url string) (*domain.PageRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.pages[url]
	if !ok {
		return nil, domain.ErrPageNotCached
	}

	// Copy on read so the caller can't mutate cached state through the pointer.
	return record.Clone(), nil
}

// Remove deletes a single entry.
func (c *Cache) Remove(ctx context.Context, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pages, url)
	return nil
}

// Clear empties the cache.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[string]*domain.PageRecord)
	return nil
}

// Len reports the number of cached pages.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}
