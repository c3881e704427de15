// Package memory provides an in-process response cache.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/avral/tessera/pkg/domain"
)

// Cache implements ports.Cache in memory. Safe for concurrent use.
// Expired entries are dropped lazily on read.
type Cache struct {
	mu   sync.RWMutex
	data map[string]entry
}

type entry struct {
	resp     domain.Response
	deadline time.Time
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]entry),
	}
}

// Get returns the response stored under key, if present and unexpired.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Response, bool, error) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(e.deadline) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if cur, ok := c.data[key]; ok && time.Now().After(cur.deadline) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	// Copy on read so the caller cannot mutate the stored response.
	resp := e.resp
	return &resp, true, nil
}

// Set stores a copy of resp under key for ttl.
func (c *Cache) Set(ctx context.Context, key string, resp *domain.Response, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry{
		resp:     *resp,
		deadline: time.Now().Add(ttl),
	}
	return nil
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
