package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCache is a bounded in-memory cache. The API server puts it in front
// of slower backends so hot analyses stay resident without growing without
// bound. Entries carry their own expiry since TTLs differ per artifact class.
type LRUCache struct {
	entries *lru.Cache[string, lruEntry]
}

type lruEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewLRUCache creates an in-memory cache holding at most size entries.
func NewLRUCache(size int) (Cache, error) {
	entries, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{entries: entries}, nil
}

// Get retrieves a value, expiring it lazily if its TTL has passed.
func (c *LRUCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return entry.data, true, nil
}

// Set stores a value, evicting the least recently used entry when full.
func (c *LRUCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := lruEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.entries.Add(key, entry)
	return nil
}

// Delete removes a value.
func (c *LRUCache) Delete(ctx context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

// Close drops all entries.
func (c *LRUCache) Close() error {
	c.entries.Purge()
	return nil
}

// Ensure LRUCache implements Cache.
var _ Cache = (*LRUCache)(nil)
