// Package cache is a bounded in-process cache for assessments and model
// responses, backed by ristretto.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache stores values with unit cost, so MaxItems bounds the entry count.
type Cache struct {
	store *ristretto.Cache
	ttl   time.Duration
}

// New creates a cache holding roughly maxItems entries. A zero ttl keeps
// entries until they are evicted.
func New(maxItems int, ttl time.Duration) (*Cache, error) {
	if maxItems < 1 {
		return nil, fmt.Errorf("cache.New: maxItems must be positive, got %d", maxItems)
	}
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(maxItems) * 10, // keys tracked for admission
		MaxCost:     int64(maxItems),
		BufferItems: 64,
		// Count entries, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cache.New: %w", err)
	}
	return &Cache{store: store, ttl: ttl}, nil
}

// Set stores value under key. Admission is asynchronous; call Wait to make
// the write visible to the next Get.
func (c *Cache) Set(key string, value interface{}) bool {
	if c.ttl > 0 {
		return c.store.SetWithTTL(key, value, 1, c.ttl)
	}
	return c.store.Set(key, value, 1)
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Del removes key.
func (c *Cache) Del(key string) {
	c.store.Del(key)
}

// Wait blocks until buffered writes are applied.
func (c *Cache) Wait() {
	c.store.Wait()
}

// Close stops the cache's background goroutines.
func (c *Cache) Close() {
	c.store.Close()
}

// Lookup returns the value for key when it exists and has type T.
func Lookup[T any](c *Cache, key string) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Key builds a namespaced key from parts. Long inputs such as prompts are
// hashed so keys stay small.
func Key(namespace string, parts ...string) string {
	joined := strings.Join(parts, "\x00")
	if len(joined) <= 64 {
		return namespace + ":" + joined
	}
	sum := sha256.Sum256([]byte(joined))
	return namespace + ":" + hex.EncodeToString(sum[:])
}
