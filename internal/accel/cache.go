// Package accel bundles the request acceleration helpers used around
// outbound API calls: a bounded TTL cache, call coalescing, cache-aside
// fetching, rate shapers and retry with exponential backoff.
package accel

import (
	"container/list"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultMaxEntries bounds the cache population.
	DefaultMaxEntries = 100

	// DefaultTTL is the freshness window used by callers that have no
	// better requirement of their own.
	DefaultTTL = 5 * time.Minute
)

type cacheEntry struct {
	key      string
	value    any
	storedAt time.Time
	ttl      time.Duration
}

// Cache is a bounded in-memory TTL cache with insertion-order eviction.
//
// Expired entries are deleted lazily on read, there is no background
// sweeper; Len therefore still counts entries whose TTL has elapsed but
// that no read has touched yet. When the cache is at capacity, an insert
// first evicts the oldest-inserted entry, regardless of access recency or
// remaining TTL. Overwriting an existing key keeps the key's original
// insertion position.
//
// Construct one per owner and inject it; all methods are safe for
// concurrent use.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*list.Element
	order      *list.List // front is the oldest inserted key
	now        func() time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithMaxEntries overrides DefaultMaxEntries. Values below one are ignored.
func WithMaxEntries(n int) CacheOption {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithClock substitutes the wall clock, used by tests to simulate expiry.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		maxEntries: DefaultMaxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set inserts or overwrites the entry for key with a per-entry ttl.
// If the cache holds maxEntries keys before the insert, the
// oldest-inserted entry is silently evicted first, even when key itself
// is already present.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		if front := c.order.Front(); front != nil {
			c.removeLocked(front)
		}
	}

	if el, ok := c.entries[key]; ok {
		ent := el.Value.(*cacheEntry)
		ent.value = value
		ent.storedAt = c.now()
		ent.ttl = ttl
		return
	}

	el := c.order.PushBack(&cacheEntry{
		key:      key,
		value:    value,
		storedAt: c.now(),
		ttl:      ttl,
	})
	c.entries[key] = el
}

// Get returns the stored value if present and not expired. An expired
// entry is deleted as a side effect and reported absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	ent := el.Value.(*cacheEntry)
	if c.now().Sub(ent.storedAt) > ent.ttl {
		c.removeLocked(el)
		return nil, false
	}
	return ent.value, true
}

// Has reports whether key holds a fresh value. It shares Get's
// expiry-driven deletion side effect.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes the entry unconditionally; absent keys are a no-op.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.removeLocked(el)
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Len counts stored entries, including any that are logically expired
// but not yet lazily deleted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) removeLocked(el *list.Element) {
	ent := el.Value.(*cacheEntry)
	c.order.Remove(el)
	delete(c.entries, ent.key)
}

// Key joins primitive parts with ":" to build a canonical cache key.
// Parts must not themselves contain the delimiter if collisions must be
// avoided.
func Key(parts ...any) string {
	elems := make([]string, len(parts))
	for i, part := range parts {
		switch v := part.(type) {
		case string:
			elems[i] = v
		case bool:
			elems[i] = strconv.FormatBool(v)
		case int:
			elems[i] = strconv.Itoa(v)
		case int64:
			elems[i] = strconv.FormatInt(v, 10)
		case fmt.Stringer:
			elems[i] = v.String()
		default:
			elems[i] = fmt.Sprint(v)
		}
	}
	return strings.Join(elems, ":")
}
