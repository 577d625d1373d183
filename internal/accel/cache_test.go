package accel

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCacheSetGet(t *testing.T) {
	c := NewCache()

	c.Set("region:us", 42, time.Minute)

	v, ok := c.Get("region:us")
	if !ok {
		t.Fatalf("expected hit")
	}
	if v.(int) != 42 {
		t.Fatalf("got %v, want 42", v)
	}
	if _, ok := c.Get("region:eu"); ok {
		t.Fatalf("unexpected hit for absent key")
	}
}

func TestCacheOverwriteKeepsOneEntry(t *testing.T) {
	c := NewCache()

	c.Set("k", "first", time.Minute)
	c.Set("k", "second", time.Minute)

	if got := c.Len(); got != 1 {
		t.Fatalf("len = %d, want 1", got)
	}
	v, _ := c.Get("k")
	if v.(string) != "second" {
		t.Fatalf("got %v, want second", v)
	}
}

func TestCacheLazyExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewCache(WithClock(clock.Now))

	c.Set("k", "v", time.Minute)
	clock.Advance(time.Minute + time.Second)

	if got := c.Len(); got != 1 {
		t.Fatalf("len before read = %d, want 1 (size is not freshness-aware)", got)
	}
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected expired entry to be absent")
	}
	if got := c.Len(); got != 0 {
		t.Fatalf("len after read = %d, want 0 (lazy delete)", got)
	}
}

func TestCacheExpiryBoundaryIsExclusive(t *testing.T) {
	clock := newFakeClock()
	c := NewCache(WithClock(clock.Now))

	c.Set("k", "v", time.Minute)
	clock.Advance(time.Minute)

	// Exactly at ttl the entry is still served; only past it expires.
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("entry at exact ttl boundary should still be fresh")
	}
	clock.Advance(time.Nanosecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("entry past ttl should be absent")
	}
}

func TestCacheHasSharesExpirySideEffect(t *testing.T) {
	clock := newFakeClock()
	c := NewCache(WithClock(clock.Now))

	c.Set("k", "v", time.Second)
	if !c.Has("k") {
		t.Fatalf("expected fresh key")
	}

	clock.Advance(2 * time.Second)
	if c.Has("k") {
		t.Fatalf("expected expired key to be reported absent")
	}
	if got := c.Len(); got != 0 {
		t.Fatalf("len = %d, want 0 after Has touched the expired entry", got)
	}
}

func TestCacheEvictsOldestInsertedAtCapacity(t *testing.T) {
	c := NewCache()

	for i := 0; i < DefaultMaxEntries; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i, time.Hour)
	}
	// Reading key-0 must not protect it; eviction ignores access recency.
	if _, ok := c.Get("key-0"); !ok {
		t.Fatalf("expected key-0 present before eviction")
	}

	c.Set("key-overflow", "x", time.Hour)

	if _, ok := c.Get("key-0"); ok {
		t.Fatalf("expected oldest-inserted key-0 to be evicted")
	}
	if _, ok := c.Get("key-1"); !ok {
		t.Fatalf("expected key-1 to survive")
	}
	if _, ok := c.Get("key-overflow"); !ok {
		t.Fatalf("expected new key present")
	}
	if got := c.Len(); got != DefaultMaxEntries {
		t.Fatalf("len = %d, want %d", got, DefaultMaxEntries)
	}
}

func TestCacheEvictionIgnoresRemainingTTL(t *testing.T) {
	c := NewCache(WithMaxEntries(2))

	c.Set("short", 1, time.Millisecond)
	c.Set("long", 2, time.Hour)
	c.Set("third", 3, time.Hour)

	// "short" was inserted first, so it goes, despite "long" having more
	// remaining ttl.
	if _, ok := c.Get("long"); !ok {
		t.Fatalf("expected long-ttl entry to survive")
	}
	if _, ok := c.Get("third"); !ok {
		t.Fatalf("expected newest entry present")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := NewCache()

	c.Set("a", 1, time.Hour)
	c.Set("b", 2, time.Hour)

	c.Delete("a")
	c.Delete("missing") // no-op
	if c.Has("a") {
		t.Fatalf("expected deleted key absent")
	}

	c.Clear()
	if got := c.Len(); got != 0 {
		t.Fatalf("len after clear = %d, want 0", got)
	}

	// Cache stays usable after Clear.
	c.Set("c", 3, time.Hour)
	if !c.Has("c") {
		t.Fatalf("expected key present after clear and re-set")
	}
}

func TestKeyJoinsParts(t *testing.T) {
	cases := []struct {
		parts []any
		want  string
	}{
		{[]any{"tree", "octocat", "hello-world"}, "tree:octocat:hello-world"},
		{[]any{"gen", 42, true}, "gen:42:true"},
		{[]any{"ttl", int64(-7)}, "ttl:-7"},
		{[]any{"single"}, "single"},
	}

	for _, tc := range cases {
		if got := Key(tc.parts...); got != tc.want {
			t.Fatalf("Key(%v) = %q, want %q", tc.parts, got, tc.want)
		}
	}
}
