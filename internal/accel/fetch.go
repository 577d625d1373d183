package accel

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Flight coalesces concurrent calls that share a key: while a call for a
// key is outstanding, later callers wait for and receive the same outcome
// instead of issuing a duplicate operation. The in-flight registration is
// dropped the instant the operation completes, success or failure, so a
// key is never stuck pending. Distinct keys run independently.
//
// The zero value is ready to use.
type Flight struct {
	group singleflight.Group
}

// Deduplicated runs fn at most once among concurrent callers of the same
// key on f, and hands every caller the identical value or failure.
func Deduplicated[T any](f *Flight, key string, fn func() (T, error)) (T, error) {
	v, err, _ := f.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// CachedFetch looks key up in c and returns the hit without invoking
// fetch. On a miss it invokes fetch, stores a successful result under key
// with ttl, and returns it. A failure is propagated unchanged and never
// cached, so a failing key is retried in full on the next call.
//
// CachedFetch does not coalesce concurrent misses for the same key;
// callers wanting both behaviors compose it with Deduplicated explicitly.
func CachedFetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.Set(key, v, ttl)
	return v, nil
}
