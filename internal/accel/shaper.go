package accel

import (
	"sync"
	"time"
)

// Throttle returns a function that executes fn at most once per delay, on
// the leading edge of the window. Suppressed calls return the most recent
// executed result, which may be stale; callers must tolerate an outdated
// value rather than a fresh one or an explicit skip signal.
func Throttle[T any](fn func() T, delay time.Duration) func() T {
	var (
		mu     sync.Mutex
		last   time.Time
		result T
	)

	return func() T {
		mu.Lock()
		defer mu.Unlock()

		if last.IsZero() || time.Since(last) >= delay {
			last = time.Now()
			result = fn()
		}
		return result
	}
}

// Debounce returns a function that defers fn until delay has elapsed with
// no further calls. Each call cancels and restarts the pending timer; only
// the argument of the final call within a quiescent window is used.
func Debounce[T any](fn func(T), delay time.Duration) func(T) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)

	return func(arg T) {
		mu.Lock()
		defer mu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			fn(arg)
		})
	}
}
