package accel

import (
	"context"
	"time"
)

const (
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3

	// DefaultInitialDelay is the wait before the first retry; it doubles
	// before each subsequent one.
	DefaultInitialDelay = time.Second
)

// WithBackoff invokes fn and retries every failure with doubling delays
// starting at initialDelay. There is no jitter and no retryable-vs-fatal
// classification, which is only appropriate for idempotent read-style
// operations. After maxRetries retries the last attempt's failure is
// returned unchanged, not wrapped; intermediate failures are swallowed.
// Waits end early if ctx is canceled, in which case the context error is
// returned.
func WithBackoff[T any](ctx context.Context, fn func(context.Context) (T, error), maxRetries int, initialDelay time.Duration) (T, error) {
	var zero T
	if maxRetries < 0 {
		maxRetries = 0
	}

	delay := initialDelay
	for attempt := 0; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= maxRetries {
			return zero, err
		}

		if err := wait(ctx, delay); err != nil {
			return zero, err
		}
		delay *= 2
	}
}

// wait blocks for d or until ctx is done. Swapped out by tests to
// observe the delay sequence without sleeping.
var wait = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
