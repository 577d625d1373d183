package accel

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithBackoffSucceedsAfterTransientFailures(t *testing.T) {
	ctx := context.Background()

	calls := 0
	fn := func(context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}

	start := time.Now()
	v, err := WithBackoff(ctx, fn, 3, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "ok" {
		t.Fatalf("got %q, want ok", v)
	}
	if calls != 3 {
		t.Fatalf("fn ran %d times, want 3 (k failures then success)", calls)
	}

	// Two waits: 10ms then 20ms.
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("elapsed %v, want at least 30ms of doubling backoff", elapsed)
	}
}

func TestWithBackoffDoublesEachWait(t *testing.T) {
	ctx := context.Background()

	var delays []time.Duration
	restore := wait
	wait = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	defer func() { wait = restore }()

	fn := func(context.Context) (int, error) {
		return 0, errors.New("always failing")
	}
	if _, err := WithBackoff(ctx, fn, 3, 10*time.Millisecond); err == nil {
		t.Fatal("expected exhaustion error")
	}

	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("waited %d times, want %d", len(delays), len(want))
	}
	for i, d := range delays {
		if d != want[i] {
			t.Fatalf("wait %d = %v, want %v", i, d, want[i])
		}
	}
}

func TestWithBackoffExhaustionPropagatesLastFailure(t *testing.T) {
	ctx := context.Background()

	calls := 0
	var lastErr error
	fn := func(context.Context) (int, error) {
		calls++
		lastErr = errors.New("attempt failed")
		return 0, lastErr
	}

	_, err := WithBackoff(ctx, fn, 3, time.Millisecond)
	if calls != 4 {
		t.Fatalf("fn ran %d times, want 4 (first attempt + 3 retries)", calls)
	}
	if err != lastErr {
		t.Fatalf("err = %v, want the final attempt's failure unchanged", err)
	}
}

func TestWithBackoffZeroRetriesFailsImmediately(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("no retries")

	calls := 0
	_, err := WithBackoff(ctx, func(context.Context) (int, error) {
		calls++
		return 0, boom
	}, 0, time.Hour)

	if calls != 1 {
		t.Fatalf("fn ran %d times, want 1", calls)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestWithBackoffStopsWaitingOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		return 0, errors.New("always failing")
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := WithBackoff(ctx, fn, 3, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("fn ran %d times, want 1 before the wait was interrupted", calls)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("wait did not end on cancellation, took %v", elapsed)
	}
}
