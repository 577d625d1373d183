package accel

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestThrottleExecutesOncePerWindow(t *testing.T) {
	var calls int32
	throttled := Throttle(func() int {
		return int(atomic.AddInt32(&calls, 1))
	}, 100*time.Millisecond)

	for i := 0; i < 5; i++ {
		if got := throttled(); got != 1 {
			t.Fatalf("call %d returned %d, want stale result 1", i, got)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("fn ran %d times within the window, want 1", got)
	}

	time.Sleep(120 * time.Millisecond)
	if got := throttled(); got != 2 {
		t.Fatalf("call after window returned %d, want 2", got)
	}
}

func TestDebounceFiresOnceWithLastArg(t *testing.T) {
	fired := make(chan string, 8)
	debounced := Debounce(func(arg string) {
		fired <- arg
	}, 60*time.Millisecond)

	debounced("first")
	time.Sleep(20 * time.Millisecond)
	debounced("second")
	time.Sleep(10 * time.Millisecond)
	debounced("last")

	select {
	case arg := <-fired:
		t.Fatalf("fired %q before quiescence", arg)
	case <-time.After(30 * time.Millisecond):
	}

	select {
	case arg := <-fired:
		if arg != "last" {
			t.Fatalf("fired with %q, want last", arg)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("debounced fn never fired")
	}

	select {
	case arg := <-fired:
		t.Fatalf("unexpected second execution with %q", arg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebounceIndependentAfterQuiescence(t *testing.T) {
	var count int32
	debounced := Debounce(func(int) {
		atomic.AddInt32(&count, 1)
	}, 30*time.Millisecond)

	debounced(1)
	time.Sleep(60 * time.Millisecond)
	debounced(2)
	time.Sleep(60 * time.Millisecond)

	if got := atomic.LoadInt32(&count); got != 2 {
		t.Fatalf("fn ran %d times, want 2 for two quiescent windows", got)
	}
}
