package api

import (
	"testing"
	"time"
)

func TestAttemptLimiterBlocksAfterLimitWithinWindow(t *testing.T) {
	limiter := newAttemptLimiter()
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	for attempt := 0; attempt < loginFailureLimit; attempt++ {
		if limiter.blocked("key", start) {
			t.Fatalf("blocked too early at attempt %d", attempt)
		}
		limiter.recordFailure("key", start.Add(time.Duration(attempt)*time.Second))
	}

	if !limiter.blocked("key", start.Add(time.Minute)) {
		t.Fatalf("expected key to be blocked after %d failures", loginFailureLimit)
	}
	if limiter.blocked("other", start.Add(time.Minute)) {
		t.Fatalf("expected unrelated key to stay open")
	}
	if limiter.blocked("key", start.Add(loginFailureWindow+time.Minute)) {
		t.Fatalf("expected failures to expire after the window")
	}
}

func TestAttemptLimiterClear(t *testing.T) {
	limiter := newAttemptLimiter()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	for attempt := 0; attempt < loginFailureLimit; attempt++ {
		limiter.recordFailure("key", now)
	}
	limiter.clear("key")

	if limiter.blocked("key", now) {
		t.Fatalf("expected clear to reset failures")
	}
}
