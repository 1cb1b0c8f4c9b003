package ratelimiter

import (
	"context"
	"time"
)

// FixedWindowLimiter implements the fixed-window algorithm.
// Each identity owns a counter reset when its key expires; the window
// starts when the first request of a burst creates the key, and
// subsequent requests inside the same live TTL share it.
//
// Up to 2*windowSize requests may be admitted in a time window straddling
// two adjacent fixed windows — a known anomaly, not a bug.
type FixedWindowLimiter struct {
	store          Store
	windowSize     uint64
	windowDuration time.Duration
}

// KeyFor returns the canonical store key for identity.
func (l *FixedWindowLimiter) KeyFor(identity RequestIdentity) string {
	return identity.KeyFor()
}

// Check increments identity's counter and compares it to windowSize.
func (l *FixedWindowLimiter) Check(ctx context.Context, identity RequestIdentity) (Decision, error) {
	key := identity.KeyFor()

	count, ttlSeconds, err := l.store.IncrementWindow(ctx, key, l.windowSize, l.windowDuration)
	if err != nil {
		return Decision{}, newIOError("fixed_window.check", err)
	}

	if count <= l.windowSize {
		return Decision{Allowed: true, Remaining: l.windowSize - count}, nil
	}

	return Decision{RetryAfter: time.Duration(ttlSeconds) * time.Second}, nil
}
