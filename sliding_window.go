package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kyota-dev/ratelimiter/store"
)

// SlidingWindowLimiter implements the sliding-window algorithm. Each
// identity owns an ordered set of request timestamps
// (nanoseconds, Unix epoch); a request at time now is admitted iff the
// count of timestamps in [now-windowDuration, now], including the current
// request, is <= windowSize. Stale timestamps are purged on each check.
//
// The time source is wall-clock, not monotonic: cross-node clock skew
// translates directly into ordering skew in the set, and the library does
// not attempt correction.
type SlidingWindowLimiter struct {
	store          Store
	windowSize     uint64
	windowDuration time.Duration
	now            func() time.Time
}

// KeyFor returns the canonical store key for identity.
func (l *SlidingWindowLimiter) KeyFor(identity RequestIdentity) string {
	return identity.KeyFor()
}

// Check records the current request's timestamp and counts the
// surviving entries in the active window.
func (l *SlidingWindowLimiter) Check(ctx context.Context, identity RequestIdentity) (Decision, error) {
	key := identity.KeyFor()

	now := l.now()
	nowNanos := now.UnixNano()
	if nowNanos < 0 {
		return Decision{}, newComputeError("sliding_window.check", fmt.Errorf("pre-epoch timestamp: %s", now))
	}
	windowStartNanos := now.Add(-l.windowDuration).UnixNano()

	count, oldestNanos, err := l.store.SlideWindow(ctx, key, l.windowSize, l.windowDuration, nowNanos, windowStartNanos)
	if err != nil {
		if errors.Is(err, store.ErrMalformedMember) {
			return Decision{}, newComputeError("sliding_window.check", err)
		}
		return Decision{}, newIOError("sliding_window.check", err)
	}

	if count <= l.windowSize {
		return Decision{Allowed: true, Remaining: l.windowSize - count}, nil
	}

	if oldestNanos == 0 {
		return Decision{RetryAfter: l.windowDuration}, nil
	}

	retryAfter := l.windowDuration - time.Duration(nowNanos-oldestNanos)
	if retryAfter < 0 {
		retryAfter = 0
	}
	return Decision{RetryAfter: retryAfter}, nil
}
