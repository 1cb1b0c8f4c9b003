package ratelimiter

import (
	"context"
	"time"
)

// TokenBucketLimiter implements the token-bucket algorithm.
// Each identity owns a bucket initialized to bucketSize tokens; every Check
// consumes one. There is no periodic refill: a single burst of bucketSize
// requests is allowed per bucketValidity window, and the bucket expires
// and is re-created in full on the next Check after that.
type TokenBucketLimiter struct {
	store          Store
	bucketSize     uint64
	bucketValidity time.Duration
}

// KeyFor returns the canonical store key for identity.
func (l *TokenBucketLimiter) KeyFor(identity RequestIdentity) string {
	return identity.KeyFor()
}

// Check consumes one token from identity's bucket.
func (l *TokenBucketLimiter) Check(ctx context.Context, identity RequestIdentity) (Decision, error) {
	key := identity.KeyFor()

	remaining, ttlSeconds, err := l.store.TakeBucketToken(ctx, key, l.bucketSize, l.bucketValidity)
	if err != nil {
		return Decision{}, newIOError("token_bucket.check", err)
	}

	if remaining >= 0 {
		return Decision{Allowed: true, Remaining: uint64(remaining)}, nil
	}

	// Counter may grow unboundedly negative under sustained attack; the
	// TTL bounds its lifetime, no clamping is required here.
	return Decision{RetryAfter: time.Duration(ttlSeconds) * time.Second}, nil
}
