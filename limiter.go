package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is the common contract implemented by all three algorithm
// variants (token bucket, fixed window, sliding window).
type Limiter interface {
	// Check performs exactly one logical admission attempt for identity,
	// mutating its state in the store atomically. Safe for arbitrary
	// parallel callers across processes and machines.
	Check(ctx context.Context, identity RequestIdentity) (Decision, error)

	// KeyFor returns the canonical store key for identity, as used
	// internally by Check.
	KeyFor(identity RequestIdentity) string
}

// Store issues the fixed command sequence each algorithm needs against the
// shared key/value store, inside a single optimistic transaction. It is
// implemented by store.RedisStore; callers obtain one only through a
// Builder, never directly.
type Store interface {
	// TakeBucketToken implements the token-bucket protocol:
	// create-if-absent, set TTL if absent, decrement, read TTL. remaining
	// is the post-decrement counter value (may be negative); ttlSeconds
	// is the key's remaining TTL, 0 if none.
	TakeBucketToken(ctx context.Context, key string, bucketSize uint64, validity time.Duration) (remaining int64, ttlSeconds int64, err error)

	// IncrementWindow implements the fixed-window protocol:
	// create-if-absent, set TTL if absent, increment, read TTL. count is
	// the post-increment counter value; ttlSeconds is the key's remaining
	// TTL, 0 if none.
	IncrementWindow(ctx context.Context, key string, windowSize uint64, duration time.Duration) (count uint64, ttlSeconds int64, err error)

	// SlideWindow implements the sliding-window protocol:
	// purge stale entries, insert nowNanos, count, find the oldest
	// surviving entry among the newest windowSize, reset TTL
	// unconditionally. oldestNanos is 0 if the set was empty after
	// insertion (should not occur).
	SlideWindow(ctx context.Context, key string, windowSize uint64, duration time.Duration, nowNanos int64, windowStartNanos int64) (count uint64, oldestNanos int64, err error)
}

// RedisSettings configures the connection used by a Builder. The zero
// value is never valid on its own; when WithRedisSettings is never called,
// a Builder falls back to DefaultRedisHost/DefaultRedisPort wholesale.
type RedisSettings struct {
	Host string
	Port uint16
}

// Defaults applied by the builders when the corresponding With* setter is
// never called.
const (
	DefaultRedisHost = "127.0.0.1"
	DefaultRedisPort = uint16(6379)
)

// newRedisClient constructs a client handle without dialing. Building never
// blocks on a successful round-trip; connectivity is exercised lazily at
// the first Check.
func newRedisClient(settings *RedisSettings) (*redis.Client, error) {
	host, port := DefaultRedisHost, DefaultRedisPort
	if settings != nil {
		host, port = settings.Host, settings.Port
	}
	if host == "" {
		return nil, newInitError("redis_client", fmt.Errorf("redis host must not be empty"))
	}
	if port == 0 {
		return nil, newInitError("redis_client", fmt.Errorf("redis port must not be zero"))
	}

	return redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port),
	}), nil
}
