package ratelimiter

import (
	"fmt"
	"time"

	"github.com/kyota-dev/ratelimiter/store"
)

// Defaults applied by TokenBucketBuilder when the corresponding With*
// setter is never called.
const (
	DefaultBucketSize     = uint64(5)
	DefaultBucketValidity = 60 * time.Second
)

// TokenBucketBuilder configures a TokenBucketLimiter.
type TokenBucketBuilder struct {
	bucketSize     *uint64
	bucketValidity *time.Duration
	redisSettings  *RedisSettings
}

// WithBucketSize sets the number of tokens a fresh bucket starts with.
func (b *TokenBucketBuilder) WithBucketSize(size uint64) *TokenBucketBuilder {
	b.bucketSize = &size
	return b
}

// WithBucketValidity sets the TTL after which an exhausted bucket resets.
func (b *TokenBucketBuilder) WithBucketValidity(validity time.Duration) *TokenBucketBuilder {
	b.bucketValidity = &validity
	return b
}

// WithRedisSettings overrides the store connection settings wholesale.
func (b *TokenBucketBuilder) WithRedisSettings(settings RedisSettings) *TokenBucketBuilder {
	b.redisSettings = &settings
	return b
}

// Build validates the configuration, constructs a client handle (without
// dialing), and returns the configured Limiter.
func (b *TokenBucketBuilder) Build() (Limiter, error) {
	bucketSize := DefaultBucketSize
	if b.bucketSize != nil {
		bucketSize = *b.bucketSize
	}
	if bucketSize < 1 {
		return nil, newInitError("token_bucket.build", fmt.Errorf("bucket size must be >= 1, got %d", bucketSize))
	}

	bucketValidity := DefaultBucketValidity
	if b.bucketValidity != nil {
		bucketValidity = *b.bucketValidity
	}
	if bucketValidity <= 0 {
		return nil, newInitError("token_bucket.build", fmt.Errorf("bucket validity must be positive, got %s", bucketValidity))
	}

	client, err := newRedisClient(b.redisSettings)
	if err != nil {
		return nil, err
	}

	return &TokenBucketLimiter{
		store:          store.NewRedis(client),
		bucketSize:     bucketSize,
		bucketValidity: bucketValidity,
	}, nil
}
