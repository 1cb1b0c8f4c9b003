package ratelimiter

import (
	"fmt"
	"time"

	"github.com/kyota-dev/ratelimiter/store"
)

// SlidingWindowBuilder configures a SlidingWindowLimiter. Defaults match
// FixedWindowBuilder's (DefaultWindowSize, DefaultWindowDuration).
type SlidingWindowBuilder struct {
	windowSize     *uint64
	windowDuration *time.Duration
	redisSettings  *RedisSettings
}

// WithWindowSize sets the maximum number of admissions per rolling window.
func (b *SlidingWindowBuilder) WithWindowSize(size uint64) *SlidingWindowBuilder {
	b.windowSize = &size
	return b
}

// WithWindowDuration sets the length of the rolling window.
func (b *SlidingWindowBuilder) WithWindowDuration(duration time.Duration) *SlidingWindowBuilder {
	b.windowDuration = &duration
	return b
}

// WithRedisSettings overrides the store connection settings wholesale.
func (b *SlidingWindowBuilder) WithRedisSettings(settings RedisSettings) *SlidingWindowBuilder {
	b.redisSettings = &settings
	return b
}

// Build validates the configuration, constructs a client handle (without
// dialing), and returns the configured Limiter.
func (b *SlidingWindowBuilder) Build() (Limiter, error) {
	windowSize := DefaultWindowSize
	if b.windowSize != nil {
		windowSize = *b.windowSize
	}
	if windowSize < 1 {
		return nil, newInitError("sliding_window.build", fmt.Errorf("window size must be >= 1, got %d", windowSize))
	}

	windowDuration := DefaultWindowDuration
	if b.windowDuration != nil {
		windowDuration = *b.windowDuration
	}
	if windowDuration <= 0 {
		return nil, newInitError("sliding_window.build", fmt.Errorf("window duration must be positive, got %s", windowDuration))
	}

	client, err := newRedisClient(b.redisSettings)
	if err != nil {
		return nil, err
	}

	return &SlidingWindowLimiter{
		store:          store.NewRedis(client),
		windowSize:     windowSize,
		windowDuration: windowDuration,
		now:            time.Now,
	}, nil
}
