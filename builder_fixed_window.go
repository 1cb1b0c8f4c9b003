package ratelimiter

import (
	"fmt"
	"time"

	"github.com/kyota-dev/ratelimiter/store"
)

// Defaults applied by FixedWindowBuilder when the corresponding With*
// setter is never called. The window duration default is fixed at 60s,
// matching the token-bucket default for predictability across the demo
// host's algorithm choices.
const (
	DefaultWindowSize     = uint64(5)
	DefaultWindowDuration = 60 * time.Second
)

// FixedWindowBuilder configures a FixedWindowLimiter.
type FixedWindowBuilder struct {
	windowSize     *uint64
	windowDuration *time.Duration
	redisSettings  *RedisSettings
}

// WithWindowSize sets the maximum number of admissions per window.
func (b *FixedWindowBuilder) WithWindowSize(size uint64) *FixedWindowBuilder {
	b.windowSize = &size
	return b
}

// WithWindowDuration sets the length of each fixed window.
func (b *FixedWindowBuilder) WithWindowDuration(duration time.Duration) *FixedWindowBuilder {
	b.windowDuration = &duration
	return b
}

// WithRedisSettings overrides the store connection settings wholesale.
func (b *FixedWindowBuilder) WithRedisSettings(settings RedisSettings) *FixedWindowBuilder {
	b.redisSettings = &settings
	return b
}

// Build validates the configuration, constructs a client handle (without
// dialing), and returns the configured Limiter.
func (b *FixedWindowBuilder) Build() (Limiter, error) {
	windowSize := DefaultWindowSize
	if b.windowSize != nil {
		windowSize = *b.windowSize
	}
	if windowSize < 1 {
		return nil, newInitError("fixed_window.build", fmt.Errorf("window size must be >= 1, got %d", windowSize))
	}

	windowDuration := DefaultWindowDuration
	if b.windowDuration != nil {
		windowDuration = *b.windowDuration
	}
	if windowDuration <= 0 {
		return nil, newInitError("fixed_window.build", fmt.Errorf("window duration must be positive, got %s", windowDuration))
	}

	client, err := newRedisClient(b.redisSettings)
	if err != nil {
		return nil, err
	}

	return &FixedWindowLimiter{
		store:          store.NewRedis(client),
		windowSize:     windowSize,
		windowDuration: windowDuration,
	}, nil
}
