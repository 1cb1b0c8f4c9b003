package ratelimiter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ratelimiter "github.com/kyota-dev/ratelimiter"
)

func TestFactory_TokenBucket_RejectsInvalidSettings(t *testing.T) {
	_, err := ratelimiter.Factory{}.TokenBucket().WithBucketSize(0).Build()
	require.Error(t, err)
	assert.True(t, ratelimiter.IsInitError(err))
}

func TestFactory_FixedWindow_RejectsZeroWindowDuration(t *testing.T) {
	_, err := ratelimiter.Factory{}.FixedWindow().WithWindowDuration(0).Build()
	require.Error(t, err)
	assert.True(t, ratelimiter.IsInitError(err))
}

func TestFactory_RejectsEmptyRedisHost(t *testing.T) {
	_, err := ratelimiter.Factory{}.SlidingWindow().
		WithRedisSettings(ratelimiter.RedisSettings{Host: "", Port: 6379}).
		Build()
	require.Error(t, err)
	assert.True(t, ratelimiter.IsInitError(err))
}

func TestError_UnwrapsUnderlyingCause(t *testing.T) {
	cause := errors.New("boom")
	err := &ratelimiter.Error{Kind: ratelimiter.KindIO, Op: "test.op", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.True(t, ratelimiter.IsIOError(err))
	assert.False(t, ratelimiter.IsInitError(err))
	assert.False(t, ratelimiter.IsComputeError(err))
}
