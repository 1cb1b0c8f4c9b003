package ratelimiter_test

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ratelimiter "github.com/kyota-dev/ratelimiter"
)

// TestFixedWindow_E2 implements scenario E2: 5 sequential checks are all
// Allowed with remaining 4..0, the 6th is Throttled, and after the key
// expires a 7th check is Allowed{remaining=4}.
func TestFixedWindow_E2(t *testing.T) {
	mr := newMiniredis(t)
	limiter, err := ratelimiter.Factory{}.FixedWindow().
		WithWindowSize(5).
		WithWindowDuration(time.Second).
		WithRedisSettings(redisSettings(t, mr)).
		Build()
	require.NoError(t, err)

	ctx := context.Background()
	identity := ratelimiter.IPIdentity{Addr: netip.MustParseAddr("10.0.0.1")}

	for want := uint64(4); ; want-- {
		decision, err := limiter.Check(ctx, identity)
		require.NoError(t, err)
		require.True(t, decision.Allowed)
		require.Equal(t, want, decision.Remaining)
		if want == 0 {
			break
		}
	}

	decision, err := limiter.Check(ctx, identity)
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.Greater(t, decision.RetryAfter, time.Duration(0))
	require.LessOrEqual(t, decision.RetryAfter, time.Second)

	mr.FastForward(2 * time.Second)

	decision, err = limiter.Check(ctx, identity)
	require.NoError(t, err)
	require.True(t, decision.Allowed)
	require.Equal(t, uint64(4), decision.Remaining)
}

func TestFixedWindow_RetryInWithinToleranceOfWindowDuration(t *testing.T) {
	mr := newMiniredis(t)
	window := 10 * time.Second
	limiter, err := ratelimiter.Factory{}.FixedWindow().
		WithWindowSize(1).
		WithWindowDuration(window).
		WithRedisSettings(redisSettings(t, mr)).
		Build()
	require.NoError(t, err)

	ctx := context.Background()
	identity := ratelimiter.IPIdentity{Addr: netip.MustParseAddr("10.0.0.1")}

	_, err = limiter.Check(ctx, identity)
	require.NoError(t, err)

	decision, err := limiter.Check(ctx, identity)
	require.NoError(t, err)
	require.False(t, decision.Allowed)
	require.LessOrEqual(t, decision.RetryAfter, window)
	require.InDelta(t, window.Seconds(), decision.RetryAfter.Seconds(), window.Seconds()*0.05)
}
