package ratelimiter_test

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	ratelimiter "github.com/kyota-dev/ratelimiter"
)

func newMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

func redisSettings(t *testing.T, mr *miniredis.Miniredis) ratelimiter.RedisSettings {
	t.Helper()
	port, err := strconv.ParseUint(mr.Port(), 10, 16)
	require.NoError(t, err)
	return ratelimiter.RedisSettings{Host: mr.Host(), Port: uint16(port)}
}
