package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ratelimiter "github.com/kyota-dev/ratelimiter"
)

func TestDefaultKeyFunc_PrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.9:4321"
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.9")

	identity, err := defaultKeyFunc(req)
	require.NoError(t, err)
	assert.Equal(t, "rl:ip_1.2.3.4", identity.KeyFor())
}

func TestDefaultKeyFunc_FallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.9:4321"

	identity, err := defaultKeyFunc(req)
	require.NoError(t, err)
	assert.Equal(t, "rl:ip_10.0.0.9", identity.KeyFor())
}

func TestDefaultErrorHandler_SetsRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	defaultErrorHandler(rec, req, ratelimiter.ErrThrottled, ratelimiter.Decision{RetryAfter: 0})
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, 429, rec.Code)
}
