package nethttp_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	ratelimiter "github.com/kyota-dev/ratelimiter"
	"github.com/kyota-dev/ratelimiter/middleware/nethttp"
)

func buildLimiter(t *testing.T) ratelimiter.Limiter {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	host := mr.Host()
	port, err := strconv.ParseUint(mr.Port(), 10, 16)
	require.NoError(t, err)

	limiter, err := ratelimiter.Factory{}.FixedWindow().
		WithWindowSize(1).
		WithWindowDuration(time.Minute).
		WithRedisSettings(ratelimiter.RedisSettings{Host: host, Port: uint16(port)}).
		Build()
	require.NoError(t, err)
	return limiter
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestMiddleware_E6 implements scenario E6: after `limit` admitted
// requests from one IP, the next from the same IP is throttled with 429
// and Retry-After, while a different IP still gets 200 concurrently.
func TestMiddleware_E6(t *testing.T) {
	limiter := buildLimiter(t)
	handler := nethttp.Middleware(limiter)(okHandler())

	req1 := httptest.NewRequest(http.MethodGet, "/", nil)
	req1.RemoteAddr = "10.0.0.1:1234"
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	require.Equal(t, http.StatusOK, rec1.Code)
	require.Equal(t, "0", rec1.Header().Get("X-RateLimit-Remaining"))

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.RemoteAddr = "10.0.0.1:1234"
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusTooManyRequests, rec2.Code)
	require.NotEmpty(t, rec2.Header().Get("Retry-After"))

	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.RemoteAddr = "10.0.0.2:1234"
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req3)
	require.Equal(t, http.StatusOK, rec3.Code)
}

// TestMiddleware_E5 implements scenario E5: when the store is unreachable
// the endpoint returns a 2xx response and omits the remaining-budget
// header (the adapter always fails open on a Check error).
func TestMiddleware_E5(t *testing.T) {
	limiter, err := ratelimiter.Factory{}.FixedWindow().
		WithRedisSettings(ratelimiter.RedisSettings{Host: "127.0.0.1", Port: 1}).
		Build()
	require.NoError(t, err)

	handler := nethttp.Middleware(limiter)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("X-RateLimit-Remaining"))
}
