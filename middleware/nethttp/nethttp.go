// Package nethttp provides middleware for the standard net/http library
// that enforces rate limiting using github.com/kyota-dev/ratelimiter.
//
// Example usage:
//
//	limiter, _ := ratelimiter.Factory{}.FixedWindow().
//		WithWindowSize(100).
//		WithWindowDuration(time.Minute).
//		Build()
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", handler)
//
//	http.ListenAndServe(":8080", nethttp.Middleware(limiter)(mux))
package nethttp

import (
	"net/http"
	"strconv"
	"time"

	ratelimiter "github.com/kyota-dev/ratelimiter"
	"github.com/kyota-dev/ratelimiter/metrics"
	"github.com/kyota-dev/ratelimiter/middleware"
)

// Middleware wraps next, applying limiter to every incoming request.
// On Allowed it sets X-RateLimit-Remaining and forwards the request. On
// Throttled it invokes the configured ErrorHandler (429 + Retry-After by
// default). On a Check error it always fails open: the request is
// forwarded without a remaining-budget header and the ErrorHandler is not
// called.
func Middleware(limiter ratelimiter.Limiter, options ...middleware.Option) func(http.Handler) http.Handler {
	cfg := middleware.NewConfig(options...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := cfg.KeyFunc(r)
			if err != nil {
				cfg.Logger.Errorf("ratelimiter: failed to extract identity: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			start := time.Now()
			decision, err := limiter.Check(r.Context(), identity)
			metrics.ObserveDuration(time.Since(start))

			if err != nil {
				metrics.ObserveError()
				cfg.Logger.Errorf("ratelimiter: check failed for key '%s': %v", limiter.KeyFor(identity), err)
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				metrics.ObserveThrottled()
				cfg.Logger.Debugf("ratelimiter: throttled key '%s', retry in %s", limiter.KeyFor(identity), decision.RetryAfter)
				cfg.ErrorHandler(w, r, ratelimiter.ErrThrottled, decision)
				return
			}

			metrics.ObserveAllowed()
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatUint(decision.Remaining, 10))
			cfg.Logger.Debugf("ratelimiter: allowed key '%s', remaining %d", limiter.KeyFor(identity), decision.Remaining)
			next.ServeHTTP(w, r)
		})
	}
}
