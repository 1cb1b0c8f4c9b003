// Package gin provides a Gin middleware adapter for
// github.com/kyota-dev/ratelimiter.
//
// Example usage:
//
//	router := gin.Default()
//	router.Use(ginratelimiter.RateLimiter(limiter))
//	router.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
package gin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	ratelimiter "github.com/kyota-dev/ratelimiter"
	"github.com/kyota-dev/ratelimiter/metrics"
	"github.com/kyota-dev/ratelimiter/middleware"
)

// RateLimiter returns a Gin middleware handler enforcing limiter on every
// request. Behavior mirrors middleware/nethttp.Middleware: fail-open on a
// Check error, 429 + Retry-After on Throttled, X-RateLimit-Remaining on
// Allowed.
func RateLimiter(limiter ratelimiter.Limiter, options ...middleware.Option) gin.HandlerFunc {
	cfg := middleware.NewConfig(options...)

	return func(c *gin.Context) {
		identity, err := cfg.KeyFunc(c.Request)
		if err != nil {
			cfg.Logger.Errorf("ratelimiter: failed to extract identity: %v", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		start := time.Now()
		decision, err := limiter.Check(c.Request.Context(), identity)
		metrics.ObserveDuration(time.Since(start))

		if err != nil {
			metrics.ObserveError()
			cfg.Logger.Errorf("ratelimiter: check failed for key '%s': %v", limiter.KeyFor(identity), err)
			c.Next()
			return
		}

		if !decision.Allowed {
			metrics.ObserveThrottled()
			cfg.Logger.Debugf("ratelimiter: throttled key '%s', retry in %s", limiter.KeyFor(identity), decision.RetryAfter)
			cfg.ErrorHandler(c.Writer, c.Request, ratelimiter.ErrThrottled, decision)
			c.Abort()
			return
		}

		metrics.ObserveAllowed()
		c.Header("X-RateLimit-Remaining", strconv.FormatUint(decision.Remaining, 10))
		cfg.Logger.Debugf("ratelimiter: allowed key '%s', remaining %d", limiter.KeyFor(identity), decision.Remaining)
		c.Next()
	}
}
