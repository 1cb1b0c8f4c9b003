// Command ratelimiter-demo is a small Gin server exercising all three
// rate-limiting algorithms, selected and tuned via environment variables.
// It plays the role of a host service embedding the core library as a
// dependency.
package main

import (
	"log"

	"github.com/gin-gonic/gin"

	ratelimiter "github.com/kyota-dev/ratelimiter"
	stdlogadapter "github.com/kyota-dev/ratelimiter/adapters/log"
	logrusadapter "github.com/kyota-dev/ratelimiter/adapters/logrus"
	zapadapter "github.com/kyota-dev/ratelimiter/adapters/zap"
	zerologadapter "github.com/kyota-dev/ratelimiter/adapters/zerolog"
	"github.com/kyota-dev/ratelimiter/config"
	"github.com/kyota-dev/ratelimiter/middleware"
	ginratelimiter "github.com/kyota-dev/ratelimiter/middleware/gin"
)

// buildLogger selects the ratelimiter.Logger implementation the middleware
// logs through, per RATELIMITER_LOG_BACKEND. Unrecognized values fall back
// to the standard library adapter, matching the config default.
func buildLogger(backend string) ratelimiter.Logger {
	switch backend {
	case "zap":
		return zapadapter.New(nil)
	case "zerolog":
		return zerologadapter.New(nil)
	case "logrus":
		return logrusadapter.New(nil)
	default:
		return stdlogadapter.New(nil)
	}
}

func buildLimiter(settings *config.Settings) (ratelimiter.Limiter, error) {
	redisSettings := ratelimiter.RedisSettings{
		Host: settings.RedisHost,
		Port: settings.RedisPort,
	}
	factory := ratelimiter.Factory{}

	switch settings.Algorithm {
	case "fixed_window":
		return factory.FixedWindow().
			WithWindowSize(settings.Limit).
			WithWindowDuration(settings.Window).
			WithRedisSettings(redisSettings).
			Build()
	case "sliding_window":
		return factory.SlidingWindow().
			WithWindowSize(settings.Limit).
			WithWindowDuration(settings.Window).
			WithRedisSettings(redisSettings).
			Build()
	default:
		return factory.TokenBucket().
			WithBucketSize(settings.Limit).
			WithBucketValidity(settings.Window).
			WithRedisSettings(redisSettings).
			Build()
	}
}

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("ratelimiter-demo: failed to load settings: %v", err)
	}

	limiter, err := buildLimiter(settings)
	if err != nil {
		log.Fatalf("ratelimiter-demo: failed to build limiter: %v", err)
	}

	router := gin.Default()
	router.Use(ginratelimiter.RateLimiter(limiter, middleware.WithLogger(buildLogger(settings.LogBackend))))
	router.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	log.Printf("ratelimiter-demo: listening on %s (algorithm=%s, limit=%d, window=%s, log_backend=%s)",
		settings.ListenAddr, settings.Algorithm, settings.Limit, settings.Window, settings.LogBackend)
	if err := router.Run(settings.ListenAddr); err != nil {
		log.Fatalf("ratelimiter-demo: server error: %v", err)
	}
}
