// Package middleware holds configuration shared by the concrete host
// adapters (middleware/nethttp, middleware/gin): the functional-options
// Config, the default identity extraction, and the default error handler.
// Both adapters build on net/http.Request, so the logic lives here once
// rather than being duplicated per framework.
package middleware

import (
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"

	ratelimiter "github.com/kyota-dev/ratelimiter"
)

// KeyFunc extracts a RequestIdentity from an incoming HTTP request.
// Common implementations use the client's IP address or a header value.
type KeyFunc func(r *http.Request) (ratelimiter.RequestIdentity, error)

// ErrorHandler defines how to respond to a client when a request is
// throttled. The adapters call it with ratelimiter.ErrThrottled and the
// throttling Decision; a failed Limiter.Check call never reaches it, the
// adapters forward such requests instead.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error, decision ratelimiter.Decision)

// Logger is re-exported for adapter convenience so callers configuring a
// middleware don't need to import the root package directly.
type Logger = ratelimiter.Logger

// Config holds the configurable parameters shared by every host adapter.
type Config struct {
	KeyFunc      KeyFunc
	ErrorHandler ErrorHandler
	Logger       Logger
}

// Option applies a setting to a Config. The core of the functional options
// pattern used throughout this repository.
type Option func(*Config)

// NewConfig builds a Config with sane defaults, then applies opts in order.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		KeyFunc:      defaultKeyFunc,
		ErrorHandler: defaultErrorHandler,
		Logger:       noopLogger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithKeyFunc overrides how a RequestIdentity is extracted from a request.
func WithKeyFunc(f KeyFunc) Option {
	return func(c *Config) {
		if f != nil {
			c.KeyFunc = f
		}
	}
}

// WithErrorHandler overrides the response sent when a request is throttled.
func WithErrorHandler(f ErrorHandler) Option {
	return func(c *Config) {
		if f != nil {
			c.ErrorHandler = f
		}
	}
}

// WithLogger overrides the logger used by the middleware.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// defaultKeyFunc identifies the caller by IP: the left-most address in
// X-Forwarded-For if present, falling back to RemoteAddr.
func defaultKeyFunc(r *http.Request) (ratelimiter.RequestIdentity, error) {
	host := r.RemoteAddr
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if parts := strings.Split(fwd, ","); len(parts) > 0 {
			host = strings.TrimSpace(parts[0])
		}
	} else if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		host = h
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return nil, err
	}
	return ratelimiter.IPIdentity{Addr: addr}, nil
}

// defaultErrorHandler responds 429 Too Many Requests with a Retry-After
// header.
func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error, decision ratelimiter.Decision) {
	retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
	if retryAfter <= 0 {
		retryAfter = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
}

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Errorf(format string, args ...interface{}) {}
