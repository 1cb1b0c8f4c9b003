package ratelimiter

import "time"

// Decision is the outcome of a single Limiter.Check call.
//
// When Allowed is true, Remaining holds the number of further requests the
// identity may make before being throttled. When Allowed is false,
// RetryAfter holds the duration the caller should wait before trying again.
type Decision struct {
	Allowed    bool
	Remaining  uint64
	RetryAfter time.Duration
}
