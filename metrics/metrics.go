// Package metrics exposes the Prometheus counters and histogram the
// middleware adapters record outcomes against: admitted vs throttled
// request counts, and check latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Allowed counts requests admitted by a Limiter.Check call.
	Allowed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ratelimiter",
		Name:      "requests_allowed_total",
		Help:      "Total number of requests admitted by the rate limiter.",
	})

	// Throttled counts requests rejected by a Limiter.Check call.
	Throttled = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ratelimiter",
		Name:      "requests_throttled_total",
		Help:      "Total number of requests throttled by the rate limiter.",
	})

	// Errors counts Limiter.Check calls that returned an error.
	Errors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ratelimiter",
		Name:      "check_errors_total",
		Help:      "Total number of rate limiter checks that failed.",
	})

	// CheckDuration observes the wall-clock latency of Limiter.Check.
	CheckDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ratelimiter",
		Name:      "check_duration_seconds",
		Help:      "Latency of rate limiter checks.",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Allowed, Throttled, Errors, CheckDuration)
}

// ObserveAllowed records an admitted request.
func ObserveAllowed() { Allowed.Inc() }

// ObserveThrottled records a throttled request.
func ObserveThrottled() { Throttled.Inc() }

// ObserveError records a failed check.
func ObserveError() { Errors.Inc() }

// ObserveDuration records how long a check took.
func ObserveDuration(d time.Duration) { CheckDuration.Observe(d.Seconds()) }
