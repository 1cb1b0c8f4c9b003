// Package ratelimiter implements a distributed rate-limiting library backed
// by Redis. It decides, for a given request identity, whether a request
// should be admitted now or throttled, and keeps a consistent view of that
// decision across any number of service instances sharing the same store.
//
// Three interchangeable algorithms are provided, built through Factory:
// token bucket, fixed window and sliding window. Each variant issues a
// fixed, documented sequence of Redis commands inside a single WATCH/MULTI/
// EXEC transaction, so concurrent callers across processes never exceed the
// configured limit for a given identity.
//
// The library holds no mutable per-identity state of its own; all of it
// lives in Redis. It spawns no goroutines, runs no background refill or
// cleanup, and blocks only on store I/O.
package ratelimiter
