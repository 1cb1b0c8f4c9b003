// Package store provides the Redis adapter that issues the atomic command
// sequences the rate-limiting algorithms need, each inside a single
// WATCH/MULTI/EXEC optimistic transaction. No Lua scripting is used:
// every mutation round-trips as a watched pipeline with a bounded
// client-side retry on contention.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMalformedMember is wrapped around a strconv failure when decoding a
// sorted-set member back into the nanosecond timestamp that produced it.
// The member is always written by strconv.FormatInt in this same file, so
// this should never fire outside of external tampering with the key.
var ErrMalformedMember = errors.New("store: malformed sorted set member")

// maxTxAttempts bounds the WATCH/EXEC retry loop. Callers must retry
// transparently on contention rather than surface transient aborts, but an
// unbounded loop is a livelock risk under pathological contention;
// exceeding the bound surfaces an error instead.
const maxTxAttempts = 10

// RedisStore implements ratelimiter.Store against a real Redis server
// using optimistic transactions.
type RedisStore struct {
	client *redis.Client
}

// NewRedis wraps an existing *redis.Client. The client is not dialed here.
func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// runTxn executes fn under WATCH on key, retrying on redis.TxFailedErr
// for at most maxTxAttempts attempts in total.
func (s *RedisStore) runTxn(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := s.client.Watch(ctx, fn, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			lastErr = err
			continue
		}
		return err
	}
	return fmt.Errorf("store: transaction on key %q aborted after %d attempts: %w", key, maxTxAttempts, lastErr)
}

// TakeBucketToken implements the token-bucket protocol:
// SETNX, EXPIRE NX, INCRBY -1, TTL.
func (s *RedisStore) TakeBucketToken(ctx context.Context, key string, bucketSize uint64, validity time.Duration) (int64, int64, error) {
	var decrCmd *redis.IntCmd
	var ttlCmd *redis.DurationCmd

	err := s.runTxn(ctx, key, func(tx *redis.Tx) error {
		_, txErr := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetNX(ctx, key, bucketSize, 0)
			pipe.ExpireNX(ctx, key, validity)
			decrCmd = pipe.IncrBy(ctx, key, -1)
			ttlCmd = pipe.TTL(ctx, key)
			return nil
		})
		return txErr
	})
	if err != nil {
		return 0, 0, err
	}

	return decrCmd.Val(), ttlSeconds(ttlCmd.Val()), nil
}

// IncrementWindow implements the fixed-window protocol:
// SETNX, EXPIRE NX, INCRBY 1, TTL.
func (s *RedisStore) IncrementWindow(ctx context.Context, key string, windowSize uint64, duration time.Duration) (uint64, int64, error) {
	var incrCmd *redis.IntCmd
	var ttlCmd *redis.DurationCmd

	err := s.runTxn(ctx, key, func(tx *redis.Tx) error {
		_, txErr := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetNX(ctx, key, 0, 0)
			pipe.ExpireNX(ctx, key, duration)
			incrCmd = pipe.IncrBy(ctx, key, 1)
			ttlCmd = pipe.TTL(ctx, key)
			return nil
		})
		return txErr
	})
	if err != nil {
		return 0, 0, err
	}

	return uint64(incrCmd.Val()), ttlSeconds(ttlCmd.Val()), nil
}

// SlideWindow implements the sliding-window protocol:
// ZREMRANGEBYSCORE, ZADD NX, ZCOUNT, ZREVRANGEBYSCORE LIMIT, EXPIRE.
func (s *RedisStore) SlideWindow(ctx context.Context, key string, windowSize uint64, duration time.Duration, nowNanos int64, windowStartNanos int64) (uint64, int64, error) {
	var countCmd *redis.IntCmd
	var newestCmd *redis.StringSliceCmd

	err := s.runTxn(ctx, key, func(tx *redis.Tx) error {
		_, txErr := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("(%d", windowStartNanos))
			pipe.ZAddNX(ctx, key, redis.Z{
				Score:  float64(nowNanos),
				Member: strconv.FormatInt(nowNanos, 10),
			})
			countCmd = pipe.ZCount(ctx, key, "-inf", "+inf")
			newestCmd = pipe.ZRevRangeByScore(ctx, key, &redis.ZRangeBy{
				Min:    "-inf",
				Max:    "+inf",
				Offset: 0,
				Count:  int64(windowSize),
			})
			pipe.Expire(ctx, key, duration)
			return nil
		})
		return txErr
	})
	if err != nil {
		return 0, 0, err
	}

	members := newestCmd.Val()
	var oldestNanos int64
	if len(members) > 0 {
		oldest, parseErr := strconv.ParseInt(members[len(members)-1], 10, 64)
		if parseErr != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrMalformedMember, parseErr)
		}
		oldestNanos = oldest
	}

	return uint64(countCmd.Val()), oldestNanos, nil
}

// ttlSeconds normalizes go-redis's TTL sentinels (-1 no TTL, -2 missing
// key) down to a "retry after 0" result.
func ttlSeconds(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return int64(ttl / time.Second)
}
