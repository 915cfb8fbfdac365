package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	counterKeyPrefix = "ratelimit:"
	// maxTxRetries bounds the optimistic locking loop under contention
	maxTxRetries = 5
)

// redisStore backs counters with Redis. Atomicity comes from the
// WATCH/MULTI/EXEC optimistic loop: a concurrent write to the same key
// aborts the transaction and the check is retried on fresh state.
type redisStore struct {
	client *redis.Client
	policy Policy
}

type redisCounter struct {
	WindowStart time.Time `json:"window_start"`
	Count       int       `json:"count"`
}

func newRedisStore(client *redis.Client, policy Policy) *redisStore {
	return &redisStore{client: client, policy: policy}
}

// Check implements Store
func (s *redisStore) Check(ctx context.Context, identity string) (*Result, error) {
	key := counterKeyPrefix + identity

	var result *Result
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			counter := redisCounter{WindowStart: time.Now()}

			val, err := tx.Get(ctx, key).Result()
			if err != nil && err != redis.Nil {
				return err
			}
			if err == nil {
				if err := json.Unmarshal([]byte(val), &counter); err != nil {
					return fmt.Errorf("error decoding rate limit counter: %w", err)
				}
			}

			var windowStart time.Time
			var count int
			result, windowStart, count = s.policy.evaluate(counter.WindowStart, counter.Count, time.Now())

			newVal, err := json.Marshal(redisCounter{WindowStart: windowStart, Count: count})
			if err != nil {
				return err
			}

			// Expire well after the window so ResetAt stays computable for
			// rejected callers
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, newVal, 2*s.policy.Window)
				return nil
			})
			return err
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error checking rate limit: %w", err)
		}
		return result, nil
	}

	return nil, fmt.Errorf("rate limit check aborted after %d contended attempts", maxTxRetries)
}

// Close implements Store
func (s *redisStore) Close() error {
	return s.client.Close()
}
