package middleware

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// RedisCounterStore keeps the per-IP request counters in redis so the
// window is shared across instances.
type RedisCounterStore struct {
	client rueidis.Client
}

func NewRedisCounterStore(client rueidis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Do(
		ctx,
		s.client.B().Incr().Key(key).Build(),
	).AsInt64()
	if err != nil {
		return 0, err
	}

	// First hit in the window starts its expiry.
	if count == 1 {
		if err := s.client.Do(
			ctx,
			s.client.B().Expire().Key(key).Seconds(int64(window/time.Second)).Build(),
		).Error(); err != nil {
			return 0, err
		}
	}

	return count, nil
}
