package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/theirongolddev/payoff/internal/model"
)

const redisKeyPrefix = "payoff:result:"

// RedisCache shares results between server instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ResultCache = (*RedisCache)(nil)

// NewRedisCache connects to addr and verifies the connection with a ping.
// A zero ttl keeps entries forever.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &RedisCache{client: rdb, ttl: ttl}, nil
}

// Get returns the cached history for key, if present.
func (r *RedisCache) Get(ctx context.Context, key string) (model.PaymentHistory, bool, error) {
	var h model.PaymentHistory

	val, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return h, false, nil
	}
	if err != nil {
		return h, false, fmt.Errorf("reading cached result: %w", err)
	}
	if err := json.Unmarshal(val, &h); err != nil {
		return h, false, fmt.Errorf("decoding cached result: %w", err)
	}
	return h, true, nil
}

// Put stores h under key with the cache TTL.
func (r *RedisCache) Put(ctx context.Context, key string, _ model.LoanParameters, h model.PaymentHistory) error {
	payload, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return r.client.Set(ctx, redisKeyPrefix+key, payload, r.ttl).Err()
}

// Close closes the client connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
