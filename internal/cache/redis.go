package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	breakerFailures = 5
	breakerTimeout  = 30 * time.Second
)

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewRedisCache(client *redis.Client, baseTTL time.Duration, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    "receipt-cache",
			Timeout: breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
			// a miss is a healthy answer from redis
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrCacheMiss)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		}),
	}
}

func (r *RedisCache) Get(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	key := cacheKey(receiptID)

	data, err := r.breaker.Execute(func() ([]byte, error) {
		b, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		if err != nil {
			return nil, fmt.Errorf("redis get failed: %w", err)
		}
		return b, nil
	})
	if err != nil {
		return nil, breakerError(err)
	}

	var receipt domain.Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, fmt.Errorf("unmarshal receipt failed: %w", err)
	}

	return &receipt, nil
}

func (r *RedisCache) Set(ctx context.Context, receipt *domain.Receipt) error {
	data, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("marshal receipt failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter

	_, err = r.breaker.Execute(func() ([]byte, error) {
		if err := r.client.Set(ctx, cacheKey(receipt.ID), data, ttl).Err(); err != nil {
			return nil, fmt.Errorf("redis set failed: %w", err)
		}
		return nil, nil
	})
	return breakerError(err)
}

func (r *RedisCache) Delete(ctx context.Context, receiptID string) error {
	_, err := r.breaker.Execute(func() ([]byte, error) {
		if err := r.client.Del(ctx, cacheKey(receiptID)).Err(); err != nil {
			return nil, fmt.Errorf("redis delete failed: %w", err)
		}
		return nil, nil
	})
	return breakerError(err)
}

func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func cacheKey(receiptID string) string {
	return fmt.Sprintf("receipt:%s", receiptID)
}
