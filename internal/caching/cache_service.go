package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tradeportal/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService caches per-branch projections. Misses return (nil, nil);
// errors are surfaced for the caller to log, never to fail a request on.
type CacheService interface {
	GetTraderList(ctx context.Context, branchID string) ([]*models.TraderView, error)
	SetTraderList(ctx context.Context, branchID string, traders []*models.TraderView, ttl time.Duration) error
	InvalidateBranch(ctx context.Context, branchID string) error
	SweepExpired(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis ping failed on initialization", zap.String("addr", addr), zap.Error(err))
	}

	return &redisCacheService{client: client, logger: logger}
}

func branchKey(branchID string) string {
	return fmt.Sprintf("tradeportal:traders:%s", branchID)
}

func (r *redisCacheService) GetTraderList(ctx context.Context, branchID string) ([]*models.TraderView, error) {
	data, err := r.client.Get(ctx, branchKey(branchID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var traders []*models.TraderView
	if err := json.Unmarshal(data, &traders); err != nil {
		return nil, err
	}
	return traders, nil
}

func (r *redisCacheService) SetTraderList(ctx context.Context, branchID string, traders []*models.TraderView, ttl time.Duration) error {
	data, err := json.Marshal(traders)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, branchKey(branchID), data, ttl).Err()
}

func (r *redisCacheService) InvalidateBranch(ctx context.Context, branchID string) error {
	return r.client.Del(ctx, branchKey(branchID)).Err()
}

// SweepExpired drops any trader-list keys left without a TTL. Keys are
// always written with one, so this is a janitor for older deployments.
func (r *redisCacheService) SweepExpired(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, "tradeportal:traders:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		ttl, err := r.client.TTL(ctx, key).Result()
		if err != nil {
			continue
		}
		if ttl < 0 {
			if err := r.client.Del(ctx, key).Err(); err != nil {
				r.logger.Warn("cache sweep delete failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return iter.Err()
}
