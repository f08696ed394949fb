package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flightdeals-service/internal/domain/entity"
	derr "flightdeals-service/internal/domain/errors"
	"flightdeals-service/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const latestReportKey = "report:latest"

// RedisReportCache implements the ReportCache interface
type RedisReportCache struct {
	redis *redis.Client
}

// NewRedisReportCache creates a new Redis report cache
func NewRedisReportCache(client *redis.Client) repository.ReportCache {
	return &RedisReportCache{redis: client}
}

// SetLatest caches the report under the latest-report key
func (c *RedisReportCache) SetLatest(ctx context.Context, report *entity.Report, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report for cache: %w", err)
	}

	if err := c.redis.Set(ctx, latestReportKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set report: %w", err)
	}
	return nil
}

// GetLatest returns the cached report, or ErrReportNotFound on a miss
func (c *RedisReportCache) GetLatest(ctx context.Context) (*entity.Report, error) {
	data, err := c.redis.Get(ctx, latestReportKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, derr.ErrReportNotFound
		}
		return nil, fmt.Errorf("redis get report: %w", err)
	}

	var report entity.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("unmarshal cached report: %w", err)
	}
	return &report, nil
}
