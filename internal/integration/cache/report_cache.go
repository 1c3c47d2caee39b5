// Package cache implements cache-backed adapters on top of redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-ledger/backend/internal/application/adapter"
	"github.com/finance-ledger/backend/internal/domain/entity"
)

// reportCache implements the adapter.ReportCache interface over redis.
type reportCache struct {
	client *redis.Client
}

// NewReportCache creates a new redis-backed report cache.
func NewReportCache(client *redis.Client) adapter.ReportCache {
	return &reportCache{
		client: client,
	}
}

// Get returns the cached report for the key, or (nil, nil) on a miss.
func (c *reportCache) Get(ctx context.Context, key string) (*entity.Report, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}

	var report entity.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}

	return &report, nil
}

// Set stores the report under the key for the given TTL.
func (c *reportCache) Set(ctx context.Context, key string, report *entity.Report, ttl time.Duration) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report for cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}

	return nil
}
