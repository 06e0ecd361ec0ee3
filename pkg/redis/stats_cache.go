package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache is a short-lived cache for usage analytics responses. Analytics
// queries scan up to 90 days of records, so dashboards polling the same
// window share one computation for the TTL duration.
type StatsCache struct {
	ttl time.Duration
}

// NewStatsCache creates a stats cache with the given TTL
func NewStatsCache(ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &StatsCache{ttl: ttl}
}

func statsKey(scope, id, selector string) string {
	return fmt.Sprintf("usage:stats:%s:%s:%s", scope, id, selector)
}

// Get loads a cached value into dest. Returns false on miss or decode error.
func (c *StatsCache) Get(ctx context.Context, scope, id, selector string, dest interface{}) bool {
	raw, err := Get(ctx, statsKey(scope, id, selector))
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

// Set stores value under the scope/id/selector key for the cache TTL
func (c *StatsCache) Set(ctx context.Context, scope, id, selector string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Set(ctx, statsKey(scope, id, selector), raw, c.ttl)
}

// Invalidate drops a single cached window
func (c *StatsCache) Invalidate(ctx context.Context, scope, id, selector string) error {
	err := Del(ctx, statsKey(scope, id, selector))
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
