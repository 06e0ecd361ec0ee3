package repositories

import (
	"context"
	"time"

	"forgebase.backend/internal/domain/entities"
)

// UsageRecordRepository persists and aggregates immutable usage records.
// Every query method is restricted to [from, to) and must return
// zero-valued results, not errors, when nothing matches.
type UsageRecordRepository interface {
	Create(ctx context.Context, record *entities.UsageRecord) error
	CountInWindow(ctx context.Context, scope entities.UsageScope, from, to time.Time) (int64, error)
	CountErrorsInWindow(ctx context.Context, scope entities.UsageScope, from, to time.Time) (int64, error)
	AvgResponseTime(ctx context.Context, scope entities.UsageScope, from, to time.Time) (float64, error)
	TopEndpoints(ctx context.Context, scope entities.UsageScope, from, to time.Time, limit int) ([]*entities.EndpointStat, error)
	StatusCodeCounts(ctx context.Context, scope entities.UsageScope, from, to time.Time) ([]*entities.StatusCodeCount, error)
	Recent(ctx context.Context, scope entities.UsageScope, from, to time.Time, limit int) ([]*entities.UsageRecord, error)
	DailySeries(ctx context.Context, scope entities.UsageScope, from, to time.Time) ([]*entities.DailyUsage, error)
	HourlyCounts(ctx context.Context, scope entities.UsageScope, from, to time.Time) ([]*entities.HourlyUsage, error)
	EndpointPerformance(ctx context.Context, scope entities.UsageScope, from, to time.Time, limit int) ([]*entities.EndpointPerformance, error)
	// DeleteOlderThan enforces retention; returns the number of rows removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
