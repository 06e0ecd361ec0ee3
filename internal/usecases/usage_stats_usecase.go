package usecases

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"forgebase.backend/internal/domain/entities"
	domainerrors "forgebase.backend/internal/domain/errors"
	"forgebase.backend/internal/domain/repositories"
	"forgebase.backend/pkg/logger"
	"forgebase.backend/pkg/redis"
)

const (
	defaultTopEndpoints  = 10
	defaultRecentRecords = 10
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 90
	endpointPerfLimit    = 20
)

// UsageStatsUsecase records usage and answers aggregation queries
type UsageStatsUsecase struct {
	usageRepo   repositories.UsageRecordRepository
	projectRepo repositories.ProjectRepository
	apiKeyRepo  repositories.ApiKeyRepository
	cache       *redis.StatsCache
}

// NewUsageStatsUsecase creates a usage stats usecase. cache may be nil,
// in which case every query hits the store.
func NewUsageStatsUsecase(
	usageRepo repositories.UsageRecordRepository,
	projectRepo repositories.ProjectRepository,
	apiKeyRepo repositories.ApiKeyRepository,
	cache *redis.StatsCache,
) *UsageStatsUsecase {
	return &UsageStatsUsecase{
		usageRepo:   usageRepo,
		projectRepo: projectRepo,
		apiKeyRepo:  apiKeyRepo,
		cache:       cache,
	}
}

// RecordUsage persists one usage record. Fire-and-forget: any failure is
// logged and swallowed so tracking can never fail a served request.
func (u *UsageStatsUsecase) RecordUsage(ctx context.Context, record *entities.UsageRecord) {
	if err := u.usageRepo.Create(ctx, record); err != nil {
		logger.Error(ctx, "Failed to record API usage",
			zap.String("projectId", record.ProjectID.String()),
			zap.String("endpoint", record.Endpoint),
			zap.Error(err),
		)
	}
}

// GetProjectStats aggregates a project's usage over the period. limit
// caps the top-endpoints ranking and defaults to 10.
func (u *UsageStatsUsecase) GetProjectStats(ctx context.Context, projectID, userID uuid.UUID, period entities.Period, limit int) (*entities.UsageStats, error) {
	if err := u.checkProjectOwner(ctx, projectID, userID); err != nil {
		return nil, err
	}
	scope := entities.UsageScope{ProjectID: &projectID}
	return u.stats(ctx, "project", projectID, scope, period, limit)
}

// GetKeyStats aggregates a single key's usage over the period
func (u *UsageStatsUsecase) GetKeyStats(ctx context.Context, keyID, userID uuid.UUID, period entities.Period, limit int) (*entities.UsageStats, error) {
	key, err := u.apiKeyRepo.FindByID(ctx, keyID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("API key not found")
		}
		return nil, err
	}
	if err := u.checkProjectOwner(ctx, key.ProjectID, userID); err != nil {
		return nil, err
	}
	scope := entities.UsageScope{ApiKeyID: &keyID}
	return u.stats(ctx, "key", keyID, scope, period, limit)
}

// GetProjectAnalytics returns the charting series for a project: daily
// buckets over the last N days, hourly counts for the current day, and
// per-endpoint response time spread. days is clamped to [1, 90] and
// defaults to 30.
func (u *UsageStatsUsecase) GetProjectAnalytics(ctx context.Context, projectID, userID uuid.UUID, days int) (*entities.UsageAnalytics, error) {
	if err := u.checkProjectOwner(ctx, projectID, userID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = defaultAnalyticsDays
	}
	if days > maxAnalyticsDays {
		days = maxAnalyticsDays
	}

	selector := "analytics:" + strconv.Itoa(days)
	var cached entities.UsageAnalytics
	if u.cache != nil && u.cache.Get(ctx, "project", projectID.String(), selector, &cached) {
		return &cached, nil
	}

	scope := entities.UsageScope{ProjectID: &projectID}
	now := time.Now()
	from := now.AddDate(0, 0, -days)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	daily, err := u.usageRepo.DailySeries(ctx, scope, from, now)
	if err != nil {
		return nil, err
	}
	hourly, err := u.usageRepo.HourlyCounts(ctx, scope, startOfDay, now)
	if err != nil {
		return nil, err
	}
	perf, err := u.usageRepo.EndpointPerformance(ctx, scope, from, now, endpointPerfLimit)
	if err != nil {
		return nil, err
	}

	analytics := &entities.UsageAnalytics{
		Days:                days,
		DailySeries:         daily,
		HourlyToday:         hourly,
		EndpointPerformance: perf,
	}
	u.cacheSet(ctx, "project", projectID.String(), selector, analytics)
	return analytics, nil
}

func (u *UsageStatsUsecase) stats(ctx context.Context, scopeName string, id uuid.UUID, scope entities.UsageScope, period entities.Period, limit int) (*entities.UsageStats, error) {
	if limit <= 0 {
		limit = defaultTopEndpoints
	}
	selector := "stats:" + string(period) + ":" + strconv.Itoa(limit)
	var cached entities.UsageStats
	if u.cache != nil && u.cache.Get(ctx, scopeName, id.String(), selector, &cached) {
		return &cached, nil
	}

	now := time.Now()
	from := now.Add(-period.Duration())
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	total, err := u.usageRepo.CountInWindow(ctx, scope, from, now)
	if err != nil {
		return nil, err
	}
	today, err := u.usageRepo.CountInWindow(ctx, scope, startOfDay, now)
	if err != nil {
		return nil, err
	}
	errCount, err := u.usageRepo.CountErrorsInWindow(ctx, scope, from, now)
	if err != nil {
		return nil, err
	}
	avg, err := u.usageRepo.AvgResponseTime(ctx, scope, from, now)
	if err != nil {
		return nil, err
	}
	top, err := u.usageRepo.TopEndpoints(ctx, scope, from, now, limit)
	if err != nil {
		return nil, err
	}
	codes, err := u.usageRepo.StatusCodeCounts(ctx, scope, from, now)
	if err != nil {
		return nil, err
	}
	recent, err := u.usageRepo.Recent(ctx, scope, from, now, defaultRecentRecords)
	if err != nil {
		return nil, err
	}

	stats := &entities.UsageStats{
		Period:          period,
		TotalCalls:      total,
		CallsToday:      today,
		ErrorRate:       errorRate(errCount, total),
		AvgResponseTime: int(math.Round(avg)),
		TopEndpoints:    top,
		StatusCodes:     codes,
		RecentRequests:  recent,
	}
	u.cacheSet(ctx, scopeName, id.String(), selector, stats)
	return stats, nil
}

func (u *UsageStatsUsecase) cacheSet(ctx context.Context, scope, id, selector string, value interface{}) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, scope, id, selector, value); err != nil {
		logger.Debug(ctx, "Failed to cache usage stats", zap.Error(err))
	}
}

func (u *UsageStatsUsecase) checkProjectOwner(ctx context.Context, projectID, userID uuid.UUID) error {
	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("project not found")
		}
		return err
	}
	if project.UserID != userID {
		return domainerrors.Forbidden("project belongs to another user")
	}
	return nil
}

// errorRate renders errors/total as a percentage with two decimals.
// A zero total reads "0.00", never a division error.
func errorRate(errCount, total int64) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(errCount)/float64(total)*100)
}
