package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"forgebase.backend/internal/domain/entities"
	"forgebase.backend/internal/domain/repositories"
	"forgebase.backend/internal/infrastructure/models"
	"forgebase.backend/pkg/utils"
)

// usageRecordRepo implements repositories.UsageRecordRepository
type usageRecordRepo struct {
	db *gorm.DB
}

// NewUsageRecordRepository creates a new usage record repository
func NewUsageRecordRepository(db *gorm.DB) repositories.UsageRecordRepository {
	return &usageRecordRepo{db: db}
}

// Create inserts one immutable record
func (r *usageRecordRepo) Create(ctx context.Context, record *entities.UsageRecord) error {
	if record.ID == uuid.Nil {
		record.ID = utils.GenerateUUIDv7()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	meta := ""
	if len(record.Metadata) > 0 {
		raw, err := json.Marshal(record.Metadata)
		if err != nil {
			return err
		}
		meta = string(raw)
	}

	m := &models.UsageRecord{
		ID:             record.ID,
		ApiKeyID:       record.ApiKeyID,
		ProjectID:      record.ProjectID,
		Endpoint:       record.Endpoint,
		Method:         record.Method,
		StatusCode:     record.StatusCode,
		ResponseTimeMS: record.ResponseTimeMS,
		UserAgent:      record.UserAgent,
		IPAddress:      record.IPAddress,
		ErrorMessage:   record.ErrorMessage,
		RequestSize:    record.RequestSize,
		ResponseSize:   record.ResponseSize,
		Metadata:       meta,
		CreatedAt:      record.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// window builds the base query bounded to [from, to) and the scope
func (r *usageRecordRepo) window(ctx context.Context, scope entities.UsageScope, from, to time.Time) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.UsageRecord{}).
		Where("created_at >= ? AND created_at < ?", from, to)
	if scope.ProjectID != nil {
		q = q.Where("project_id = ?", *scope.ProjectID)
	}
	if scope.ApiKeyID != nil {
		q = q.Where("api_key_id = ?", *scope.ApiKeyID)
	}
	return q
}

// CountInWindow counts all records in the window
func (r *usageRecordRepo) CountInWindow(ctx context.Context, scope entities.UsageScope, from, to time.Time) (int64, error) {
	var count int64
	if err := r.window(ctx, scope, from, to).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountErrorsInWindow counts records with status >= 400
func (r *usageRecordRepo) CountErrorsInWindow(ctx context.Context, scope entities.UsageScope, from, to time.Time) (int64, error) {
	var count int64
	if err := r.window(ctx, scope, from, to).Where("status_code >= ?", 400).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AvgResponseTime returns the mean response time, 0 when no rows match
func (r *usageRecordRepo) AvgResponseTime(ctx context.Context, scope entities.UsageScope, from, to time.Time) (float64, error) {
	var avg sql.NullFloat64
	if err := r.window(ctx, scope, from, to).Select("AVG(response_time_ms)").Scan(&avg).Error; err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

type endpointStatRow struct {
	Endpoint   string
	Count      int64
	AvgRT      float64
	ErrorCount int64
}

// TopEndpoints ranks endpoints by call count
func (r *usageRecordRepo) TopEndpoints(ctx context.Context, scope entities.UsageScope, from, to time.Time, limit int) ([]*entities.EndpointStat, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []endpointStatRow
	err := r.window(ctx, scope, from, to).
		Select("endpoint, COUNT(*) AS count, AVG(response_time_ms) AS avg_rt, SUM(CASE WHEN status_code >= 400 THEN 1 ELSE 0 END) AS error_count").
		Group("endpoint").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]*entities.EndpointStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, &entities.EndpointStat{
			Endpoint:        row.Endpoint,
			Count:           row.Count,
			AvgResponseTime: int(math.Round(row.AvgRT)),
			ErrorCount:      row.ErrorCount,
		})
	}
	return stats, nil
}

// StatusCodeCounts returns the histogram in ascending code order
func (r *usageRecordRepo) StatusCodeCounts(ctx context.Context, scope entities.UsageScope, from, to time.Time) ([]*entities.StatusCodeCount, error) {
	var rows []*entities.StatusCodeCount
	err := r.window(ctx, scope, from, to).
		Select("status_code, COUNT(*) AS count").
		Group("status_code").
		Order("status_code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*entities.StatusCodeCount{}
	}
	return rows, nil
}

// Recent returns the newest records in the window, newest first
func (r *usageRecordRepo) Recent(ctx context.Context, scope entities.UsageScope, from, to time.Time, limit int) ([]*entities.UsageRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	var ms []models.UsageRecord
	err := r.window(ctx, scope, from, to).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	records := make([]*entities.UsageRecord, 0, len(ms))
	for i := range ms {
		rec, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

type bucketRow struct {
	CreatedAt      time.Time
	ResponseTimeMS int
	StatusCode     int
}

// DailySeries buckets the window by calendar day of the stored timestamp.
// Bucketing happens in Go so the query stays portable across Postgres and
// the sqlite test driver.
func (r *usageRecordRepo) DailySeries(ctx context.Context, scope entities.UsageScope, from, to time.Time) ([]*entities.DailyUsage, error) {
	var rows []bucketRow
	err := r.window(ctx, scope, from, to).
		Select("created_at, response_time_ms, status_code").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	type acc struct {
		count   int64
		totalRT int64
		errors  int64
	}
	buckets := make(map[string]*acc)
	for _, row := range rows {
		day := row.CreatedAt.Format("2006-01-02")
		b := buckets[day]
		if b == nil {
			b = &acc{}
			buckets[day] = b
		}
		b.count++
		b.totalRT += int64(row.ResponseTimeMS)
		if row.StatusCode >= 400 {
			b.errors++
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]*entities.DailyUsage, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		series = append(series, &entities.DailyUsage{
			Date:            day,
			Count:           b.count,
			AvgResponseTime: int(math.Round(float64(b.totalRT) / float64(b.count))),
			ErrorCount:      b.errors,
		})
	}
	return series, nil
}

// HourlyCounts buckets the window by hour of the stored timestamp
func (r *usageRecordRepo) HourlyCounts(ctx context.Context, scope entities.UsageScope, from, to time.Time) ([]*entities.HourlyUsage, error) {
	var rows []bucketRow
	err := r.window(ctx, scope, from, to).
		Select("created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64)
	for _, row := range rows {
		counts[row.CreatedAt.Hour()]++
	}

	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	out := make([]*entities.HourlyUsage, 0, len(hours))
	for _, h := range hours {
		out = append(out, &entities.HourlyUsage{Hour: h, Count: counts[h]})
	}
	return out, nil
}

type endpointPerfRow struct {
	Endpoint string
	Count    int64
	MinRT    int
	MaxRT    int
	AvgRT    float64
}

// EndpointPerformance returns min/max/mean response times per endpoint,
// top `limit` by call count
func (r *usageRecordRepo) EndpointPerformance(ctx context.Context, scope entities.UsageScope, from, to time.Time, limit int) ([]*entities.EndpointPerformance, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []endpointPerfRow
	err := r.window(ctx, scope, from, to).
		Select("endpoint, COUNT(*) AS count, MIN(response_time_ms) AS min_rt, MAX(response_time_ms) AS max_rt, AVG(response_time_ms) AS avg_rt").
		Group("endpoint").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.EndpointPerformance, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entities.EndpointPerformance{
			Endpoint:        row.Endpoint,
			Count:           row.Count,
			MinResponseTime: row.MinRT,
			MaxResponseTime: row.MaxRT,
			AvgResponseTime: int(math.Round(row.AvgRT)),
		})
	}
	return out, nil
}

// DeleteOlderThan removes records past the retention cutoff
func (r *usageRecordRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.UsageRecord{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *usageRecordRepo) toEntity(m *models.UsageRecord) (*entities.UsageRecord, error) {
	var meta map[string]string
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &meta); err != nil {
			return nil, err
		}
	}

	return &entities.UsageRecord{
		ID:             m.ID,
		ApiKeyID:       m.ApiKeyID,
		ProjectID:      m.ProjectID,
		Endpoint:       m.Endpoint,
		Method:         m.Method,
		StatusCode:     m.StatusCode,
		ResponseTimeMS: m.ResponseTimeMS,
		UserAgent:      m.UserAgent,
		IPAddress:      m.IPAddress,
		ErrorMessage:   m.ErrorMessage,
		RequestSize:    m.RequestSize,
		ResponseSize:   m.ResponseSize,
		Metadata:       meta,
		CreatedAt:      m.CreatedAt,
	}, nil
}
