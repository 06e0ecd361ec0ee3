package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"forgebase.backend/internal/domain/repositories"
	"forgebase.backend/pkg/logger"
)

// UsageRetentionJob periodically removes usage records older than the
// retention window. The store has no TTL index, so expiry is "within a
// bounded grace period after the window", not at an exact instant;
// aggregation queries are time-bounded and never see stale rows either way.
type UsageRetentionJob struct {
	repo      repositories.UsageRecordRepository
	retention time.Duration
	interval  time.Duration
	stop      chan struct{}
}

// NewUsageRetentionJob creates a retention job. retention and interval
// fall back to 90 days and 1 hour when non-positive.
func NewUsageRetentionJob(repo repositories.UsageRecordRepository, retention, interval time.Duration) *UsageRetentionJob {
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &UsageRetentionJob{
		repo:      repo,
		retention: retention,
		interval:  interval,
		stop:      make(chan struct{}),
	}
}

// Start runs the sweep loop until the context is cancelled or Stop is called
func (j *UsageRetentionJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting usage retention job",
		zap.Duration("retention", j.retention),
		zap.Duration("interval", j.interval),
	)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// One sweep at startup so a long-stopped instance catches up promptly.
	j.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Usage retention job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Usage retention job stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

// Stop signals the loop to exit
func (j *UsageRetentionJob) Stop() {
	close(j.stop)
}

func (j *UsageRetentionJob) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-j.retention)
	removed, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error(ctx, "Usage retention sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		logger.Info(ctx, "Expired usage records removed",
			zap.Int64("count", removed),
			zap.Time("cutoff", cutoff),
		)
	}
}
