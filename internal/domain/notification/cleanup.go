package notification

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// CleanupJob prunes notifications past the retention period so the
// table doesn't grow without bound.
type CleanupJob struct {
	repo      Repository
	retention time.Duration
}

// NewCleanupJob creates a cleanup job
func NewCleanupJob(repo Repository, retention time.Duration) *CleanupJob {
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	return &CleanupJob{repo: repo, retention: retention}
}

// Start runs the job until ctx is cancelled. The first pass runs
// immediately, then once per interval.
func (j *CleanupJob) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	j.run(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Notification cleanup job stopped")
			return
		case <-ticker.C:
			j.run(ctx)
		}
	}
}

func (j *CleanupJob) run(ctx context.Context) {
	deleted, err := j.repo.DeleteOlderThan(ctx, j.retention)
	if err != nil {
		log.Error().Err(err).Msg("Failed to clean up old notifications")
		return
	}
	if deleted > 0 {
		log.Info().
			Int64("deleted", deleted).
			Dur("retention", j.retention).
			Msg("Cleaned up old notifications")
	}
}

// RunOnce runs a single cleanup pass and returns how many rows went
func (j *CleanupJob) RunOnce(ctx context.Context) (int64, error) {
	return j.repo.DeleteOlderThan(ctx, j.retention)
}
