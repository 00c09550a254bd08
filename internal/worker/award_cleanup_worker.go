package worker

import (
	"context"
	"time"

	"github.com/promokit/wheel-service/internal/logger"
)

// AwardPurger is the slice of the history store the cleanup job needs
type AwardPurger interface {
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

// DefaultAwardRetention is how long expired unredeemed awards stay queryable
// before cleanup removes them. Keeping them a while means a stale code still
// gets a clear "expired" answer instead of "not found".
const DefaultAwardRetention = 30 * 24 * time.Hour

// AwardCleanupJob deletes long-expired unredeemed awards from the store.
// It implements Job so it can be scheduled on a Pool.
type AwardCleanupJob struct {
	repo      AwardPurger
	retention time.Duration
	clock     func() time.Time
}

// NewAwardCleanupJob creates a cleanup job with the given retention window
func NewAwardCleanupJob(repo AwardPurger, retention time.Duration) *AwardCleanupJob {
	if retention <= 0 {
		retention = DefaultAwardRetention
	}
	return &AwardCleanupJob{
		repo:      repo,
		retention: retention,
		clock:     time.Now,
	}
}

// Process removes awards whose expiry lies beyond the retention window
func (j *AwardCleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	cutoff := j.clock().UTC().Add(-j.retention)

	log.Debug(LogMsgAwardCleanupStarting, "cutoff", cutoff)

	removed, err := j.repo.PurgeExpired(ctx, cutoff)
	if err != nil {
		log.Error(LogMsgAwardCleanupFailed, "error", err)
		return err
	}

	if removed > 0 {
		log.Info(LogMsgAwardCleanupCompleted, "removed", removed, "cutoff", cutoff)
	}
	return nil
}
