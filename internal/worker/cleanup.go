package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"triviarena/internal/storage"
)

// StartCleanupScheduler runs periodic cleanup passes against the active
// session backend. Only the in-memory backend reclaims anything; against
// Redis the pass is a no-op.
func StartCleanupScheduler(store *storage.Factory, interval time.Duration, logger *slog.Logger) (gocron.Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			removed, err := store.Cleanup(ctx)
			if err != nil {
				logger.Warn("session cleanup failed", "err", err)
				return
			}
			if removed > 0 {
				logger.Info("session cleanup", "removed", removed)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
