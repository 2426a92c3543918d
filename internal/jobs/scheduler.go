package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// RetentionUserID owns the global audio retention job.
const RetentionUserID int64 = 0

// Scheduler periodically enqueues the audio retention sweep.
type Scheduler struct {
	store    store.Store
	interval time.Duration
	log      zerolog.Logger
}

func NewScheduler(s store.Store, interval time.Duration, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{store: s, interval: interval, log: log}
}

// Run enqueues one sweep immediately and then every interval until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		if err := s.EnqueueSweep(ctx); err != nil && ctx.Err() == nil {
			s.log.Error().Err(err).Msg("enqueue audio retention sweep")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// EnqueueSweep queues a sweep unless one is already pending or running.
func (s *Scheduler) EnqueueSweep(ctx context.Context) error {
	open, err := s.store.Jobs().HasOpen(ctx, RetentionUserID, model.JobAudioRetention)
	if err != nil || open {
		return err
	}
	j := &model.Job{UserID: RetentionUserID, Kind: model.JobAudioRetention}
	if err := s.store.Jobs().Enqueue(ctx, j); err != nil {
		return err
	}
	s.log.Debug().Str("job_id", j.ID).Msg("audio retention sweep queued")
	return nil
}
