// Package jobs runs queued background work over user data: exports, account
// deletion and the audio retention sweep.
package jobs

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// Config controls batch size, polling cadence and retry policy.
type Config struct {
	BatchSize   int           // number of jobs to lease per cycle
	Interval    time.Duration // poll interval
	Lease       time.Duration // how long a leased job stays claimed
	MaxAttempts int           // failures after which a job is marked failed
	ExportDir   string        // root directory for export archives
}

const maxBackoff = 300 * time.Second

// Worker leases jobs from the store and runs them.
type Worker struct {
	store store.Store
	log   zerolog.Logger
	cfg   Config
	now   func() time.Time
}

// NewWorker constructs a Worker from dependencies.
func NewWorker(s store.Store, cfg Config, log zerolog.Logger) *Worker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.Lease <= 0 {
		cfg.Lease = 5 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "data/exports"
	}
	return &Worker{store: s, log: log, cfg: cfg, now: time.Now}
}

// Run starts the polling loop until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info().Int("batch", w.cfg.BatchSize).Dur("interval", w.cfg.Interval).Msg("jobs worker starting")
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("jobs worker stopping")
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.ProcessOnce(ctx); err != nil {
				// Log and continue; per-job backoff prevents hot-looping
				w.log.Error().Err(err).Msg("jobs processOnce")
			}
		}
	}
}

// ProcessOnce leases one batch and runs it, returning how many jobs it handled.
func (w *Worker) ProcessOnce(ctx context.Context) (int, error) {
	batch, err := w.store.Jobs().Lease(ctx, w.now(), w.cfg.Lease, w.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("lease jobs: %w", err)
	}
	for _, j := range batch {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		w.runOne(ctx, j)
	}
	return len(batch), nil
}

func (w *Worker) runOne(ctx context.Context, j *model.Job) {
	log := w.log.With().Str("job_id", j.ID).Str("kind", j.Kind).Int64("user_id", j.UserID).Logger()
	start := w.now()

	result, err := w.handle(ctx, j)
	jobRunDuration.WithLabelValues(j.Kind).Observe(w.now().Sub(start).Seconds())
	if err != nil {
		final := j.Attempts+1 >= w.cfg.MaxAttempts
		next := w.now().Add(Backoff(j.Attempts))
		outcome := outcomeRetry
		if final {
			outcome = outcomeFailed
		}
		jobsProcessedTotal.WithLabelValues(j.Kind, outcome).Inc()
		log.Warn().Err(err).Int("attempt", j.Attempts+1).Bool("final", final).Msg("job failed")
		if e := w.store.Jobs().MarkFailed(ctx, j.ID, err.Error(), next, final); e != nil {
			log.Error().Err(e).Msg("markFailed error")
		}
		return
	}
	if e := w.store.Jobs().MarkDone(ctx, j.ID, result); e != nil {
		log.Error().Err(e).Msg("markDone error")
		return
	}
	jobsProcessedTotal.WithLabelValues(j.Kind, outcomeDone).Inc()
	log.Info().Dur("took", w.now().Sub(start)).Str("result", result).Msg("job done")
}

// handle executes the job and returns its result path, if any.
func (w *Worker) handle(ctx context.Context, j *model.Job) (string, error) {
	switch j.Kind {
	case model.JobExport:
		return w.export(ctx, j)
	case model.JobDelete:
		return "", w.purge(ctx, j)
	case model.JobAudioRetention:
		return "", w.sweepAudio(ctx)
	default:
		return "", fmt.Errorf("unknown job kind: %s", j.Kind)
	}
}

// Backoff is the delay before retrying a job that has failed attempts times:
// 2^(attempts+1) seconds, capped at five minutes.
func Backoff(attempts int) time.Duration {
	d := time.Duration(math.Pow(2, float64(attempts+1))) * time.Second
	if d > maxBackoff || d <= 0 {
		return maxBackoff
	}
	return d
}
