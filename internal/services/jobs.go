package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/jobs"
	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// JobService queues export and deletion jobs and reports their status.
type JobService struct {
	store store.Store
	log   zerolog.Logger
}

func NewJobService(s store.Store, log zerolog.Logger) *JobService {
	return &JobService{store: s, log: log}
}

func (s *JobService) RequestExport(ctx context.Context, userID int64, format string) (*model.Job, error) {
	if format != jobs.FormatJSON && format != jobs.FormatZIP {
		return nil, model.Validationf("format must be json or zip")
	}
	return s.enqueue(ctx, &model.Job{UserID: userID, Kind: model.JobExport, Format: format})
}

// RequestDelete queues the deletion of all the user's data. A deletion that
// is already queued is returned as a conflict.
func (s *JobService) RequestDelete(ctx context.Context, userID int64) (*model.Job, error) {
	open, err := s.store.Jobs().HasOpen(ctx, userID, model.JobDelete)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, fmt.Errorf("%w: deletion already in progress", model.ErrConflict)
	}
	return s.enqueue(ctx, &model.Job{UserID: userID, Kind: model.JobDelete})
}

func (s *JobService) Get(ctx context.Context, userID int64, jobID string) (*model.Job, error) {
	j, err := s.store.Jobs().Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.UserID != userID {
		return nil, fmt.Errorf("job %s: %w", jobID, model.ErrForbidden)
	}
	return j, nil
}

func (s *JobService) enqueue(ctx context.Context, j *model.Job) (*model.Job, error) {
	if err := s.store.Jobs().Enqueue(ctx, j); err != nil {
		return nil, fmt.Errorf("enqueue %s job: %w", j.Kind, err)
	}
	s.log.Info().Str("job_id", j.ID).Str("kind", j.Kind).Int64("user_id", j.UserID).Msg("job queued")
	return j, nil
}
