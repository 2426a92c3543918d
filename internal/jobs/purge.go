package jobs

import (
	"context"
	"fmt"
	"os"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// purge deletes all of the user's data and export files. The job row itself
// survives so its status can still be read.
func (w *Worker) purge(ctx context.Context, j *model.Job) error {
	if err := w.store.Users().Purge(ctx, j.UserID, j.ID); err != nil {
		return fmt.Errorf("purge user %d: %w", j.UserID, err)
	}
	if err := os.RemoveAll(w.userExportDir(j.UserID)); err != nil {
		return fmt.Errorf("remove exports: %w", err)
	}
	return nil
}

// sweepAudio clears audio object keys older than each user's retention window.
func (w *Worker) sweepAudio(ctx context.Context) error {
	all, err := w.store.Settings().List(ctx)
	if err != nil {
		return fmt.Errorf("list settings: %w", err)
	}
	now := w.now()
	var total int64
	for _, s := range all {
		if s.AudioRetentionDays <= 0 {
			continue
		}
		cutoff := now.AddDate(0, 0, -s.AudioRetentionDays)
		n, err := w.store.CheckIns().ClearAudio(ctx, s.UserID, cutoff)
		if err != nil {
			return fmt.Errorf("clear audio for user %d: %w", s.UserID, err)
		}
		total += n
	}
	w.log.Info().Int("users", len(all)).Int64("cleared", total).Msg("audio retention sweep")
	return nil
}
