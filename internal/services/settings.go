package services

import (
	"context"
	"errors"

	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// Processing modes.
const (
	ProcessingLocal = "local"
	ProcessingCloud = "cloud"
)

// Audio retention bounds, in days.
const (
	MinRetentionDays = 1
	MaxRetentionDays = 365
)

// SettingsService reads and patches per-user settings.
type SettingsService struct {
	store store.Store
}

func NewSettingsService(s store.Store) *SettingsService { return &SettingsService{store: s} }

// Get returns the stored settings, or the defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context, userID int64) (*model.Settings, error) {
	out, err := s.store.Settings().Get(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.DefaultSettings(userID), nil
	}
	return out, err
}

func (s *SettingsService) Patch(ctx context.Context, userID int64, p model.SettingsPatch) (*model.Settings, error) {
	if p.ProcessingMode != nil && *p.ProcessingMode != ProcessingLocal && *p.ProcessingMode != ProcessingCloud {
		return nil, model.Validationf("processingMode must be local or cloud")
	}
	if p.AudioRetentionDays != nil && (*p.AudioRetentionDays < MinRetentionDays || *p.AudioRetentionDays > MaxRetentionDays) {
		return nil, model.Validationf("audioRetentionDays must be between %d and %d", MinRetentionDays, MaxRetentionDays)
	}
	cur, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.ProcessingMode != nil {
		cur.ProcessingMode = *p.ProcessingMode
	}
	if p.AudioRetentionDays != nil {
		cur.AudioRetentionDays = *p.AudioRetentionDays
	}
	if p.ShareAnonymized != nil {
		cur.ShareAnonymized = *p.ShareAnonymized
	}
	if err := s.store.Settings().Upsert(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}
