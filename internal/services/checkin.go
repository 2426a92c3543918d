package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/garden"
	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

const (
	lockStripes    = 64
	maxCheckInText = 5000
	maxTags        = 20
	maxTagLen      = 50
)

// CreateCheckInRequest is the input of a new check-in. Text or STTText is required.
type CreateCheckInRequest struct {
	Text           *string  `json:"text,omitempty"`
	STTText        *string  `json:"sttText,omitempty"`
	AudioObjectKey *string  `json:"audioObjectKey,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// CheckInResult is what one check-in produced. HealthDelta is the change the
// sentiment asked for before the garden health was clamped.
type CheckInResult struct {
	CheckIn      *model.CheckIn       `json:"checkin"`
	Plant        *model.PlantInstance `json:"plant"`
	GardenHealth float64              `json:"gardenHealth"`
	HealthDelta  float64              `json:"healthDelta"`
}

// CheckInService runs the check-in pipeline: analyse, fold health, grow a plant.
type CheckInService struct {
	store     store.Store
	generator *garden.Generator
	log       zerolog.Logger

	// striped by user id; serialises the read-fold-write of garden health
	locks [lockStripes]sync.Mutex
}

func NewCheckInService(s store.Store, g *garden.Generator, log zerolog.Logger) *CheckInService {
	return &CheckInService{store: s, generator: g, log: log}
}

func (s *CheckInService) userLock(userID int64) *sync.Mutex {
	return &s.locks[uint64(userID)%lockStripes]
}

func (s *CheckInService) Create(ctx context.Context, userID int64, req CreateCheckInRequest) (*CheckInResult, error) {
	if err := validateCheckIn(req); err != nil {
		return nil, err
	}
	ci := &model.CheckIn{
		UserID:         userID,
		Text:           req.Text,
		STTText:        req.STTText,
		AudioObjectKey: req.AudioObjectKey,
		Tags:           req.Tags,
		Status:         model.CheckInStatusComplete,
	}
	if ci.Tags == nil {
		ci.Tags = []string{}
	}
	analysis := garden.Analyze(ci.AnalysisText())
	ci.EmotionLabel = analysis.EmotionLabel
	ci.SentimentScore = analysis.SentimentScore
	ci.Intensity = analysis.Intensity

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	g, err := s.store.Gardens().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load garden: %w", err)
	}
	existing, err := s.store.Plants().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load plants: %w", err)
	}
	params := s.generator.Generate(analysis, plantValues(existing))

	rec := &model.CheckInRecord{
		CheckIn: ci,
		Plant: &model.PlantInstance{
			UserID:    userID,
			Archetype: params.Archetype,
			Params:    params.Params,
			Position:  params.Position,
			StyleSkin: model.DefaultStyleSkin,
			Health:    model.DefaultPlantHealth,
		},
		GardenHealth: garden.FoldHealth(g.Health, analysis.SentimentScore),
	}
	if err := s.store.CheckIns().Record(ctx, rec); err != nil {
		return nil, fmt.Errorf("record checkin: %w", err)
	}

	s.log.Info().
		Int64("user_id", userID).
		Int64("checkin_id", ci.ID).
		Str("emotion", ci.EmotionLabel).
		Float64("sentiment", ci.SentimentScore).
		Float64("garden_health", rec.GardenHealth).
		Msg("checkin recorded")
	return &CheckInResult{
		CheckIn:      rec.CheckIn,
		Plant:        rec.Plant,
		GardenHealth: rec.GardenHealth,
		HealthDelta:  garden.HealthDelta(analysis.SentimentScore),
	}, nil
}

func validateCheckIn(req CreateCheckInRequest) error {
	text := ""
	if req.Text != nil {
		text = strings.TrimSpace(*req.Text)
	}
	stt := ""
	if req.STTText != nil {
		stt = strings.TrimSpace(*req.STTText)
	}
	if text == "" && stt == "" {
		return model.Validationf("text or sttText is required")
	}
	for name, v := range map[string]*string{"text": req.Text, "sttText": req.STTText} {
		if v != nil && utf8.RuneCountInString(*v) > maxCheckInText {
			return model.Validationf("%s exceeds %d characters", name, maxCheckInText)
		}
	}
	if len(req.Tags) > maxTags {
		return model.Validationf("at most %d tags allowed", maxTags)
	}
	for _, t := range req.Tags {
		if t == "" || utf8.RuneCountInString(t) > maxTagLen {
			return model.Validationf("tags must be 1-%d characters", maxTagLen)
		}
	}
	return nil
}

// List returns the user's check-ins, newest first. limit <= 0 returns all.
func (s *CheckInService) List(ctx context.Context, userID int64, limit int) ([]*model.CheckIn, error) {
	return s.store.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: userID, Limit: limit})
}

func (s *CheckInService) Get(ctx context.Context, userID, id int64) (*model.CheckIn, error) {
	ci, err := s.store.CheckIns().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if ci.UserID != userID {
		return nil, fmt.Errorf("checkin %d: %w", id, model.ErrForbidden)
	}
	return ci, nil
}

func (s *CheckInService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.store.CheckIns().Delete(ctx, userID, id)
}

func plantValues(in []*model.PlantInstance) []model.PlantInstance {
	out := make([]model.PlantInstance, 0, len(in))
	for _, p := range in {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}
