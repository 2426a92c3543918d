package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/garden"
	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// GardenAggregate is the garden-level summary in a snapshot.
type GardenAggregate struct {
	Health     float64 `json:"health"`
	PlantCount int     `json:"plantCount"`
}

// GardenSnapshot is the full view of a user's garden.
type GardenSnapshot struct {
	GardenID    string                 `json:"gardenId"`
	UserID      int64                  `json:"userId"`
	CreatedAt   time.Time              `json:"createdAt"`
	Plants      []*model.PlantInstance `json:"plants"`
	Aggregate   GardenAggregate        `json:"aggregate"`
	LastCheckIn *model.CheckIn         `json:"lastCheckin"`
}

// GardenService serves garden snapshots and plant care.
type GardenService struct {
	store store.Store
	log   zerolog.Logger
}

func NewGardenService(s store.Store, log zerolog.Logger) *GardenService {
	return &GardenService{store: s, log: log}
}

func (s *GardenService) Snapshot(ctx context.Context, userID int64) (*GardenSnapshot, error) {
	g, err := s.store.Gardens().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load garden: %w", err)
	}
	plants, err := s.store.Plants().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load plants: %w", err)
	}
	if plants == nil {
		plants = []*model.PlantInstance{}
	}
	latest, err := s.store.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: userID, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("load last checkin: %w", err)
	}
	out := &GardenSnapshot{
		GardenID:  g.ID,
		UserID:    g.UserID,
		CreatedAt: g.CreatedAt,
		Plants:    plants,
		Aggregate: GardenAggregate{Health: g.Health, PlantCount: len(plants)},
	}
	if len(latest) > 0 {
		out.LastCheckIn = latest[0]
	}
	return out, nil
}

// GetPlant returns a plant owned by userID.
func (s *GardenService) GetPlant(ctx context.Context, userID int64, plantID string) (*model.PlantInstance, error) {
	p, err := s.store.Plants().Get(ctx, plantID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("plant %s: %w", plantID, model.ErrNotFound)
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("plant %s: %w", plantID, model.ErrForbidden)
	}
	return p, nil
}

// Care applies a care action and returns the updated plant.
func (s *GardenService) Care(ctx context.Context, userID int64, plantID, action string) (*model.PlantInstance, error) {
	p, err := s.GetPlant(ctx, userID, plantID)
	if err != nil {
		return nil, err
	}
	health, growth, err := garden.ApplyCare(*p, action)
	if err != nil {
		return nil, err
	}
	if err := s.store.Plants().UpdateCare(ctx, plantID, health, growth); err != nil {
		return nil, fmt.Errorf("update plant: %w", err)
	}
	s.log.Debug().Str("plant_id", plantID).Str("action", action).Float64("health", health).Float64("growth", growth).Msg("plant cared for")
	p.Health, p.GrowthProgress = health, growth
	return p, nil
}
