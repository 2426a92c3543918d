package services

import (
	"context"
	"time"

	"github.com/DavideLicci/MindGarden/internal/analytics"
	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// DefaultTrendDays is the emotion trend window when none is given.
const DefaultTrendDays = 30

// MaxTrendDays bounds the emotion trend window.
const MaxTrendDays = 365

// AnalyticsService loads user data for the analytics views.
type AnalyticsService struct {
	store store.Store
	now   func() time.Time
}

func NewAnalyticsService(s store.Store) *AnalyticsService {
	return &AnalyticsService{store: s, now: time.Now}
}

func (s *AnalyticsService) EmotionTrends(ctx context.Context, userID int64, days int) (*analytics.EmotionTrends, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	if days > MaxTrendDays {
		return nil, model.Validationf("days must be between 1 and %d", MaxTrendDays)
	}
	now := s.now()
	since := now.AddDate(0, 0, -days)
	list, err := s.store.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: userID, Since: &since})
	if err != nil {
		return nil, err
	}
	out := analytics.Trends(model.CheckInValues(list), days, now)
	return &out, nil
}

func (s *AnalyticsService) GardenHealth(ctx context.Context, userID int64) (*analytics.GardenHealth, error) {
	g, plants, checkins, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := analytics.Health(g, plantValues(plants), checkins)
	return &out, nil
}

func (s *AnalyticsService) Achievements(ctx context.Context, userID int64) (*analytics.Achievements, error) {
	g, plants, checkins, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := analytics.Earned(g, len(plants), checkins, s.now())
	return &out, nil
}

func (s *AnalyticsService) Report(ctx context.Context, userID int64, period string) (*analytics.PeriodReport, error) {
	if period == "" {
		period = analytics.PeriodWeekly
	}
	if period != analytics.PeriodWeekly && period != analytics.PeriodMonthly {
		return nil, model.Validationf("period must be weekly or monthly")
	}
	now := s.now()
	since := now.AddDate(0, 0, -analytics.PeriodDays(period))
	list, err := s.store.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: userID, Since: &since})
	if err != nil {
		return nil, err
	}
	out := analytics.Report(period, model.CheckInValues(list), now)
	return &out, nil
}

func (s *AnalyticsService) load(ctx context.Context, userID int64) (*model.Garden, []*model.PlantInstance, []model.CheckIn, error) {
	g, err := s.store.Gardens().GetByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	plants, err := s.store.Plants().ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	list, err := s.store.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: userID})
	if err != nil {
		return nil, nil, nil, err
	}
	return g, plants, model.CheckInValues(list), nil
}
