package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/insight"
	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// DefaultInsightLimit is used when a listing does not name a limit.
const DefaultInsightLimit = 10

// notificationWindow is how many check-ins feed notifications.
const notificationWindow = 10

// GenerateResult reports one insight generation run.
type GenerateResult struct {
	JobID    string          `json:"jobId"`
	Insights []model.Insight `json:"-"`
}

// InsightService lists, generates and derives insights and notifications.
type InsightService struct {
	store     store.Store
	generator *insight.Generator
	log       zerolog.Logger
	now       func() time.Time
}

func NewInsightService(s store.Store, g *insight.Generator, log zerolog.Logger) *InsightService {
	return &InsightService{store: s, generator: g, log: log, now: time.Now}
}

func (s *InsightService) List(ctx context.Context, userID int64, limit int) ([]*model.Insight, error) {
	if limit <= 0 {
		limit = DefaultInsightLimit
	}
	out, err := s.store.Insights().List(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*model.Insight{}
	}
	return out, nil
}

// Generate builds insights from the given check-ins, or the newest ones when
// ids is empty, and stores them together with a garden keeper message. IDs
// that are missing or owned by someone else are skipped.
func (s *InsightService) Generate(ctx context.Context, userID int64, ids []int64) (*GenerateResult, error) {
	checkins, err := s.source(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	values := model.CheckInValues(checkins)

	out := s.generator.Generate(ctx, values)
	out = append(out, insight.KeeperInsight(userID, values))
	for i := range out {
		out[i].UserID = userID
	}
	if err := s.store.Insights().CreateBatch(ctx, out); err != nil {
		return nil, fmt.Errorf("store insights: %w", err)
	}

	res := &GenerateResult{JobID: uuid.NewString(), Insights: out}
	s.log.Info().Int64("user_id", userID).Str("job_id", res.JobID).Int("checkins", len(values)).Int("insights", len(out)).Msg("insights generated")
	return res, nil
}

func (s *InsightService) source(ctx context.Context, userID int64, ids []int64) ([]*model.CheckIn, error) {
	if len(ids) == 0 {
		return s.store.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: userID, Limit: insight.LLMWindow})
	}
	out := make([]*model.CheckIn, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		c, err := s.store.CheckIns().Get(ctx, id)
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load checkin %d: %w", id, err)
		}
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Notifications computes the user's current nudges.
func (s *InsightService) Notifications(ctx context.Context, userID int64) ([]insight.Notification, error) {
	recent, err := s.store.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: userID, Limit: notificationWindow})
	if err != nil {
		return nil, err
	}
	out := insight.Notifications(model.CheckInValues(recent), s.now())
	if out == nil {
		out = []insight.Notification{}
	}
	return out, nil
}
