package analytics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavideLicci/MindGarden/internal/model"
)

var now = time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

func at(daysAgo int, hour int, score float64, label string) model.CheckIn {
	d := now.AddDate(0, 0, -daysAgo)
	return model.CheckIn{
		CreatedAt:      time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC),
		SentimentScore: score,
		EmotionLabel:   label,
		Intensity:      0.5,
	}
}

func TestTrends(t *testing.T) {
	checkins := []model.CheckIn{
		at(0, 10, 1, "positivo"),
		at(0, 9, 0, ""),
		at(1, 9, -1, "negativo"),
		at(40, 9, -1, "negativo"),
	}
	got := Trends(checkins, 30, now)

	assert.Equal(t, 3, got.TotalCheckIns)
	assert.Equal(t, map[string]int{"positivo": 1, "neutral": 1, "negativo": 1}, got.EmotionSummary)
	assert.Equal(t, map[string]int{"positivo": 1, "neutral": 1}, got.EmotionTrends["2024-05-10"])
	want := []DaySentiment{
		{Date: "2024-05-09", AvgSentiment: -1, CheckInCount: 1},
		{Date: "2024-05-10", AvgSentiment: 0.5, CheckInCount: 2},
	}
	if diff := cmp.Diff(want, got.SentimentTrends); diff != "" {
		t.Fatalf("sentiment trends mismatch (-want +got):\n%s", diff)
	}
}

func TestTrends_Empty(t *testing.T) {
	got := Trends(nil, 30, now)
	assert.Zero(t, got.TotalCheckIns)
	assert.NotNil(t, got.SentimentTrends)
}

func TestHealth(t *testing.T) {
	var checkins []model.CheckIn
	for i := 0; i < 5; i++ {
		checkins = append(checkins, at(i, 9, 0.8, "positivo"))
	}
	for i := 5; i < 10; i++ {
		checkins = append(checkins, at(i, 9, -0.2, "neutrale"))
	}
	plants := []model.PlantInstance{{Health: 0.5, GrowthProgress: 0.1}, {Health: 0.8, GrowthProgress: 0.2}}

	got := Health(&model.Garden{Health: 0.7}, plants, checkins)
	assert.Equal(t, TrendImproving, got.HealthTrend)
	assert.Equal(t, 0.7, got.GardenHealth)
	assert.InDelta(t, 0.65, got.AvgPlantHealth, 1e-9)
	assert.InDelta(t, 0.15, got.AvgGrowth, 1e-9)
	assert.InDelta(t, 0.3, got.AvgSentiment, 1e-9)
	assert.Equal(t, 2, got.PlantCount)
	require.NotNil(t, got.LastCheckIn)

	// fewer than ten check-ins never trend
	assert.Equal(t, TrendStable, Health(nil, nil, checkins[:9]).HealthTrend)
	assert.Nil(t, Health(nil, nil, nil).LastCheckIn)
}

func TestStreak_CountsDaysNotCheckIns(t *testing.T) {
	checkins := []model.CheckIn{
		at(0, 12, 0, ""), at(0, 8, 0, ""), at(0, 7, 0, ""),
		at(1, 9, 0, ""),
		at(2, 9, 0, ""), at(2, 8, 0, ""),
		// gap on day 3
		at(4, 9, 0, ""),
	}
	assert.Equal(t, 3, Streak(checkins, now))
	assert.Zero(t, Streak(checkins[3:], now))
	assert.Zero(t, Streak(nil, now))
}

func TestEarned(t *testing.T) {
	var checkins []model.CheckIn
	for i := 0; i < 10; i++ {
		checkins = append(checkins, at(i, 9, 0.5, []string{"positivo", "negativo", "neutrale"}[i%3]))
	}
	got := Earned(&model.Garden{Health: 0.85}, 5, checkins, now)

	var ids []string
	for _, a := range got.Achievements {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{
		"first_checkin", "regular_logger", "emotion_explorer", "positive_week",
		"growing_garden", "healthy_garden", "week_streak",
	}, ids)
	assert.Equal(t, AchievementStats{
		TotalCheckIns: 10, TotalPlants: 5, GardenHealth: 0.85, CurrentStreak: 10, UniqueEmotions: 3,
	}, got.Stats)

	empty := Earned(nil, 0, nil, now)
	assert.Empty(t, empty.Achievements)
	assert.NotNil(t, empty.Achievements)
}

func TestReport(t *testing.T) {
	checkins := []model.CheckIn{
		at(0, 9, 0.5, "positivo"),
		at(1, 9, 0.5, "positivo"),
		at(2, 9, -0.5, "neutrale"),
		at(3, 9, -0.5, "neutrale"),
		at(20, 9, -1, "negativo"),
	}
	got := Report("weekly", checkins, now)

	require.NotNil(t, got.Metrics)
	assert.Equal(t, PeriodWeekly, got.Period)
	assert.Equal(t, &DateRange{From: "2024-05-03", To: "2024-05-10"}, got.DateRange)
	assert.Equal(t, 4, got.Metrics.TotalCheckIns)
	assert.Zero(t, got.Metrics.AvgSentiment)
	assert.Equal(t, 0.5, got.Metrics.AvgIntensity)
	assert.Equal(t, "positivo", got.Metrics.DominantEmotion)
	assert.Equal(t, TrendImproving, got.Metrics.Trend)
	assert.Equal(t, map[string]int{"positivo": 2, "neutrale": 2}, got.EmotionDistribution)
	assert.Equal(t, []string{
		`Your most common emotion this weekly was "positivo"`,
		"Overall emotional trend: improving",
	}, got.Insights)
	assert.Equal(t, []string{"Keep up the great work! Continue the positive habits that are helping"}, got.Recommendations)

	monthly := Report("monthly", checkins, now)
	assert.Equal(t, 5, monthly.Metrics.TotalCheckIns)

	empty := Report("yearly", nil, now)
	assert.Equal(t, PeriodWeekly, empty.Period)
	assert.Nil(t, empty.Metrics)
	assert.Equal(t, "No check-ins found for the last 7 days", empty.Message)
}

func TestRecommendations(t *testing.T) {
	got := Recommendations(-0.5, "anxiety", TrendDeclining)
	assert.Len(t, got, 5)
	assert.Equal(t, []string{
		"Continue monitoring your emotional well-being",
		"Consider journaling about what brings you joy and peace",
	}, Recommendations(0, "neutrale", TrendStable))
}
