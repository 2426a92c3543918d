package analytics

import (
	"time"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// Achievement is a badge earned by the user.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AchievementStats struct {
	TotalCheckIns  int     `json:"totalCheckins"`
	TotalPlants    int     `json:"totalPlants"`
	GardenHealth   float64 `json:"gardenHealth"`
	CurrentStreak  int     `json:"currentStreak"`
	UniqueEmotions int     `json:"uniqueEmotions"`
}

type Achievements struct {
	Achievements []Achievement    `json:"achievements"`
	Stats        AchievementStats `json:"stats"`
}

const positiveSentiment = 0.2

type rule struct {
	Achievement
	earned func(s AchievementStats, positives int) bool
}

var rules = []rule{
	{Achievement{"first_checkin", "First Steps", "Made your first emotional check-in"}, func(s AchievementStats, _ int) bool { return s.TotalCheckIns >= 1 }},
	{Achievement{"regular_logger", "Regular Logger", "Made 10 check-ins"}, func(s AchievementStats, _ int) bool { return s.TotalCheckIns >= 10 }},
	{Achievement{"dedicated_gardener", "Dedicated Gardener", "Made 50 check-ins"}, func(s AchievementStats, _ int) bool { return s.TotalCheckIns >= 50 }},
	{Achievement{"master_gardener", "Master Gardener", "Made 100 check-ins"}, func(s AchievementStats, _ int) bool { return s.TotalCheckIns >= 100 }},
	{Achievement{"emotion_explorer", "Emotion Explorer", "Experienced 3 different emotions"}, func(s AchievementStats, _ int) bool { return s.UniqueEmotions >= 3 }},
	{Achievement{"emotion_master", "Emotion Master", "Experienced 5 different emotions"}, func(s AchievementStats, _ int) bool { return s.UniqueEmotions >= 5 }},
	{Achievement{"positive_week", "Positive Week", "Made 7 positive check-ins"}, func(_ AchievementStats, p int) bool { return p >= 7 }},
	{Achievement{"growing_garden", "Growing Garden", "Grew 5 plants"}, func(s AchievementStats, _ int) bool { return s.TotalPlants >= 5 }},
	{Achievement{"flourishing_garden", "Flourishing Garden", "Grew 20 plants"}, func(s AchievementStats, _ int) bool { return s.TotalPlants >= 20 }},
	{Achievement{"healthy_garden", "Healthy Garden", "Maintained garden health above 80%"}, func(s AchievementStats, _ int) bool { return s.GardenHealth >= 0.8 }},
	{Achievement{"week_streak", "Week Streak", "Checked in for 7 days straight"}, func(s AchievementStats, _ int) bool { return s.CurrentStreak >= 7 }},
	{Achievement{"month_streak", "Month Streak", "Checked in for 30 days straight"}, func(s AchievementStats, _ int) bool { return s.CurrentStreak >= 30 }},
}

// Earned evaluates every achievement rule.
func Earned(g *model.Garden, plantCount int, checkins []model.CheckIn, now time.Time) Achievements {
	labels := make(map[string]struct{})
	positives := 0
	for _, c := range checkins {
		labels[labelOf(c)] = struct{}{}
		if c.SentimentScore > positiveSentiment {
			positives++
		}
	}
	stats := AchievementStats{
		TotalCheckIns:  len(checkins),
		TotalPlants:    plantCount,
		CurrentStreak:  Streak(checkins, now),
		UniqueEmotions: len(labels),
	}
	if g != nil {
		stats.GardenHealth = g.Health
	}

	out := Achievements{Achievements: []Achievement{}, Stats: stats}
	for _, r := range rules {
		if r.earned(stats, positives) {
			out.Achievements = append(out.Achievements, r.Achievement)
		}
	}
	return out
}

// Streak counts consecutive UTC calendar days with at least one check-in,
// ending today. No check-in today means a streak of zero.
func Streak(checkins []model.CheckIn, now time.Time) int {
	days := make(map[string]struct{}, len(checkins))
	for _, c := range checkins {
		days[c.CreatedAt.UTC().Format(dayLayout)] = struct{}{}
	}
	streak := 0
	for d := now.UTC(); ; d = d.AddDate(0, 0, -1) {
		if _, ok := days[d.Format(dayLayout)]; !ok {
			return streak
		}
		streak++
	}
}
