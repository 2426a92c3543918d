// Package analytics derives trend, health, achievement and report views from
// a user's check-ins, plants and garden. All inputs are ordered newest first.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/DavideLicci/MindGarden/internal/insight"
	"github.com/DavideLicci/MindGarden/internal/model"
)

// Trend labels.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

const (
	trendThreshold   = 0.1
	healthTrendBlock = 5
	recentWindow     = 10
	dayLayout        = "2006-01-02"
	unlabelled       = "neutral"
)

// DaySentiment is the average sentiment of one calendar day (UTC).
type DaySentiment struct {
	Date         string  `json:"date"`
	AvgSentiment float64 `json:"avgSentiment"`
	CheckInCount int     `json:"checkinCount"`
}

// EmotionTrends groups check-ins of the last Days days by day and label.
type EmotionTrends struct {
	EmotionTrends   map[string]map[string]int `json:"emotionTrends"`
	SentimentTrends []DaySentiment            `json:"sentimentTrends"`
	EmotionSummary  map[string]int            `json:"emotionSummary"`
	TotalCheckIns   int                       `json:"totalCheckins"`
}

// Trends builds EmotionTrends over check-ins created within days of now.
func Trends(checkins []model.CheckIn, days int, now time.Time) EmotionTrends {
	period := Since(checkins, now.AddDate(0, 0, -days))
	out := EmotionTrends{
		EmotionTrends:   make(map[string]map[string]int),
		SentimentTrends: []DaySentiment{},
		EmotionSummary:  make(map[string]int),
		TotalCheckIns:   len(period),
	}
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, c := range period {
		day := c.CreatedAt.UTC().Format(dayLayout)
		label := labelOf(c)
		if out.EmotionTrends[day] == nil {
			out.EmotionTrends[day] = make(map[string]int)
		}
		out.EmotionTrends[day][label]++
		out.EmotionSummary[label]++
		sums[day] += c.SentimentScore
		counts[day]++
	}
	for day, n := range counts {
		out.SentimentTrends = append(out.SentimentTrends, DaySentiment{
			Date:         day,
			AvgSentiment: round2(sums[day] / float64(n)),
			CheckInCount: n,
		})
	}
	sort.Slice(out.SentimentTrends, func(i, j int) bool {
		return out.SentimentTrends[i].Date < out.SentimentTrends[j].Date
	})
	return out
}

// GardenHealth summarises the state of a garden.
type GardenHealth struct {
	GardenHealth   float64    `json:"gardenHealth"`
	AvgPlantHealth float64    `json:"avgPlantHealth"`
	AvgSentiment   float64    `json:"avgSentiment"`
	AvgGrowth      float64    `json:"avgGrowth"`
	PlantCount     int        `json:"plantCount"`
	TotalCheckIns  int        `json:"totalCheckins"`
	HealthTrend    string     `json:"healthTrend"`
	LastCheckIn    *time.Time `json:"lastCheckin"`
}

// Health computes GardenHealth. The trend compares the latest five check-ins
// with the five before them and needs at least ten.
func Health(g *model.Garden, plants []model.PlantInstance, checkins []model.CheckIn) GardenHealth {
	out := GardenHealth{
		PlantCount:    len(plants),
		TotalCheckIns: len(checkins),
		HealthTrend:   TrendStable,
	}
	if g != nil {
		out.GardenHealth = g.Health
	}
	if len(plants) > 0 {
		var h, gr float64
		for _, p := range plants {
			h += p.Health
			gr += p.GrowthProgress
		}
		out.AvgPlantHealth = round2(h / float64(len(plants)))
		out.AvgGrowth = round2(gr / float64(len(plants)))
	}
	out.AvgSentiment = round2(insight.MeanSentiment(head(checkins, recentWindow)))
	if len(checkins) >= 2*healthTrendBlock {
		out.HealthTrend = compare(
			insight.MeanSentiment(checkins[healthTrendBlock:2*healthTrendBlock]),
			insight.MeanSentiment(checkins[:healthTrendBlock]),
		)
	}
	if len(checkins) > 0 {
		last := checkins[0].CreatedAt
		out.LastCheckIn = &last
	}
	return out
}

// Since returns the prefix of checkins created at or after cutoff.
func Since(checkins []model.CheckIn, cutoff time.Time) []model.CheckIn {
	out := make([]model.CheckIn, 0, len(checkins))
	for _, c := range checkins {
		if !c.CreatedAt.Before(cutoff) {
			out = append(out, c)
		}
	}
	return out
}

// compare labels the move from older to newer.
func compare(older, newer float64) string {
	switch {
	case newer > older+trendThreshold:
		return TrendImproving
	case newer < older-trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func head(checkins []model.CheckIn, n int) []model.CheckIn {
	if len(checkins) > n {
		return checkins[:n]
	}
	return checkins
}

func labelOf(c model.CheckIn) string {
	if c.EmotionLabel == "" {
		return unlabelled
	}
	return c.EmotionLabel
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
