package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/DavideLicci/MindGarden/internal/insight"
	"github.com/DavideLicci/MindGarden/internal/model"
)

// Report periods.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ReportMetrics struct {
	TotalCheckIns   int     `json:"totalCheckins"`
	AvgSentiment    float64 `json:"avgSentiment"`
	AvgIntensity    float64 `json:"avgIntensity"`
	DominantEmotion string  `json:"dominantEmotion"`
	Trend           string  `json:"trend"`
}

// PeriodReport summarises one week or month. Report is nil when the period
// holds no check-ins.
type PeriodReport struct {
	Period              string         `json:"period"`
	Message             string         `json:"message,omitempty"`
	DateRange           *DateRange     `json:"dateRange,omitempty"`
	Metrics             *ReportMetrics `json:"metrics,omitempty"`
	EmotionDistribution map[string]int `json:"emotionDistribution,omitempty"`
	Insights            []string       `json:"insights,omitempty"`
	Recommendations     []string       `json:"recommendations,omitempty"`
}

// PeriodDays returns the length of a report period. Anything other than
// monthly is weekly.
func PeriodDays(period string) int {
	if period == PeriodMonthly {
		return 30
	}
	return 7
}

// Report builds the report for period ending at now.
func Report(period string, checkins []model.CheckIn, now time.Time) PeriodReport {
	if period != PeriodMonthly {
		period = PeriodWeekly
	}
	days := PeriodDays(period)
	cutoff := now.AddDate(0, 0, -days)
	inPeriod := Since(checkins, cutoff)
	if len(inPeriod) == 0 {
		return PeriodReport{
			Period:  period,
			Message: fmt.Sprintf("No check-ins found for the last %d days", days),
		}
	}

	avg := insight.MeanSentiment(inPeriod)
	intensity := 0.0
	dist := make(map[string]int)
	for _, c := range inPeriod {
		intensity += c.Intensity
		dist[labelOf(c)]++
	}
	intensity /= float64(len(inPeriod))
	dominant, _ := insight.DominantLabel(inPeriod)

	// Newest first: the tail is the older half.
	trend := TrendStable
	if mid := len(inPeriod) / 2; mid > 0 {
		trend = compare(insight.MeanSentiment(inPeriod[mid:]), insight.MeanSentiment(inPeriod[:mid]))
	}

	var insights []string
	switch {
	case avg > positiveSentiment:
		insights = append(insights, fmt.Sprintf("Your %s has been generally positive with an average sentiment of %.0f%%", period, math.Round(avg*100)))
	case avg < -positiveSentiment:
		insights = append(insights, fmt.Sprintf("Your %s has shown some challenges with an average sentiment of %.0f%%", period, math.Round(avg*100)))
	}
	insights = append(insights,
		fmt.Sprintf("Your most common emotion this %s was %q", period, dominant),
		fmt.Sprintf("Overall emotional trend: %s", trend),
	)

	return PeriodReport{
		Period: period,
		DateRange: &DateRange{
			From: cutoff.UTC().Format(dayLayout),
			To:   now.UTC().Format(dayLayout),
		},
		Metrics: &ReportMetrics{
			TotalCheckIns:   len(inPeriod),
			AvgSentiment:    round2(avg),
			AvgIntensity:    round2(intensity),
			DominantEmotion: dominant,
			Trend:           trend,
		},
		EmotionDistribution: dist,
		Insights:            insights,
		Recommendations:     Recommendations(avg, dominant, trend),
	}
}

// Recommendations returns advice for the given report metrics.
func Recommendations(avgSentiment float64, dominant, trend string) []string {
	var out []string
	if avgSentiment < -0.3 {
		out = append(out,
			"Consider incorporating more positive activities into your routine",
			"Try mindfulness or meditation to help manage negative emotions",
		)
	}
	if dominant == "anxiety" || dominant == "fear" {
		out = append(out, "Consider breathing exercises or progressive muscle relaxation")
	}
	switch trend {
	case TrendDeclining:
		out = append(out,
			"Reach out to friends or loved ones for support",
			"Consider professional help if negative patterns persist",
		)
	case TrendImproving:
		out = append(out, "Keep up the great work! Continue the positive habits that are helping")
	}
	if len(out) == 0 {
		out = append(out,
			"Continue monitoring your emotional well-being",
			"Consider journaling about what brings you joy and peace",
		)
	}
	return out
}
