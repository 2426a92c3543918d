// Package insight turns a user's recent check-ins into short statements:
// rule-based insights, garden keeper messages and smart notifications.
// An llm.Client can take over insight wording; the rules are the fallback.
package insight

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// Summarize tuning.
const (
	MinCheckIns       = 3
	Window            = 10
	TrendThreshold    = 0.2
	PatternMinCount   = 6
	unlabelledEmotion = "neutral"
)

const (
	textTrendPositive = "Your emotional garden is blooming! Keep nurturing those positive feelings."
	textTrendNegative = "Your garden shows some wilting. Consider activities that bring you peace and joy."
	textPattern       = "You've been feeling %s frequently. This pattern might be worth exploring further."
	textEncouragement = "Ricorda che ogni giorno è una nuova opportunità. Il tuo giardino cresce con te."
)

// Summarize derives rule-based insights from check-ins ordered newest first.
// It returns nothing for fewer than MinCheckIns check-ins and looks at most at
// the newest Window of them.
func Summarize(checkins []model.CheckIn) []model.Insight {
	if len(checkins) < MinCheckIns {
		return nil
	}
	window := checkins
	if len(window) > Window {
		window = window[:Window]
	}
	userID := checkins[0].UserID

	var out []model.Insight
	switch avg := MeanSentiment(window); {
	case avg > TrendThreshold:
		out = append(out, newInsight(userID, model.InsightTrendPositive, textTrendPositive, ids(window)))
	case avg < -TrendThreshold:
		out = append(out, newInsight(userID, model.InsightTrendNegative, textTrendNegative, ids(window)))
	}

	if label, n := DominantLabel(window); n >= PatternMinCount {
		var src []int64
		for _, c := range window {
			if labelOf(c) == label {
				src = append(src, c.ID)
			}
		}
		out = append(out, newInsight(userID, model.InsightPattern, fmt.Sprintf(textPattern, label), src))
	}

	if latest := checkins[0]; latest.SentimentScore < 0 {
		out = append(out, newInsight(userID, model.InsightEncouragement, textEncouragement, []int64{latest.ID}))
	}
	return out
}

func newInsight(userID int64, kind, text string, src []int64) model.Insight {
	return model.Insight{
		ID:               uuid.NewString(),
		UserID:           userID,
		Text:             text,
		InsightType:      kind,
		SourceCheckInIDs: src,
	}
}

// MeanSentiment is the average sentiment score, 0 for no check-ins.
func MeanSentiment(checkins []model.CheckIn) float64 {
	if len(checkins) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range checkins {
		sum += c.SentimentScore
	}
	return sum / float64(len(checkins))
}

func labelOf(c model.CheckIn) string {
	if c.EmotionLabel == "" {
		return unlabelledEmotion
	}
	return c.EmotionLabel
}

// DominantLabel returns the most frequent label, empty labels counting as
// "neutral". Ties go to the label seen first. An empty input yields
// ("neutral", 0).
func DominantLabel(checkins []model.CheckIn) (string, int) {
	counts := make(map[string]int)
	var order []string
	for _, c := range checkins {
		l := labelOf(c)
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}
	best, bestN := unlabelledEmotion, 0
	for _, l := range order {
		if counts[l] > bestN {
			best, bestN = l, counts[l]
		}
	}
	return best, bestN
}

func ids(checkins []model.CheckIn) []int64 {
	out := make([]int64, len(checkins))
	for i, c := range checkins {
		out[i] = c.ID
	}
	return out
}
