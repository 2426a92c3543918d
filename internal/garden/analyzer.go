// Package garden holds the rules that turn check-in text into garden state:
// keyword emotion analysis, plant archetypes, plant placement and generation,
// garden health folding and plant care. Every function here is total; bad or
// empty input degrades to neutral defaults instead of returning errors.
package garden

import (
	"strings"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// Emotion labels produced by Analyze.
const (
	LabelPositive = "positivo"
	LabelNegative = "negativo"
	LabelNeutral  = "neutrale"
)

var positiveKeywords = []string{
	"felice", "bene", "contento", "sereno", "rilassato",
	"tranquillo", "ottimo", "meraviglioso", "eccitato", "entusiasta",
}

var negativeKeywords = []string{
	"triste", "ansioso", "stressato", "preoccupato", "arrabbiato",
	"frustrato", "deluso", "solo", "stanco", "depresso",
}

// neutralKeywords is kept with the other lists but Analyze never reads it.
var neutralKeywords = []string{"normale", "così così", "indifferente", "neutrale"}

const (
	labelThreshold      = 0.3
	intensityPerKeyword = 0.2
	intensityPerBang    = 0.1
)

// Analyze scores text by substring keyword matching. Each listed keyword
// counts at most once, and matches inside longer words count too.
func Analyze(text string) model.EmotionAnalysis {
	lower := strings.ToLower(text)

	pos := countHits(lower, positiveKeywords)
	neg := countHits(lower, negativeKeywords)
	total := pos + neg

	score := 0.0
	if total > 0 {
		score = float64(pos-neg) / float64(total)
	}

	label := LabelNeutral
	switch {
	case score > labelThreshold:
		label = LabelPositive
	case score < -labelThreshold:
		label = LabelNegative
	}

	intensity := intensityPerKeyword*float64(total) + intensityPerBang*float64(strings.Count(text, "!"))
	if intensity > 1 {
		intensity = 1
	}

	return model.EmotionAnalysis{
		EmotionLabel:   label,
		SentimentScore: score,
		Intensity:      intensity,
	}
}

func countHits(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
