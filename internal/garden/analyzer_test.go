package garden

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze_PositiveWithExclamations(t *testing.T) {
	got := Analyze("Sono molto felice e contento!!!")

	assert.Equal(t, LabelPositive, got.EmotionLabel)
	assert.InDelta(t, 1.0, got.SentimentScore, 1e-9)
	assert.InDelta(t, 0.7, got.Intensity, 1e-9)
}

func TestAnalyze_EmptyText(t *testing.T) {
	got := Analyze("")

	assert.Equal(t, LabelNeutral, got.EmotionLabel)
	assert.Zero(t, got.SentimentScore)
	assert.Zero(t, got.Intensity)
}

func TestAnalyze_NoKeywordsIsNeutral(t *testing.T) {
	inputs := []string{
		"oggi ho mangiato una pizza",
		"normale, così così, indifferente",
		strings.Repeat("parole senza emozioni ", 200),
		"???...",
	}
	for _, in := range inputs {
		got := Analyze(in)
		assert.Zero(t, got.SentimentScore, in)
		assert.Equal(t, LabelNeutral, got.EmotionLabel, in)
	}
}

func TestAnalyze_Negative(t *testing.T) {
	got := Analyze("Mi sento triste e stanco")

	assert.Equal(t, LabelNegative, got.EmotionLabel)
	assert.InDelta(t, -1.0, got.SentimentScore, 1e-9)
	assert.InDelta(t, 0.4, got.Intensity, 1e-9)
}

func TestAnalyze_MixedStaysNeutral(t *testing.T) {
	// one positive, one negative
	got := Analyze("felice ma stanco")

	assert.Equal(t, LabelNeutral, got.EmotionLabel)
	assert.Zero(t, got.SentimentScore)
}

func TestAnalyze_CaseInsensitiveSubstring(t *testing.T) {
	// "tristemente" contains "triste"; "Isolotto" contains "solo" after lower-casing
	got := Analyze("TRISTEMENTE sull'Isolotto")

	assert.Equal(t, LabelNegative, got.EmotionLabel)
	assert.InDelta(t, 0.4, got.Intensity, 1e-9)
}

func TestAnalyze_KeywordCountsOnce(t *testing.T) {
	got := Analyze("felice felice felice")

	assert.InDelta(t, 0.2, got.Intensity, 1e-9)
}

func TestAnalyze_IntensityClamped(t *testing.T) {
	inputs := []string{
		strings.Repeat("!", 50),
		"felice bene contento sereno rilassato tranquillo ottimo!!!!!",
		"triste ansioso stressato preoccupato arrabbiato frustrato",
	}
	for _, in := range inputs {
		got := Analyze(in)
		assert.GreaterOrEqual(t, got.Intensity, 0.0, in)
		assert.LessOrEqual(t, got.Intensity, 1.0, in)
	}
	assert.Equal(t, 1.0, Analyze(strings.Repeat("!", 50)).Intensity)
}
