package chat

import (
	"time"

	"github.com/DavideLicci/MindGarden/internal/insight"
	"github.com/DavideLicci/MindGarden/internal/model"
)

const (
	// SummaryWindow is how many check-ins Summarize looks at.
	SummaryWindow = 5
	// SuggestionWindow is how many check-ins Suggest looks at.
	SuggestionWindow = 3

	trendSplit     = 3
	trendThreshold = 0.1
)

// Sentiment trends.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Summary describes the user's current emotional state for the chat UI.
type Summary struct {
	HasContext          bool       `json:"hasContext"`
	Message             string     `json:"message,omitempty"`
	Suggestion          string     `json:"suggestion,omitempty"`
	CurrentEmotion      string     `json:"currentEmotion,omitempty"`
	AverageSentiment    float64    `json:"averageSentiment"`
	SentimentTrend      string     `json:"sentimentTrend,omitempty"`
	RecentCheckInsCount int        `json:"recentCheckinsCount"`
	LastCheckInDate     *time.Time `json:"lastCheckinDate,omitempty"`
	EmotionalRange      *Range     `json:"emotionalRange,omitempty"`
}

// Summarize builds the context summary from check-ins, newest first. Only the
// first SummaryWindow entries are read.
func Summarize(recent []model.CheckIn) Summary {
	if len(recent) > SummaryWindow {
		recent = recent[:SummaryWindow]
	}
	if len(recent) == 0 {
		return Summary{
			Message:    "No recent check-ins found. Start by sharing how you're feeling!",
			Suggestion: "Try making a check-in to help me understand your emotional state better.",
		}
	}

	dominant, _ := insight.DominantLabel(recent)
	rng := Range{Min: recent[0].SentimentScore, Max: recent[0].SentimentScore}
	for _, c := range recent[1:] {
		rng.Min = min(rng.Min, c.SentimentScore)
		rng.Max = max(rng.Max, c.SentimentScore)
	}
	last := recent[0].CreatedAt

	return Summary{
		HasContext:          true,
		CurrentEmotion:      dominant,
		AverageSentiment:    insight.MeanSentiment(recent),
		SentimentTrend:      Trend(recent),
		RecentCheckInsCount: len(recent),
		LastCheckInDate:     &last,
		EmotionalRange:      &rng,
	}
}

// Trend compares the newest three check-ins with the rest. Fewer than four
// check-ins compare against zero.
func Trend(recent []model.CheckIn) string {
	head := recent
	var tail []model.CheckIn
	if len(recent) > trendSplit {
		head, tail = recent[:trendSplit], recent[trendSplit:]
	}
	newer := insight.MeanSentiment(head)
	older := insight.MeanSentiment(tail)
	switch {
	case newer > older+trendThreshold:
		return TrendImproving
	case newer < older-trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

var (
	startSuggestions = []string{
		"How are you feeling today?",
		"What's been on your mind lately?",
		"Tell me about your day so far.",
		"What's one thing you're grateful for?",
	}
	positiveSuggestions = []string{
		"What's making you feel positive today?",
		"Tell me more about what's going well.",
		"How can you build on this good feeling?",
		"What's one thing you'd like to celebrate?",
	}
	negativeSuggestions = []string{
		"What's been challenging for you lately?",
		"Is there anything specific you'd like to talk about?",
		"What would help you feel a bit better right now?",
		"Have you tried any coping strategies recently?",
	}
	neutralSuggestions = []string{
		"How has your week been going?",
		"What's something you're looking forward to?",
		"Tell me about your emotional garden.",
		"What's one small goal you'd like to work on?",
	}
)

// Suggest returns conversation starters for the newest SuggestionWindow check-ins.
func Suggest(recent []model.CheckIn) []string {
	if len(recent) > SuggestionWindow {
		recent = recent[:SuggestionWindow]
	}
	var out []string
	switch {
	case len(recent) == 0:
		out = startSuggestions
	case insight.MeanSentiment(recent) > moodThreshold:
		out = positiveSuggestions
	case insight.MeanSentiment(recent) < -moodThreshold:
		out = negativeSuggestions
	default:
		out = neutralSuggestions
	}
	return append([]string(nil), out...)
}
