package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavideLicci/MindGarden/internal/llm"
	"github.com/DavideLicci/MindGarden/internal/model"
)

type recordingClient struct {
	answer string
	err    error
	got    llm.Request
}

func (r *recordingClient) Complete(_ context.Context, req llm.Request) (string, error) {
	r.got = req
	return r.answer, r.err
}

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func checkins(scores ...float64) []model.CheckIn {
	out := make([]model.CheckIn, len(scores))
	for i, s := range scores {
		label := "neutrale"
		if s > 0.3 {
			label = "positivo"
		} else if s < -0.3 {
			label = "negativo"
		}
		out[i] = model.CheckIn{ID: int64(i + 1), SentimentScore: s, EmotionLabel: label, CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour)}
	}
	return out
}

func TestReply_UsesLLM(t *testing.T) {
	client := &recordingClient{answer: "  That sounds hard.  "}
	c := NewCompanion(client, zerolog.Nop())

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "1"},
		{Role: llm.RoleAssistant, Content: "2"},
		{Role: "system", Content: "ignored"},
		{Role: llm.RoleUser, Content: "3"},
		{Role: llm.RoleAssistant, Content: "4"},
		{Role: llm.RoleUser, Content: "5"},
		{Role: llm.RoleAssistant, Content: "6"},
	}
	got := c.Reply(context.Background(), "I feel lost", history, checkins(-1, -1), now)

	assert.Equal(t, "That sounds hard.", got)
	require.Len(t, client.got.Messages, 5)
	assert.Equal(t, "3", client.got.Messages[0].Content)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "I feel lost"}, client.got.Messages[4])
	assert.Contains(t, client.got.System, "Average sentiment: negative")
	assert.Contains(t, client.got.System, "Dominant emotion: negativo")
	assert.Equal(t, 200, client.got.MaxTokens)
}

func TestReply_Fallbacks(t *testing.T) {
	c := NewCompanion(&recordingClient{err: errors.New("rate limited")}, zerolog.Nop())
	assert.Equal(t, FallbackReply("sono triste"), c.Reply(context.Background(), "sono triste", nil, nil, now))

	c = NewCompanion(nil, zerolog.Nop())
	assert.Equal(t, defaultFallbackReply, c.Reply(context.Background(), "hello", nil, nil, now))

	c = NewCompanion(&recordingClient{answer: " "}, zerolog.Nop())
	assert.Equal(t, emptyReply, c.Reply(context.Background(), "hello", nil, nil, now))
}

func TestFallbackReply(t *testing.T) {
	assert.Contains(t, FallbackReply("I am SAD"), "feeling sad")
	assert.Contains(t, FallbackReply("molto contento"), "wonderful")
	assert.Contains(t, FallbackReply("sono ansioso"), "deep breaths")
	assert.Contains(t, FallbackReply("so much stress"), "short walk")
	// first group wins
	assert.Contains(t, FallbackReply("triste ma felice"), "feeling sad")
	assert.Equal(t, defaultFallbackReply, FallbackReply("ciao"))
}

func TestEmotionalContext(t *testing.T) {
	assert.Contains(t, EmotionalContext(nil, now), "first conversation")

	recent := checkins(0.5, 0.5)
	recent[0].CreatedAt = now.Add(-72 * time.Hour)
	ctx := EmotionalContext(recent, now)
	assert.Contains(t, ctx, "Average sentiment: positive")
	assert.Contains(t, ctx, "Days since last check-in: 3")
	assert.Contains(t, ctx, "Number of recent check-ins: 2")
}

func TestSummarize(t *testing.T) {
	empty := Summarize(nil)
	assert.False(t, empty.HasContext)
	assert.NotEmpty(t, empty.Message)

	s := Summarize(checkins(0.6, 0.5, 0.4, -0.5, -0.5, 1, 1))
	assert.True(t, s.HasContext)
	assert.Equal(t, 5, s.RecentCheckInsCount)
	assert.Equal(t, TrendImproving, s.SentimentTrend)
	assert.Equal(t, "positivo", s.CurrentEmotion)
	assert.Equal(t, &Range{Min: -0.5, Max: 0.6}, s.EmotionalRange)
	assert.InDelta(t, 0.1, s.AverageSentiment, 1e-9)
	require.NotNil(t, s.LastCheckInDate)
	assert.Equal(t, now, *s.LastCheckInDate)
}

func TestTrend(t *testing.T) {
	assert.Equal(t, TrendDeclining, Trend(checkins(-0.5, -0.5, -0.5, 0.5)))
	assert.Equal(t, TrendStable, Trend(checkins(0.05, 0.05, 0.05, 0)))
	// fewer than four: compared against zero
	assert.Equal(t, TrendImproving, Trend(checkins(0.5)))
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, startSuggestions, Suggest(nil))
	assert.Equal(t, positiveSuggestions, Suggest(checkins(1, 1, -1, -1, -1)))
	assert.Equal(t, negativeSuggestions, Suggest(checkins(-1, -0.5)))
	assert.Equal(t, neutralSuggestions, Suggest(checkins(0.1, 0, -0.1)))

	got := Suggest(nil)
	got[0] = "mutated"
	assert.NotEqual(t, "mutated", startSuggestions[0])
}
