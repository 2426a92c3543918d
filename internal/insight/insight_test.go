package insight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DavideLicci/MindGarden/internal/llm"
	"github.com/DavideLicci/MindGarden/internal/model"
)

func checkIns(sentiments []float64, label string) []model.CheckIn {
	out := make([]model.CheckIn, len(sentiments))
	for i, s := range sentiments {
		out[i] = model.CheckIn{ID: int64(100 - i), UserID: 7, SentimentScore: s, EmotionLabel: label}
	}
	return out
}

func types(in []model.Insight) []string {
	var out []string
	for _, i := range in {
		out = append(out, i.InsightType)
	}
	return out
}

func TestSummarize_TooFew(t *testing.T) {
	assert.Empty(t, Summarize(nil))
	assert.Empty(t, Summarize(checkIns([]float64{-1, -1}, "negativo")))
}

func TestSummarize_PositiveTrend(t *testing.T) {
	in := checkIns([]float64{1, 1, 0.5}, "positivo")
	got := Summarize(in)

	require.Len(t, got, 1)
	assert.Equal(t, model.InsightTrendPositive, got[0].InsightType)
	assert.Equal(t, textTrendPositive, got[0].Text)
	assert.Equal(t, []int64{100, 99, 98}, got[0].SourceCheckInIDs)
	assert.Equal(t, int64(7), got[0].UserID)
	assert.NotEmpty(t, got[0].ID)
}

func TestSummarize_NegativeTrendPatternAndEncouragement(t *testing.T) {
	sentiments := make([]float64, 12)
	for i := range sentiments {
		sentiments[i] = -1
	}
	got := Summarize(checkIns(sentiments, "negativo"))

	want := []string{model.InsightTrendNegative, model.InsightPattern, model.InsightEncouragement}
	if diff := cmp.Diff(want, types(got)); diff != "" {
		t.Fatalf("insight types mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, got[0].SourceCheckInIDs, Window)
	assert.Equal(t, "You've been feeling negativo frequently. This pattern might be worth exploring further.", got[1].Text)
	assert.Len(t, got[1].SourceCheckInIDs, Window)
	assert.Equal(t, []int64{100}, got[2].SourceCheckInIDs)
}

func TestSummarize_NeutralTrendEmitsNothing(t *testing.T) {
	got := Summarize(checkIns([]float64{0.2, -0.2, 0.1, 0}, "neutrale"))
	assert.Empty(t, got)
}

func TestSummarize_PatternNeedsMoreThanFive(t *testing.T) {
	in := checkIns([]float64{0, 0, 0, 0, 0}, "neutrale")
	assert.Empty(t, Summarize(in))

	in = checkIns([]float64{0, 0, 0, 0, 0, 0}, "neutrale")
	got := Summarize(in)
	require.Len(t, got, 1)
	assert.Equal(t, model.InsightPattern, got[0].InsightType)
}

func TestSummarize_EmptyLabelCountsAsNeutral(t *testing.T) {
	got := Summarize(checkIns([]float64{0, 0, 0, 0, 0, 0}, ""))
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Text, "feeling neutral frequently")
	assert.Len(t, got[0].SourceCheckInIDs, 6)
}

func TestDominantLabel_TieGoesToFirstSeen(t *testing.T) {
	in := []model.CheckIn{
		{EmotionLabel: "b"}, {EmotionLabel: "a"}, {EmotionLabel: "a"}, {EmotionLabel: "b"},
	}
	label, n := DominantLabel(in)
	assert.Equal(t, "b", label)
	assert.Equal(t, 2, n)
}

func TestKeeperMessage(t *testing.T) {
	assert.Equal(t, keeperWelcome, KeeperMessage(nil))
	assert.Equal(t, keeperBlooming, KeeperMessage(checkIns([]float64{1, 0.5}, "")))
	assert.Equal(t, keeperNeedCare, KeeperMessage(checkIns([]float64{-1, -0.5}, "")))
	assert.Equal(t, keeperBalanced, KeeperMessage(checkIns([]float64{0.3, 0.3}, "")))

	// only the newest five count
	assert.Equal(t, keeperBlooming, KeeperMessage(checkIns([]float64{1, 1, 1, 1, 1, -1, -1, -1, -1, -1}, "")))
}

func TestKeeperInsight(t *testing.T) {
	in := checkIns([]float64{1, 1, 1, 1, 1, 1}, "")
	got := KeeperInsight(7, in)
	assert.Equal(t, model.InsightGardenKeeper, got.InsightType)
	assert.Len(t, got.SourceCheckInIDs, 6)
}

func TestNotifications(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("welcome", func(t *testing.T) {
		got := Notifications(nil, now)
		require.Len(t, got, 1)
		assert.Equal(t, NotifyWelcome, got[0].Type)
		assert.Equal(t, PriorityHigh, got[0].Priority)
	})

	t.Run("reminder at two days", func(t *testing.T) {
		in := []model.CheckIn{{CreatedAt: now.Add(-49 * time.Hour)}}
		got := Notifications(in, now)
		require.Len(t, got, 1)
		assert.Equal(t, NotifyCheckInReminder, got[0].Type)
		assert.Contains(t, got[0].Message, "couple of days")
		assert.Equal(t, 2, got[0].Data["daysSinceLast"])
	})

	t.Run("reminder after a week", func(t *testing.T) {
		in := []model.CheckIn{{CreatedAt: now.Add(-7 * 24 * time.Hour)}}
		got := Notifications(in, now)
		require.Len(t, got, 1)
		assert.Contains(t, got[0].Message, "7 days")
	})

	t.Run("recent activity is quiet", func(t *testing.T) {
		in := []model.CheckIn{{CreatedAt: now.Add(-time.Hour), SentimentScore: 0}}
		assert.Empty(t, Notifications(in, now))
	})

	t.Run("support", func(t *testing.T) {
		in := checkIns([]float64{-1, -1, -1, -0.5, -1}, "negativo")
		for i := range in {
			in[i].CreatedAt = now
		}
		got := Notifications(in, now)
		require.Len(t, got, 1)
		assert.Equal(t, NotifySupport, got[0].Type)
		assert.Contains(t, got[0].Message, "feeling negativo")
	})

	t.Run("celebration", func(t *testing.T) {
		in := checkIns([]float64{1, 1, 1, 0.5, 1}, "positivo")
		for i := range in {
			in[i].CreatedAt = now
		}
		got := Notifications(in, now)
		require.Len(t, got, 1)
		assert.Equal(t, NotifyEncouragement, got[0].Type)
	})

	t.Run("needs five check-ins for patterns", func(t *testing.T) {
		in := checkIns([]float64{-1, -1, -1, -1}, "negativo")
		for i := range in {
			in[i].CreatedAt = now
		}
		assert.Empty(t, Notifications(in, now))
	})
}

type fakeLLM struct {
	answer string
	err    error
	got    llm.Request
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.got = req
	return f.answer, f.err
}

func TestGenerator_UsesLLMAnswer(t *testing.T) {
	in := checkIns([]float64{1, 1, 1}, "positivo")
	f := &fakeLLM{answer: "```json\n[{\"text\":\"You smile a lot\",\"insightType\":\"trend_analysis\",\"sourceCheckins\":[\"100\",99,12345]},{\"text\":\"Keep going\"}]\n```"}
	got := NewGenerator(f, zerolog.Nop()).Generate(context.Background(), in)

	require.Len(t, got, 2)
	assert.Equal(t, "You smile a lot", got[0].Text)
	assert.Equal(t, "trend_analysis", got[0].InsightType)
	assert.Equal(t, []int64{100, 99}, got[0].SourceCheckInIDs)
	assert.Equal(t, "recommendation", got[1].InsightType)
	assert.Equal(t, []int64{100, 99, 98}, got[1].SourceCheckInIDs)

	assert.Equal(t, insightsPrompt, f.got.System)
	require.Len(t, f.got.Messages, 1)
	assert.Contains(t, f.got.Messages[0].Content, "User's recent checkins: [")
}

func TestGenerator_FallsBack(t *testing.T) {
	in := checkIns([]float64{-1, -1, -1}, "negativo")
	cases := map[string]*fakeLLM{
		"error":       {err: errors.New("rate limited")},
		"not json":    {answer: "Here are some insights!"},
		"empty array": {answer: "[]"},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			got := NewGenerator(f, zerolog.Nop()).Generate(context.Background(), in)
			assert.Equal(t, []string{model.InsightTrendNegative, model.InsightEncouragement}, types(got))
		})
	}

	t.Run("nil client", func(t *testing.T) {
		got := NewGenerator(nil, zerolog.Nop()).Generate(context.Background(), in)
		assert.Len(t, got, 2)
	})
}

func TestGenerator_NoCheckIns(t *testing.T) {
	f := &fakeLLM{answer: `[{"text":"x"}]`}
	assert.Empty(t, NewGenerator(f, zerolog.Nop()).Generate(context.Background(), nil))
}

func TestExcerpt(t *testing.T) {
	short := "breve"
	assert.Equal(t, short, excerpt(short))

	long := ""
	for i := 0; i < 120; i++ {
		long += "è"
	}
	got := excerpt(long)
	assert.Equal(t, excerptRunes+3, len([]rune(got)))
}
