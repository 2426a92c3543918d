package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/llm"
	"github.com/DavideLicci/MindGarden/internal/model"
)

// LLMWindow is how many check-ins the model sees.
const LLMWindow = 20

const excerptRunes = 100

const insightsPrompt = `Analyze the user's emotional checkins and generate 2-3 personalized insights. Each insight should be:
- Helpful and empathetic
- Based on patterns in their emotional data
- Encouraging positive growth
- Return as JSON array with objects containing: text, insightType, sourceCheckins (array of checkin IDs)

Insight types: trend_analysis, pattern_recognition, encouragement, milestone, recommendation`

// Generator asks an LLM for insights and falls back to Summarize when the
// call fails or the answer cannot be used.
type Generator struct {
	client llm.Client
	log    zerolog.Logger
}

// NewGenerator returns a Generator. A nil client means rules only.
func NewGenerator(client llm.Client, log zerolog.Logger) *Generator {
	if client == nil {
		client = llm.Disabled{}
	}
	return &Generator{client: client, log: log}
}

// Generate never fails; it always returns the best insights it can produce.
func (g *Generator) Generate(ctx context.Context, checkins []model.CheckIn) []model.Insight {
	if len(checkins) == 0 {
		return nil
	}
	recent := checkins
	if len(recent) > LLMWindow {
		recent = recent[:LLMWindow]
	}

	out, err := g.fromLLM(ctx, recent)
	if err != nil {
		g.log.Warn().Err(err).Int("checkins", len(recent)).Msg("llm insights unavailable; using rules")
		return Summarize(checkins)
	}
	if len(out) == 0 {
		return Summarize(checkins)
	}
	return out
}

type checkInSummary struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	Emotion   string    `json:"emotion"`
	Sentiment float64   `json:"sentiment"`
	Text      string    `json:"text"`
}

type llmInsight struct {
	Text           string       `json:"text"`
	InsightType    string       `json:"insightType"`
	SourceCheckins []flexibleID `json:"sourceCheckins"`
}

// flexibleID accepts ids the model wrote either as numbers or as strings.
type flexibleID int64

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("checkin id %s: %w", b, err)
	}
	*f = flexibleID(n)
	return nil
}

func (g *Generator) fromLLM(ctx context.Context, recent []model.CheckIn) ([]model.Insight, error) {
	summaries := make([]checkInSummary, len(recent))
	for i, c := range recent {
		summaries[i] = checkInSummary{
			ID:        c.ID,
			Date:      c.CreatedAt,
			Emotion:   c.EmotionLabel,
			Sentiment: c.SentimentScore,
			Text:      excerpt(c.AnalysisText()),
		}
	}
	payload, err := json.Marshal(summaries)
	if err != nil {
		return nil, fmt.Errorf("marshal checkins: %w", err)
	}

	answer, err := g.client.Complete(ctx, llm.Request{
		System:      insightsPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: "User's recent checkins: " + string(payload)}},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, err
	}
	return ParseLLMInsights(answer, recent)
}

// ParseLLMInsights decodes a model answer. Source ids not among recent are
// dropped; an insight left without sources is attributed to all of recent.
func ParseLLMInsights(answer string, recent []model.CheckIn) ([]model.Insight, error) {
	raw := stripFence(answer)
	var parsed []llmInsight
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse llm insights: %w", err)
	}

	known := make(map[int64]bool, len(recent))
	for _, c := range recent {
		known[c.ID] = true
	}
	var userID int64
	if len(recent) > 0 {
		userID = recent[0].UserID
	}

	out := make([]model.Insight, 0, len(parsed))
	for _, p := range parsed {
		if strings.TrimSpace(p.Text) == "" {
			continue
		}
		var src []int64
		for _, id := range p.SourceCheckins {
			if known[int64(id)] {
				src = append(src, int64(id))
			}
		}
		if len(src) == 0 {
			src = ids(recent)
		}
		kind := p.InsightType
		if kind == "" {
			kind = "recommendation"
		}
		out = append(out, model.Insight{
			ID:               uuid.NewString(),
			UserID:           userID,
			Text:             strings.TrimSpace(p.Text),
			InsightType:      kind,
			SourceCheckInIDs: src,
		})
	}
	return out, nil
}

// stripFence removes a ```json fence that chat models like to add.
func stripFence(s string) []byte {
	b := bytes.TrimSpace([]byte(s))
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	b = b[3:]
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		b = b[i+1:]
	}
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return bytes.TrimSpace(b)
}

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptRunes {
		return s
	}
	r := []rune(s)
	return string(r[:excerptRunes]) + "..."
}
