// Package chat implements the companion chatbot: an LLM conversation grounded
// in the user's recent check-ins, with a keyword reply when the LLM is
// unavailable.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/insight"
	"github.com/DavideLicci/MindGarden/internal/llm"
	"github.com/DavideLicci/MindGarden/internal/model"
)

const (
	// MaxMessageLen is the longest accepted user message, in characters.
	MaxMessageLen = 1000
	// ContextWindow is how many recent check-ins ground a conversation.
	ContextWindow = 10
	// HistoryWindow is how many previous messages are replayed to the LLM.
	HistoryWindow = 5

	replyTemperature = 0.7
	replyMaxTokens   = 200
	moodThreshold    = 0.2
)

const systemPrompt = `You are an empathetic AI companion for MindGarden, a mental wellness app that helps users track their emotions through digital gardens.

Your role is to:
- Provide supportive, non-judgmental listening
- Help users process their emotions
- Offer gentle suggestions for emotional wellness
- Reference their emotional patterns from recent check-ins when relevant
- Encourage healthy coping strategies
- Be conversational and warm, like a trusted friend

Current emotional context from user's recent check-ins:
%s

Guidelines:
- Keep responses conversational (2-4 sentences)
- Acknowledge their feelings first
- Ask open-ended questions to encourage sharing
- Suggest mindfulness or self-care when appropriate
- Never give medical advice
- If they're in crisis, gently suggest professional help`

const emptyReply = "I'm here to listen. How are you feeling right now?"

// Companion produces chatbot replies.
type Companion struct {
	client llm.Client
	log    zerolog.Logger
}

// NewCompanion returns a Companion. A nil client always uses the keyword reply.
func NewCompanion(client llm.Client, log zerolog.Logger) *Companion {
	if client == nil {
		client = llm.Disabled{}
	}
	return &Companion{client: client, log: log}
}

// Reply answers message. recent is newest first. It never fails: LLM errors
// degrade to FallbackReply.
func (c *Companion) Reply(ctx context.Context, message string, history []llm.Message, recent []model.CheckIn, now time.Time) string {
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	msgs := make([]llm.Message, 0, len(history)+1)
	for _, m := range history {
		if m.Role != llm.RoleUser && m.Role != llm.RoleAssistant {
			continue
		}
		msgs = append(msgs, m)
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	answer, err := c.client.Complete(ctx, llm.Request{
		System:      fmt.Sprintf(systemPrompt, EmotionalContext(recent, now)),
		Messages:    msgs,
		Temperature: replyTemperature,
		MaxTokens:   replyMaxTokens,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("chat completion failed, using fallback reply")
		return FallbackReply(message)
	}
	if strings.TrimSpace(answer) == "" {
		return emptyReply
	}
	return strings.TrimSpace(answer)
}

// EmotionalContext renders the check-in summary embedded in the system prompt.
func EmotionalContext(recent []model.CheckIn, now time.Time) string {
	if len(recent) == 0 {
		return "No recent check-ins available. This appears to be their first conversation."
	}
	dominant, _ := insight.DominantLabel(recent)
	last := recent[0]
	lastLabel := last.EmotionLabel
	if lastLabel == "" {
		lastLabel = "not analyzed"
	}
	return fmt.Sprintf(`Recent emotional patterns:
- Average sentiment: %s
- Dominant emotion: %s
- Number of recent check-ins: %d
- Days since last check-in: %d
- Last check-in emotion: %s`,
		mood(insight.MeanSentiment(recent)), dominant, len(recent), insight.DaysSince(last.CreatedAt, now), lastLabel)
}

func mood(avg float64) string {
	switch {
	case avg > moodThreshold:
		return "positive"
	case avg < -moodThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

var fallbackReplies = []struct {
	keywords []string
	reply    string
}{
	{[]string{"sad", "depresso", "triste"}, "I hear that you're feeling sad. It's okay to feel this way sometimes. Would you like to talk about what's been bothering you?"},
	{[]string{"happy", "felice", "contento"}, "That's wonderful to hear! It sounds like you're having a good day. What's bringing you joy right now?"},
	{[]string{"anxious", "ansioso", "preoccupato"}, "Anxiety can be really challenging. Try taking a few deep breaths - sometimes that helps. What's on your mind?"},
	{[]string{"stress", "stressato"}, "Stress can feel overwhelming. Maybe try a short walk or some gentle stretching? I'm here to listen if you want to share more."},
}

const defaultFallbackReply = "Thank you for sharing that with me. I'm here to listen. How are you feeling about your emotional garden lately?"

// FallbackReply picks a canned reply by the first matching keyword group.
func FallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, f := range fallbackReplies {
		for _, k := range f.keywords {
			if strings.Contains(lower, k) {
				return f.reply
			}
		}
	}
	return defaultFallbackReply
}
