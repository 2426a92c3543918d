package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DavideLicci/MindGarden/internal/chat"
	"github.com/DavideLicci/MindGarden/internal/llm"
	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// Chat error codes returned to clients.
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeMessageTooLong = "MESSAGE_TOO_LONG"
)

// ChatInputError is a rejected chat message.
type ChatInputError struct {
	Code    string
	Message string
}

func (e *ChatInputError) Error() string { return e.Message }

func (e *ChatInputError) Unwrap() error { return model.ErrValidation }

// ChatReply is the companion's answer.
type ChatReply struct {
	Response    string    `json:"response"`
	Timestamp   time.Time `json:"timestamp"`
	ContextUsed bool      `json:"contextUsed"`
}

// Suggestions are conversation starters.
type Suggestions struct {
	Suggestions     []string `json:"suggestions"`
	BasedOnCheckIns int      `json:"basedOnCheckins"`
}

// ChatService grounds the companion in the user's check-ins.
type ChatService struct {
	store     store.Store
	companion *chat.Companion
	now       func() time.Time
}

func NewChatService(s store.Store, c *chat.Companion) *ChatService {
	return &ChatService{store: s, companion: c, now: time.Now}
}

func (s *ChatService) Converse(ctx context.Context, userID int64, message string, history []llm.Message) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ChatInputError{Code: ErrCodeInvalidMessage, Message: "Message is required and must be a string"}
	}
	if utf8.RuneCountInString(message) > chat.MaxMessageLen {
		return nil, &ChatInputError{
			Code:    ErrCodeMessageTooLong,
			Message: fmt.Sprintf("Message too long. Please keep messages under %d characters.", chat.MaxMessageLen),
		}
	}
	recent, err := s.recent(ctx, userID, chat.ContextWindow)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &ChatReply{
		Response:    s.companion.Reply(ctx, message, history, recent, now),
		Timestamp:   now.UTC(),
		ContextUsed: len(recent) > 0,
	}, nil
}

func (s *ChatService) Context(ctx context.Context, userID int64) (*chat.Summary, error) {
	recent, err := s.recent(ctx, userID, chat.SummaryWindow)
	if err != nil {
		return nil, err
	}
	out := chat.Summarize(recent)
	return &out, nil
}

func (s *ChatService) Suggestions(ctx context.Context, userID int64) (*Suggestions, error) {
	recent, err := s.recent(ctx, userID, chat.SuggestionWindow)
	if err != nil {
		return nil, err
	}
	return &Suggestions{Suggestions: chat.Suggest(recent), BasedOnCheckIns: len(recent)}, nil
}

func (s *ChatService) recent(ctx context.Context, userID int64, n int) ([]model.CheckIn, error) {
	list, err := s.store.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: userID, Limit: n})
	if err != nil {
		return nil, fmt.Errorf("load checkins: %w", err)
	}
	return model.CheckInValues(list), nil
}
