// Package llm is the narrow completion interface the insight generator and the
// chatbot talk to. Providers live in sub-packages.
package llm

import (
	"context"
	"errors"
)

// Roles of a chat message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single completion call. System is sent as the provider's
// system instruction; Messages are sent in order.
type Request struct {
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Client produces a text completion for a request.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrDisabled is returned by the Disabled client. Callers treat it like any
// other provider failure and fall back to rule-based output.
var ErrDisabled = errors.New("llm provider disabled")

// ErrEmptyCompletion is returned when a provider answers with no text.
var ErrEmptyCompletion = errors.New("llm returned empty completion")

// Disabled is the client used when no provider is configured.
type Disabled struct{}

func (Disabled) Complete(context.Context, Request) (string, error) { return "", ErrDisabled }
