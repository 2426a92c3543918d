// Package openai calls an OpenAI-compatible chat completions endpoint.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/DavideLicci/MindGarden/internal/llm"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// Provider implements llm.Client over HTTP.
type Provider struct {
	client *resty.Client
	model  string
}

// New returns a Provider. An empty baseURL means DefaultBaseURL.
func New(baseURL, apiKey, model string, timeout time.Duration) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}
	return &Provider{client: c, model: model}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message llm.Message `json:"message"`
	} `json:"choices"`
}

// Complete sends req as a chat completion.
func (p *Provider) Complete(ctx context.Context, req llm.Request) (string, error) {
	msgs := make([]llm.Message, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, llm.Message{Role: "system", Content: req.System})
	}
	msgs = append(msgs, req.Messages...)

	body := chatRequest{
		Model:       p.model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("openai status %d: %s", resp.StatusCode(), resp.String())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", llm.ErrEmptyCompletion
	}
	return cr.Choices[0].Message.Content, nil
}

// HealthPing lists models, which needs a valid key but costs no tokens.
func (p *Provider) HealthPing(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get("/models")
	if err != nil {
		return fmt.Errorf("openai ping: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("openai ping status %d", resp.StatusCode())
	}
	return nil
}
