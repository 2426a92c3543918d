package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/DavideLicci/MindGarden/internal/config"
	"github.com/DavideLicci/MindGarden/internal/llm"
	"github.com/DavideLicci/MindGarden/internal/llm/gemini"
	"github.com/DavideLicci/MindGarden/internal/llm/openai"
)

// NewLLM returns the configured provider. The second result reports whether
// a real provider is behind the client; "none" yields llm.Disabled.
func NewLLM(ctx context.Context, cfg *config.Config, log zerolog.Logger) (llm.Client, bool, error) {
	switch cfg.LLMProvider {
	case "", "none":
		log.Info().Msg("no llm provider configured; using rule-based replies")
		return llm.Disabled{}, false, nil
	case "openai":
		p := openai.New(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout())
		log.Info().Str("model", cfg.LLMModel).Msg("openai provider ready")
		return p, true, nil
	case "gemini":
		p, err := gemini.New(ctx, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL)
		if err != nil {
			return nil, false, fmt.Errorf("gemini client: %w", err)
		}
		log.Info().Str("model", cfg.LLMModel).Msg("gemini provider ready")
		return p, true, nil
	default:
		return nil, false, fmt.Errorf("unknown LLM_PROVIDER: %s", cfg.LLMProvider)
	}
}
