package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/skillnav/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with the
// timeout, rate limit, retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → timeout → rate limit → retry → logging → base
	p := WithLogging(base, eventRepo, logger)
	p = WithRetry(p, cfg.Retry)
	p = WithRateLimit(p, cfg.RateLimit)
	p = WithTimeout(p, cfg.Timeout)

	return p, nil
}
