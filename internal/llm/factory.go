package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/adaptiq/internal/store"
)

// NewProvider builds the configured vendor provider and wraps it as
// caller → timeout → retry → logging → vendor, so every attempt is logged
// and the deadline covers all attempts.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := newVendor(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, events, logger)
	p = WithRetry(p, cfg.Retry, logger)
	return WithTimeout(p, cfg.Timeout), nil
}

func newVendor(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	}
	return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
}

// NewProviderFromEnv reads ADAPTIQ_* settings. When they name no usable
// key it falls back to the vendors' own variables (OPENROUTER_API_KEY and
// friends), keeping the timeout and retry settings from the environment.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.Validate() != nil {
		if discovered, ok := DiscoverConfig(); ok {
			discovered.Timeout = cfg.Timeout
			discovered.Retry = cfg.Retry
			cfg = discovered
		}
	}
	return NewProvider(ctx, cfg, events, logger)
}
