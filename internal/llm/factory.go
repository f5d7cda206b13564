package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/prism/internal/logger"
	"github.com/abhisek/prism/internal/metrics"
	"github.com/abhisek/prism/internal/store"
)

// Deps are the optional collaborators of a provider chain.
type Deps struct {
	Events  store.EventRepo
	Log     logger.Logger
	Metrics *metrics.Metrics
}

// NewProvider builds the configured provider wrapped as
// caller → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, deps.Events, deps.Log, deps.Metrics)
	return WithRetry(logged, cfg.Retry, deps.Log), nil
}
