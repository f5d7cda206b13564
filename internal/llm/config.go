package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Endpoint is the credentials and model for one provider.
type Endpoint struct {
	APIKey  string
	Model   string
	BaseURL string // optional override
}

// Config selects and configures the LLM provider used for local assist.
type Config struct {
	Provider string

	Anthropic  Endpoint
	OpenAI     Endpoint
	Gemini     Endpoint
	OpenRouter Endpoint
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses Gemini flash, matching the PRISM service.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  Endpoint{Model: "claude-haiku"},
		OpenAI:     Endpoint{Model: "gpt-4o-mini"},
		Gemini:     Endpoint{Model: "gemini-flash"},
		OpenRouter: Endpoint{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// endpoint returns a pointer to the named provider's settings.
func (c *Config) endpoint(name string) *Endpoint {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

var providerEnvNames = map[string]string{
	ProviderAnthropic:  "ANTHROPIC",
	ProviderOpenAI:     "OPENAI",
	ProviderGemini:     "GEMINI",
	ProviderOpenRouter: "OPENROUTER",
}

// ConfigFromEnv reads PRISM_LLM_PROVIDER and PRISM_<PROVIDER>_{API_KEY,
// MODEL,BASE_URL}. When no PRISM_ key is set for the selected provider it
// falls back to DiscoverConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	explicit := os.Getenv("PRISM_LLM_PROVIDER")
	if explicit != "" {
		cfg.Provider = explicit
	}

	for name, env := range providerEnvNames {
		ep := cfg.endpoint(name)
		if k := os.Getenv("PRISM_" + env + "_API_KEY"); k != "" {
			ep.APIKey = k
		}
		if m := os.Getenv("PRISM_" + env + "_MODEL"); m != "" {
			ep.Model = m
		}
		if u := os.Getenv("PRISM_" + env + "_BASE_URL"); u != "" {
			ep.BaseURL = u
		}
	}

	if ep := cfg.endpoint(cfg.Provider); ep != nil && ep.APIKey == "" && explicit == "" {
		if found, ok := discover(cfg); ok {
			return found
		}
	}
	return cfg
}

// DiscoverConfig probes the standard API key variables in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter).
func DiscoverConfig() (Config, bool) {
	return discover(DefaultConfig())
}

func discover(cfg Config) (Config, bool) {
	for _, name := range []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter} {
		if k := os.Getenv(providerEnvNames[name] + "_API_KEY"); k != "" {
			cfg.Provider = name
			cfg.endpoint(name).APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	ep := c.endpoint(c.Provider)
	if ep == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if ep.APIKey == "" {
		return fmt.Errorf("PRISM_%s_API_KEY is required for the %s provider", providerEnvNames[c.Provider], c.Provider)
	}
	return nil
}
