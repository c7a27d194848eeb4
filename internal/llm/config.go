package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config selects a vendor and carries the settings for every vendor, so
// switching ADAPTIQ_LLM_PROVIDER needs no other change.
type Config struct {
	// Provider is one of "openrouter", "openai", "anthropic", "gemini"
	// or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one generation including retries. Zero leaves the
	// deadline to the caller.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL points at an OpenAI-compatible gateway instead.
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig shapes the exponential backoff. MaxAttempts counts the
// first call, so 1 disables retrying.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// vendorSettings points at one vendor's fields inside a Config.
type vendorSettings struct {
	key, model, baseURL *string
}

// vendor describes how one provider is configured from the environment.
// env is the ADAPTIQ_<env>_* prefix; sdkKey is the variable the vendor's
// own tooling reads.
type vendor struct {
	name   string
	env    string
	sdkKey string
	fields func(*Config) vendorSettings
}

// vendors is in discovery order.
var vendors = []vendor{
	{"openrouter", "OPENROUTER", "OPENROUTER_API_KEY", func(c *Config) vendorSettings {
		return vendorSettings{&c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL}
	}},
	{"openai", "OPENAI", "OPENAI_API_KEY", func(c *Config) vendorSettings {
		return vendorSettings{&c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL}
	}},
	{"gemini", "GEMINI", "GEMINI_API_KEY", func(c *Config) vendorSettings {
		return vendorSettings{key: &c.Gemini.APIKey, model: &c.Gemini.Model}
	}},
	{"anthropic", "ANTHROPIC", "ANTHROPIC_API_KEY", func(c *Config) vendorSettings {
		return vendorSettings{key: &c.Anthropic.APIKey, model: &c.Anthropic.Model}
	}},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

func DefaultConfig() Config {
	return Config{
		Provider:   "openrouter",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "openai/gpt-4o-mini"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: time.Minute,
	}
}

// ConfigFromEnv overlays ADAPTIQ_* variables on DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "ADAPTIQ_LLM_PROVIDER")

	for _, v := range vendors {
		f := v.fields(&cfg)
		setFromEnv(f.key, "ADAPTIQ_"+v.env+"_API_KEY")
		setFromEnv(f.model, "ADAPTIQ_"+v.env+"_MODEL")
		if f.baseURL != nil {
			setFromEnv(f.baseURL, "ADAPTIQ_"+v.env+"_BASE_URL")
		}
	}

	if raw := os.Getenv("ADAPTIQ_LLM_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("ADAPTIQ_LLM_TIMEOUT=%q is not a valid duration: %w", raw, err)
		}
		cfg.Timeout = d
	}
	if raw := os.Getenv("ADAPTIQ_LLM_MAX_ATTEMPTS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("ADAPTIQ_LLM_MAX_ATTEMPTS=%q must be a positive integer", raw)
		}
		cfg.Retry.MaxAttempts = n
	}
	return cfg, nil
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first vendor whose own API key variable is
// set (OPENROUTER_API_KEY, then OPENAI, GEMINI, ANTHROPIC).
func DiscoverConfig() (Config, bool) {
	for _, v := range vendors {
		key := os.Getenv(v.sdkKey)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = v.name
		*v.fields(&cfg).key = key
		return cfg, true
	}
	return Config{}, false
}

// Validate reports a missing API key for the selected vendor.
func (c Config) Validate() error {
	if c.Provider != "mock" {
		v, ok := lookupVendor(c.Provider)
		if !ok {
			return fmt.Errorf("unknown LLM provider: %q", c.Provider)
		}
		if *v.fields(&c).key == "" {
			return fmt.Errorf("ADAPTIQ_%s_API_KEY is required for the %s provider", v.env, v.name)
		}
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
