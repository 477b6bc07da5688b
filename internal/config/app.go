package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"

	"github.com/sandevgo/tuskvoice/pkg/log"
)

var Providers = []string{"openai", "anthropic", "openrouter", "ollama", "custom"}

type AppConfig struct {
	RuntimePath string `env:"TUSK_RUNTIME_PATH" envDefault:".tuskvoice"`

	Provider string `env:"LLM_PROVIDER" envDefault:"openrouter"`
	Model    string `env:"LLM_MODEL" envDefault:"google/gemma-3-27b-it:free"`

	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey     string `env:"ANTHROPIC_API_KEY"`
	OpenRouterAPIKey    string `env:"OPENROUTER_API_KEY"`
	OllamaBaseURL       string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey        string `env:"OLLAMA_API_KEY"`
	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`

	// Owner mode gates /model. Empty treats everyone as the owner.
	OwnerPassphrase string `env:"OWNER_PASSPHRASE"`

	// Side logs
	EnableTranscript bool `env:"ENABLE_TRANSCRIPT" envDefault:"false"`
	EnableKnowledge  bool `env:"ENABLE_KNOWLEDGE" envDefault:"false"`

	mu sync.RWMutex
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	if !filepath.IsAbs(c.RuntimePath) {
		c.RuntimePath = GetRuntimePath()
	}
	return c
}

func (c *AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c *AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "tuskvoice.db")
}

func (c *AppConfig) UseSQLite() bool {
	return c.EnableTranscript || c.EnableKnowledge
}

func (c *AppConfig) GetProvider() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Provider
}

func (c *AppConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

func (c *AppConfig) GetAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch c.Provider {
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	case "openrouter":
		return c.OpenRouterAPIKey
	case "ollama":
		return c.OllamaAPIKey
	case "custom":
		return c.CustomOpenAIAPIKey
	default:
		return ""
	}
}

func (c *AppConfig) GetBaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch c.Provider {
	case "ollama":
		return c.OllamaBaseURL
	case "custom":
		return c.CustomOpenAIBaseURL
	default:
		return ""
	}
}

// SetModel accepts either "model" or "provider/model". A leading segment that
// names a known provider switches the provider as well, so an OpenRouter id
// such as "openai/gpt-4o" must be given as "openrouter/openai/gpt-4o".
func (c *AppConfig) SetModel(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("model name is empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if prefix, rest, ok := strings.Cut(value, "/"); ok && slices.Contains(Providers, prefix) && rest != "" {
		c.Provider, c.Model = prefix, rest
		return nil
	}
	c.Model = value
	return nil
}

// SetAPIKey stores key in the field of the active provider.
func (c *AppConfig) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.Provider {
	case "openai":
		c.OpenAIAPIKey = key
	case "anthropic":
		c.AnthropicAPIKey = key
	case "openrouter":
		c.OpenRouterAPIKey = key
	case "ollama":
		c.OllamaAPIKey = key
	case "custom":
		c.CustomOpenAIAPIKey = key
	}
}
