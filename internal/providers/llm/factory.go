package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/pkg/log"
	"github.com/sandevgo/tuskvoice/pkg/retry"
)

const (
	openAIBaseURL     = "https://api.openai.com/v1/"
	openRouterBaseURL = "https://openrouter.ai/api/v1/"
)

const userAgent = core.TuskUserAgent

// NewProvider creates the Generator for the configured backend, wrapped so
// that network failures are retried.
func NewProvider(ctx context.Context, cfg core.ProviderConfig) (core.Generator, error) {
	provider, model := cfg.GetProvider(), cfg.GetModel()

	log.FromCtx(ctx).Info().
		Str("provider", provider).
		Str("model", model).
		Msg("starting llm provider")

	var gen core.Generator
	switch provider {
	case "openai":
		gen = NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL: openAIBaseURL,
			APIKey:  cfg.GetAPIKey(),
			Model:   model,
		})
	case "anthropic":
		gen = NewAnthropic(cfg.GetBaseURL(), cfg.GetAPIKey(), model)
	case "openrouter":
		gen = NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL: openRouterBaseURL,
			APIKey:  cfg.GetAPIKey(),
			Model:   model,
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.TuskRepositoryURL,
				"X-Title":      core.TuskName,
			},
		})
	case "ollama", "custom":
		if cfg.GetBaseURL() == "" {
			return nil, fmt.Errorf("%s provider requires a base url", provider)
		}
		gen = NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL: compatibleBaseURL(cfg.GetBaseURL()),
			APIKey:  cfg.GetAPIKey(),
			Model:   model,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}

	return WithRetry(gen, nil), nil
}

// compatibleBaseURL appends the /v1/ prefix chat completion servers expect
// unless the url already carries it.
func compatibleBaseURL(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, "/v1") {
		return base + "/"
	}
	return base + "/v1/"
}

func NewRetryConfig() *retry.Config {
	return &retry.Config{
		MaxRetries:    2,
		BackoffFactor: 2,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		Jitter:        100 * time.Millisecond,
		Retryable:     isRetryable,
	}
}

type retryingGenerator struct {
	next    core.Generator
	retrier *retry.Retrier
}

// WithRetry retries gen on network failures only. A nil cfg uses NewRetryConfig.
func WithRetry(gen core.Generator, cfg *retry.Config) core.Generator {
	if cfg == nil {
		cfg = NewRetryConfig()
	}
	if cfg.Retryable == nil {
		cfg.Retryable = isRetryable
	}
	return &retryingGenerator{next: gen, retrier: retry.NewRetrier(cfg)}
}

func (r *retryingGenerator) Generate(ctx context.Context, directive, userText string) (string, error) {
	var out string
	attempt := 0
	err := r.retrier.Do(ctx, func() error {
		attempt++
		text, err := r.next.Generate(ctx, directive, userText)
		if err != nil {
			log.FromCtx(ctx).Debug().Err(err).Int("attempt", attempt).Msg("generator attempt failed")
			return err
		}
		out = text
		return nil
	})
	if err != nil {
		if core.FailureKind(err) == nil {
			return "", core.NetworkFailure(err)
		}
		return "", err
	}
	return out, nil
}
