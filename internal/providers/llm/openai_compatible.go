package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/sandevgo/tuskvoice/internal/core"
)

// OpenAICompatible talks to any backend that speaks the chat completions API.
type OpenAICompatible struct {
	client openai.Client
	model  string
}

type OpenAICompatibleConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExtraHeaders map[string]string
}

func NewOpenAICompatible(cfg OpenAICompatibleConfig) *OpenAICompatible {
	opts := []option.RequestOption{
		// Retries are handled by the caller so only network failures repeat.
		option.WithMaxRetries(0),
		option.WithHeader("User-Agent", userAgent),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	for k, v := range cfg.ExtraHeaders {
		opts = append(opts, option.WithHeader(k, v))
	}

	return &OpenAICompatible{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

func (o *OpenAICompatible) Generate(ctx context.Context, directive, userText string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(directive),
			openai.UserMessage(userText),
		},
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyTransport(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", core.MalformedResponse(fmt.Errorf("empty choices"))
	}
	return normalizeContent(resp.Choices[0].Message.Content)
}
