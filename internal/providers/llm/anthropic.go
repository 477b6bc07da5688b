package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/tuskvoice/internal/core"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	maxReplyTokens   = 1024
)

type Anthropic struct {
	baseProvider
}

func NewAnthropic(baseURL, apiKey, model string) *Anthropic {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &Anthropic{
		baseProvider: newBaseProvider(strings.TrimRight(baseURL, "/"), apiKey, model),
	}
}

func (a *Anthropic) Generate(ctx context.Context, directive, userText string) (string, error) {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	payload := map[string]any{
		"model":      a.model,
		"max_tokens": maxReplyTokens,
		"system":     directive,
		"messages":   []msg{{Role: "user", Content: userText}},
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}

	data, err := a.postJSON(ctx, "/v1/messages", payload, headers)
	if err != nil {
		return "", err
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", core.DecodeFailure(fmt.Errorf("decode: %w", err))
	}
	if len(result.Content) == 0 {
		return "", core.MalformedResponse(fmt.Errorf("no content blocks: %s", string(data)))
	}

	var text strings.Builder
	for _, c := range result.Content {
		if c.Type == "text" {
			text.WriteString(c.Text)
		}
	}
	return normalizeContent(text.String())
}
