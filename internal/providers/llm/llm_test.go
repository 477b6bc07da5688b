package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/tuskvoice/internal/config"
	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/pkg/retry"
)

func chatCompletion(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "test-model",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(body)
}

type recordedRequest struct {
	Path     string
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		var rec recordedRequest
		_ = json.Unmarshal(data, &rec)
		rec.Path = r.URL.Path

		mu.Lock()
		reqs = append(reqs, rec)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestOpenAICompatible_Generate(t *testing.T) {
	srv, reqs := newChatServer(t, http.StatusOK, chatCompletion("Hello there"))
	gen := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL: compatibleBaseURL(srv.URL),
		APIKey:  "sk-test",
		Model:   "test-model",
	})

	got, err := gen.Generate(context.Background(), "be nice", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", got)

	require.Len(t, *reqs, 1)
	req := (*reqs)[0]
	assert.Equal(t, "/v1/chat/completions", req.Path)
	assert.Equal(t, "test-model", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "be nice", req.Messages[0].Content)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, "hi", req.Messages[1].Content)
}

func TestOpenAICompatible_FailureKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom"}}`, core.ErrNetworkFailure},
		{"no choices", http.StatusOK, `{"id":"x","object":"chat.completion","choices":[]}`, core.ErrMalformedResponse},
		{"blank content", http.StatusOK, chatCompletion("   "), core.ErrEmptyResponse},
		{"broken json", http.StatusOK, `{"id": "x", "choices": [`, core.ErrDecodeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newChatServer(t, tt.status, tt.body)
			gen := NewOpenAICompatible(OpenAICompatibleConfig{BaseURL: compatibleBaseURL(srv.URL), Model: "m"})

			_, err := gen.Generate(context.Background(), "d", "u")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpenAICompatible_Unreachable(t *testing.T) {
	srv, _ := newChatServer(t, http.StatusOK, chatCompletion("x"))
	url := srv.URL
	srv.Close()

	gen := NewOpenAICompatible(OpenAICompatibleConfig{BaseURL: compatibleBaseURL(url), Model: "m"})
	_, err := gen.Generate(context.Background(), "d", "u")
	assert.ErrorIs(t, err, core.ErrNetworkFailure)
}

func TestAnthropic_Generate(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr error
	}{
		{
			name:   "text blocks joined",
			status: http.StatusOK,
			body:   `{"content":[{"type":"text","text":"Hello "},{"type":"tool_use"},{"type":"text","text":"world"}]}`,
			want:   "Hello world",
		},
		{name: "status error", status: http.StatusTooManyRequests, body: `{"error":"slow down"}`, wantErr: core.ErrNetworkFailure},
		{name: "no content", status: http.StatusOK, body: `{"content":[]}`, wantErr: core.ErrMalformedResponse},
		{name: "bad json", status: http.StatusOK, body: `not json`, wantErr: core.ErrDecodeFailure},
		{name: "blank text", status: http.StatusOK, body: `{"content":[{"type":"text","text":" "}]}`, wantErr: core.ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSystem, gotKey string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var payload struct {
					System string `json:"system"`
				}
				_ = json.NewDecoder(r.Body).Decode(&payload)
				gotSystem = payload.System
				gotKey = r.Header.Get("x-api-key")

				assert.Equal(t, "/v1/messages", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			got, err := NewAnthropic(srv.URL, "key", "claude").Generate(context.Background(), "directive", "hi")
			assert.Equal(t, "directive", gotSystem)
			assert.Equal(t, "key", gotKey)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeContent(t *testing.T) {
	got, err := normalizeContent("  plain text  ")
	require.NoError(t, err)
	assert.Equal(t, "plain text", got)

	got, err = normalizeContent("<p>Hello world</p><p>Second paragraph</p>")
	require.NoError(t, err)
	assert.Contains(t, got, "Hello world")
	assert.Contains(t, got, "Second paragraph")
	assert.NotContains(t, got, "<p>")

	got, err = normalizeContent("Use a < b when comparing.")
	require.NoError(t, err)
	assert.Equal(t, "Use a < b when comparing.", got)

	_, err = normalizeContent("<div>   </div>")
	assert.ErrorIs(t, err, core.ErrEmptyResponse)
}

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"syntax error", &json.SyntaxError{}, core.ErrDecodeFailure},
		{"truncated body", fmt.Errorf("error parsing response json: %w", io.ErrUnexpectedEOF), core.ErrDecodeFailure},
		{"unwrapped parse message", errors.New("error parsing response json: unexpected EOF"), core.ErrDecodeFailure},
		{"connection reset", errors.New("connection reset"), core.ErrNetworkFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyTransport(tt.err), tt.want)
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport", core.NetworkFailure(errors.New("reset")), true},
		{"rate limited", core.NetworkFailure(&statusError{Code: http.StatusTooManyRequests}), true},
		{"server error", core.NetworkFailure(&statusError{Code: http.StatusServiceUnavailable}), true},
		{"bad request", core.NetworkFailure(&statusError{Code: http.StatusBadRequest}), false},
		{"unauthorized", core.NetworkFailure(&statusError{Code: http.StatusUnauthorized}), false},
		{"decode", core.DecodeFailure(errors.New("x")), false},
		{"canceled", core.NetworkFailure(context.Canceled), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestOpenAICompatible_StatusRetries(t *testing.T) {
	tests := []struct {
		name   string
		status int
		calls  int
	}{
		{"unauthorized", http.StatusUnauthorized, 1},
		{"bad request", http.StatusBadRequest, 1},
		{"rate limited", http.StatusTooManyRequests, 3},
		{"bad gateway", http.StatusBadGateway, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, reqs := newChatServer(t, tt.status, `{"error":{"message":"nope"}}`)
			gen := WithRetry(NewOpenAICompatible(OpenAICompatibleConfig{BaseURL: compatibleBaseURL(srv.URL), Model: "m"}), fastRetry())

			_, err := gen.Generate(context.Background(), "d", "u")
			assert.ErrorIs(t, err, core.ErrNetworkFailure)
			assert.Len(t, *reqs, tt.calls)
		})
	}
}

func TestAnthropic_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"bad key"}`)
	}))
	defer srv.Close()

	_, err := WithRetry(NewAnthropic(srv.URL, "key", "claude"), fastRetry()).Generate(context.Background(), "d", "u")
	assert.ErrorIs(t, err, core.ErrNetworkFailure)
	assert.Equal(t, int32(1), calls.Load())
}

type scriptedGenerator struct {
	errs  []error
	calls int
}

func (s *scriptedGenerator) Generate(context.Context, string, string) (string, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return "", s.errs[s.calls-1]
	}
	return "ok", nil
}

func fastRetry() *retry.Config {
	return &retry.Config{
		MaxRetries:    2,
		BackoffFactor: 2,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("network failures are retried", func(t *testing.T) {
		inner := &scriptedGenerator{errs: []error{
			core.NetworkFailure(errors.New("reset")),
			core.NetworkFailure(errors.New("reset")),
		}}
		got, err := WithRetry(inner, fastRetry()).Generate(context.Background(), "d", "u")
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, inner.calls)
	})

	t.Run("other kinds are not", func(t *testing.T) {
		inner := &scriptedGenerator{errs: []error{core.MalformedResponse(errors.New("no choices"))}}
		_, err := WithRetry(inner, fastRetry()).Generate(context.Background(), "d", "u")
		assert.ErrorIs(t, err, core.ErrMalformedResponse)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("cancellation stops retries", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		inner := &scriptedGenerator{errs: []error{core.NetworkFailure(context.Canceled)}}
		_, err := WithRetry(inner, fastRetry()).Generate(ctx, "d", "u")
		assert.ErrorIs(t, err, core.ErrNetworkFailure)
		assert.Equal(t, 1, inner.calls)
	})
}

func TestDynamicProvider_SetModel(t *testing.T) {
	srv, reqs := newChatServer(t, http.StatusOK, chatCompletion("hi"))
	cfg := &config.AppConfig{
		Provider:            "custom",
		Model:               "m1",
		CustomOpenAIBaseURL: srv.URL,
	}

	ctx := context.Background()
	d, err := NewDynamicProvider(ctx, cfg)
	require.NoError(t, err)

	_, err = d.Generate(ctx, "d", "u")
	require.NoError(t, err)

	require.NoError(t, d.SetModel(ctx, "m2"))
	assert.Equal(t, "custom/m2", d.GetModel())

	_, err = d.Generate(ctx, "d", "u")
	require.NoError(t, err)

	require.Len(t, *reqs, 2)
	assert.Equal(t, "m1", (*reqs)[0].Model)
	assert.Equal(t, "m2", (*reqs)[1].Model)

	err = d.SetModel(ctx, "ollama/llama3")
	require.Error(t, err)
	assert.Equal(t, "custom", cfg.GetProvider())
	assert.Equal(t, "custom/m2", d.GetModel())
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(context.Background(), &config.AppConfig{Provider: "nope", Model: "x"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown llm provider"))
}

func TestCompatibleBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:11434/v1/", compatibleBaseURL("http://localhost:11434"))
	assert.Equal(t, "http://localhost:11434/v1/", compatibleBaseURL("http://localhost:11434/v1/"))
}
