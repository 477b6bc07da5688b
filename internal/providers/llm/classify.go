package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/inbucket/html2text"
	"github.com/openai/openai-go"

	"github.com/sandevgo/tuskvoice/internal/core"
)

var htmlTag = regexp.MustCompile(`(?i)<\s*(html|body|p|div|br|span|ul|ol|li|h[1-6]|table)\b[^>]*>`)

// openai-go reports an undecodable 200 body with this message.
const parseErrMessage = "error parsing response json"

// statusError is a non-200 answer from the backend.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

// classifyTransport tags an error returned while talking to the backend.
// Status answers and transport errors are network failures. A body that
// arrived but could not be parsed is a decode failure.
func classifyTransport(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return core.NetworkFailure(err)
	}
	if isDecodeError(err) {
		return core.DecodeFailure(err)
	}
	return core.NetworkFailure(err)
}

func isDecodeError(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return true
	case errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}
	return strings.Contains(err.Error(), parseErrMessage)
}

// statusCode extracts the HTTP status carried by err, if any.
func statusCode(err error) (int, bool) {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// normalizeContent turns the backend's text into plain reply text. HTML
// bodies are converted to text first.
func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", core.EmptyResponse(nil)
	}

	if htmlTag.MatchString(content) {
		text, err := html2text.FromString(content, html2text.Options{
			OmitLinks:    false,
			PrettyTables: true,
		})
		if err != nil {
			return "", core.DecodeFailure(err)
		}
		content = strings.TrimSpace(text)
		if content == "" {
			return "", core.EmptyResponse(nil)
		}
	}
	return content, nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if !errors.Is(err, core.ErrNetworkFailure) {
		return false
	}
	if code, ok := statusCode(err); ok {
		return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	}
	return true
}
