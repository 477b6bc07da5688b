package pipeline

import (
	"errors"

	"github.com/sandevgo/tuskvoice/internal/core"
)

const (
	NetworkReply    = "I couldn't reach my thinking engine just now. Give me a moment and try again."
	EmptyReply      = "I came up empty on that one. Could you rephrase it for me?"
	MalformedReply  = "Something came back garbled on my side. Let's try that once more."
	DecodeReply     = "I got a reply I couldn't read properly. Mind sending that again?"
	EmptyInputReply = "I didn't catch anything there. What's on your mind?"
)

// Fallback maps a generator failure to the sentence shown to the user.
// Unclassified errors, cancellation included, read as network failures.
func Fallback(err error) string {
	switch {
	case errors.Is(err, core.ErrDecodeFailure):
		return DecodeReply
	case errors.Is(err, core.ErrMalformedResponse):
		return MalformedReply
	case errors.Is(err, core.ErrEmptyResponse):
		return EmptyReply
	default:
		return NetworkReply
	}
}

func kindName(err error) string {
	switch core.FailureKind(err) {
	case core.ErrDecodeFailure:
		return "decode"
	case core.ErrMalformedResponse:
		return "malformed"
	case core.ErrEmptyResponse:
		return "empty"
	case core.ErrNetworkFailure:
		return "network"
	default:
		return "unknown"
	}
}
