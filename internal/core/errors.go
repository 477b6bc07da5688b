package core

import (
	"errors"
	"fmt"
)

// Generator failure kinds. Providers wrap their underlying cause with one of
// these so callers can branch with errors.Is.
var (
	ErrNetworkFailure    = errors.New("network failure")
	ErrEmptyResponse     = errors.New("empty response")
	ErrMalformedResponse = errors.New("malformed response")
	ErrDecodeFailure     = errors.New("decode failure")
)

func NetworkFailure(err error) error {
	return wrapFailure(ErrNetworkFailure, err)
}

func EmptyResponse(err error) error {
	return wrapFailure(ErrEmptyResponse, err)
}

func MalformedResponse(err error) error {
	return wrapFailure(ErrMalformedResponse, err)
}

func DecodeFailure(err error) error {
	return wrapFailure(ErrDecodeFailure, err)
}

func wrapFailure(kind, err error) error {
	if err == nil {
		return kind
	}
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// FailureKind returns the sentinel a generator error was classified as, or
// nil when the error carries no classification.
func FailureKind(err error) error {
	for _, kind := range []error{ErrDecodeFailure, ErrMalformedResponse, ErrEmptyResponse, ErrNetworkFailure} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
