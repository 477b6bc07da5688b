// Package tokens counts cl100k_base tokens for log output.
package tokens

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const charsPerToken = 4

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// Count returns the token count of text. When the encoding cannot be loaded
// (it is fetched on first use) it falls back to a rune based estimate.
func Count(text string) int {
	if text == "" {
		return 0
	}
	enc, err := getTokenizer()
	if err != nil {
		return Estimate(text)
	}
	return len(enc.Encode(text, nil, nil))
}

func Estimate(text string) int {
	n := utf8.RuneCountInString(text) / charsPerToken
	if n == 0 && text != "" {
		return 1
	}
	return n
}
