package topic

import (
	"strings"
	"unicode"
)

const (
	maxTokens      = 5
	minTokenLength = 4
	separator      = "|"
	shiftThreshold = 0.2
)

// Tokens returns the first five significant lowercase tokens of text,
// repeats included. Tokens of three runes or fewer are dropped.
func Tokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, maxTokens)
	for _, f := range fields {
		if len([]rune(f)) < minTokenLength {
			continue
		}
		tokens = append(tokens, f)
		if len(tokens) == maxTokens {
			break
		}
	}
	return tokens
}

// Signature is the compact fingerprint of an utterance. An empty string
// means the utterance had no significant words.
func Signature(text string) string {
	return strings.Join(Tokens(text), separator)
}

// IsTopicShift reports whether two signatures overlap by less than 20% of
// the smaller one. A missing signature on either side never counts as a shift.
func IsTopicShift(oldSig, newSig string) bool {
	if oldSig == "" || newSig == "" {
		return false
	}

	oldSet := toSet(oldSig)
	newSet := toSet(newSig)

	common := 0
	for tok := range newSet {
		if _, ok := oldSet[tok]; ok {
			common++
		}
	}

	smaller := min(len(oldSet), len(newSet))
	similarity := float64(common) / float64(smaller)
	return similarity < shiftThreshold
}

func toSet(sig string) map[string]struct{} {
	parts := strings.Split(sig, separator)
	set := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if p != "" {
			set[p] = struct{}{}
		}
	}
	return set
}
