// Package emotion classifies short lines of text into fixed emotion labels
// using ordered keyword lists. The first matching category wins.
package emotion

import (
	"strings"

	"github.com/sandevgo/tuskvoice/internal/core"
)

type category[T any] struct {
	label    T
	keywords []string
}

var userCategories = []category[core.Emotion]{
	{core.EmotionFrustrated, []string{
		"fuck", "fucking", "pissed", "annoyed", "irritated", "wtf",
	}},
	{core.EmotionAngry, []string{
		"angry", "furious", "livid", "enraged",
	}},
	{core.EmotionSad, []string{
		"sad", "down", "tired", "drained", "exhausted", "depressed",
	}},
	{core.EmotionAnxious, []string{
		"anxious", "nervous", "worried", "stressed", "overwhelmed",
	}},
	{core.EmotionPositive, []string{
		"excited", "hyped", "stoked", "happy", "love this", "fire", "let's go", "lets go",
	}},
	{core.EmotionExcited, []string{
		"!!!", "🔥", "crazy", "insane",
	}},
}

var replyCategories = []category[core.ReplyEmotion]{
	{core.ReplyCurious, []string{"why", "?"}},
	{core.ReplyFrustrated, []string{"angry", "pissed", "mad"}},
	{core.ReplySad, []string{"sad", "tired", "lonely"}},
	{core.ReplyInspired, []string{"love", "excited", "amazing"}},
	{core.ReplyAnalytical, []string{"debug", "code", "analyze"}},
}

// Estimate classifies a user line. Unmatched input is Neutral.
func Estimate(text string) core.Emotion {
	return match(text, userCategories, core.EmotionNeutral)
}

// EstimateReply classifies an assistant reply. Unmatched input is Calm.
func EstimateReply(text string) core.ReplyEmotion {
	return match(text, replyCategories, core.ReplyCalm)
}

func match[T any](text string, categories []category[T], fallback T) T {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return fallback
	}
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.label
			}
		}
	}
	return fallback
}
