package emotion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/tuskvoice/internal/core"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  core.Emotion
	}{
		{"empty", "", core.EmotionNeutral},
		{"whitespace", "   \n", core.EmotionNeutral},
		{"plain", "what time is the meeting", core.EmotionNeutral},
		{"frustrated", "I'm so pissed off about this bug", core.EmotionFrustrated},
		{"case insensitive", "WTF is this", core.EmotionFrustrated},
		{"profanity", "this fucking thing", core.EmotionFrustrated},
		{"irritated", "honestly irritated", core.EmotionFrustrated},
		{"angry", "I am furious right now", core.EmotionAngry},
		{"frustration beats anger", "angry and annoyed", core.EmotionFrustrated},
		{"frustration beats sadness", "I'm sad and annoyed", core.EmotionFrustrated},
		{"sad", "I feel sad tonight", core.EmotionSad},
		{"exhausted", "I'm exhausted", core.EmotionSad},
		{"drained", "totally drained", core.EmotionSad},
		{"sadness beats anxiety", "tired and worried", core.EmotionSad},
		{"anxious", "I'm nervous about the interview", core.EmotionAnxious},
		{"anxiety beats positivity", "happy but stressed", core.EmotionAnxious},
		{"positive", "so excited", core.EmotionPositive},
		{"positive phrase", "love this, let's go", core.EmotionPositive},
		{"positivity beats excitement", "hyped!!!", core.EmotionPositive},
		{"excited punctuation", "we shipped it!!!", core.EmotionExcited},
		{"excited word", "that demo was insane", core.EmotionExcited},
		{"excited emoji", "launch day 🔥", core.EmotionExcited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Estimate(tt.input))
		})
	}
}

func TestEstimateReply(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  core.ReplyEmotion
	}{
		{"empty", "", core.ReplyCalm},
		{"plain", "Sounds good.", core.ReplyCalm},
		{"curious question", "What made you pick that approach?", core.ReplyCurious},
		{"curious why", "Here is why it works.", core.ReplyCurious},
		{"frustrated", "That would make anyone mad.", core.ReplyFrustrated},
		{"sad", "You sound tired.", core.ReplySad},
		{"inspired", "This is amazing work.", core.ReplyInspired},
		{"analytical", "Let's debug the parser.", core.ReplyAnalytical},
		{"curious comes first", "Angry at the code?", core.ReplyCurious},
		{"frustration beats analysis", "The code made you mad.", core.ReplyFrustrated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateReply(tt.input))
		})
	}
}
