package core

// Emotion classifies user affect.
type Emotion string

const (
	EmotionNeutral    Emotion = "neutral"
	EmotionPositive   Emotion = "positive"
	EmotionFrustrated Emotion = "frustrated"
	EmotionAngry      Emotion = "angry"
	EmotionSad        Emotion = "sad"
	EmotionAnxious    Emotion = "anxious"
	EmotionExcited    Emotion = "excited"
)

// ReplyEmotion classifies the tone of an assistant reply. It is a separate
// taxonomy from Emotion even where the names overlap.
type ReplyEmotion string

const (
	ReplyCalm       ReplyEmotion = "calm"
	ReplyCurious    ReplyEmotion = "curious"
	ReplyFrustrated ReplyEmotion = "frustrated"
	ReplySad        ReplyEmotion = "sad"
	ReplyInspired   ReplyEmotion = "inspired"
	ReplyAnalytical ReplyEmotion = "analytical"
)
