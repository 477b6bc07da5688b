package memory

import "github.com/sandevgo/tuskvoice/internal/core"

// Snapshot is a read-only view of the user side of a window.
type Snapshot struct {
	DominantEmotion core.Emotion   `json:"dominant_emotion"`
	RecentEmotions  []core.Emotion `json:"recent_emotions"`
}

// Snapshot reports the most frequent user emotion in the window. Ties go to
// the emotion seen first.
func (w *Window) Snapshot() Snapshot {
	return Summarize(w.Recent())
}

func Summarize(turns []core.Turn) Snapshot {
	snap := Snapshot{
		DominantEmotion: core.EmotionNeutral,
		RecentEmotions:  make([]core.Emotion, 0, len(turns)),
	}

	counts := make(map[core.Emotion]int)
	var order []core.Emotion
	for _, t := range turns {
		if t.Speaker != core.SpeakerUser {
			continue
		}
		snap.RecentEmotions = append(snap.RecentEmotions, t.Emotion)
		if counts[t.Emotion] == 0 {
			order = append(order, t.Emotion)
		}
		counts[t.Emotion]++
	}

	best := 0
	for _, e := range order {
		if counts[e] > best {
			best = counts[e]
			snap.DominantEmotion = e
		}
	}
	return snap
}
