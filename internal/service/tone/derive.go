package tone

import (
	"strings"

	"github.com/sandevgo/tuskvoice/internal/core"
)

type rule struct {
	tone    core.Tone
	markers []string
}

// Checked in order; the first rule with a matching marker decides.
var deriveRules = []rule{
	{core.TonePlayful, []string{"lol", "lmao", "😂", "🤣"}},
	{core.ToneWarm, []string{"why", "?"}},
	{core.ToneDirect, []string{"fuck", "mad", "annoyed"}},
	{core.ToneCalm, []string{"tired", "exhausted", "overwhelmed"}},
}

// Derive picks the tone for the next reply from the user's line, falling
// back to fallback when nothing matches.
func Derive(line string, fallback core.Tone) core.Tone {
	lower := strings.ToLower(line)
	for _, r := range deriveRules {
		for _, m := range r.markers {
			if strings.Contains(lower, m) {
				return r.tone
			}
		}
	}
	return fallback
}
