// Package intent guesses an operating mode from a user line when the
// session has not pinned one, and maps modes to their default tone.
package intent

import (
	"strings"

	"github.com/sandevgo/tuskvoice/internal/core"
)

type cue struct {
	mode    core.Mode
	markers []string
}

var modeCues = []cue{
	{core.ModeCode, []string{"swift", "xcode", "api"}},
	{core.ModeArchitect, []string{"deck", "investor", "valuation"}},
	{core.ModeContext, []string{"how are you", "talk to me", "be honest with me"}},
}

var modeTones = map[core.Mode]core.Tone{
	core.ModeContext:   core.ToneWarm,
	core.ModeArchitect: core.ToneClinical,
	core.ModeCode:      core.ToneDirect,
}

// DetectMode reports the first mode whose cue appears in text. ok is false
// when nothing matched and the caller's default applies.
func DetectMode(text string) (core.Mode, bool) {
	lower := strings.ToLower(text)
	for _, c := range modeCues {
		for _, m := range c.markers {
			if strings.Contains(lower, m) {
				return c.mode, true
			}
		}
	}
	return "", false
}

// DefaultTone is the tone a mode starts from before any per-user tone has
// been derived. Public mode has none.
func DefaultTone(mode core.Mode) (core.Tone, bool) {
	t, ok := modeTones[mode]
	return t, ok
}
