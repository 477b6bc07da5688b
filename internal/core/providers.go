package core

import "context"

// Generator produces the raw reply for a user line under a system directive.
type Generator interface {
	Generate(ctx context.Context, directive, userText string) (string, error)
}

type StyleProfile struct {
	Name  string
	Hints map[string]string
}

// StyleProfiler adapts phrasing to a per-user persona profile.
type StyleProfiler interface {
	Profile(userID, lastUtterance string) StyleProfile
	ApplyStyle(text string, profile StyleProfile, module Module, mode Mode, tone Tone) string
}
