package pipeline

import (
	"sync"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/memory"
)

// Preferences are the per-session defaults used when a caller leaves the
// corresponding DialogueContext field empty. An empty Mode or Tone is not
// pinned: the mode is then detected per message and the tone is derived.
type Preferences struct {
	Mode   core.Mode
	Module core.Module
	Tone   core.Tone
}

type session struct {
	window  *memory.Window
	history *memory.Window

	mu    sync.Mutex
	prefs Preferences
	turns int
}

func (s *session) preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

func (s *session) update(fn func(*Preferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.prefs)
}

func (s *session) completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turns
}

func (s *session) advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns++
}

func (s *session) reset() {
	s.window.Clear()
	s.history.Clear()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = 0
}

func (s *session) fill(dc core.DialogueContext) core.DialogueContext {
	prefs := s.preferences()
	if dc.Mode == "" {
		dc.Mode = prefs.Mode
	}
	if dc.Module == "" {
		dc.Module = prefs.Module
	}
	if dc.Tone == "" {
		dc.Tone = prefs.Tone
	}
	return dc
}
