// Package memory keeps the short conversational window: a bounded list of
// turns that resets itself when the user changes topic.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/emotion"
	"github.com/sandevgo/tuskvoice/internal/service/topic"
)

const (
	DefaultWindowSize  = 7
	DefaultHistorySize = 20
)

type Option func(*Window)

func WithCapacity(n int) Option {
	return func(w *Window) {
		if n > 0 {
			w.capacity = n
		}
	}
}

// WithShiftReset toggles clearing the window on a detected topic shift.
func WithShiftReset(enabled bool) Option {
	return func(w *Window) {
		w.resetOnShift = enabled
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Window) {
		if now != nil {
			w.now = now
		}
	}
}

// Window is a FIFO of turns capped at its capacity. All methods are safe for
// concurrent use.
type Window struct {
	mu           sync.Mutex
	turns        []core.Turn
	capacity     int
	resetOnShift bool
	lastSig      string
	now          func() time.Time
}

func NewWindow(opts ...Option) *Window {
	w := &Window{
		capacity:     DefaultWindowSize,
		resetOnShift: true,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.turns = make([]core.Turn, 0, w.capacity)
	return w
}

// NewHistory returns the flat log variant: same structure, larger capacity,
// no topic-shift reset.
func NewHistory(opts ...Option) *Window {
	base := []Option{WithCapacity(DefaultHistorySize), WithShiftReset(false)}
	return NewWindow(append(base, opts...)...)
}

func (w *Window) AddUser(text string) core.Turn {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addUserLocked(text)
}

func (w *Window) AddAssistant(text string) core.Turn {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addAssistantLocked(text)
}

// AddExchange appends a user turn and the reply to it in one step.
func (w *Window) AddExchange(userText, replyText string) (core.Turn, core.Turn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addUserLocked(userText), w.addAssistantLocked(replyText)
}

// Recent returns a copy of the window, oldest first.
func (w *Window) Recent() []core.Turn {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]core.Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.turns)
}

func (w *Window) Capacity() int {
	return w.capacity
}

func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.turns = w.turns[:0]
	w.lastSig = ""
}

func (w *Window) addUserLocked(text string) core.Turn {
	sig := topic.Signature(text)
	if w.resetOnShift && topic.IsTopicShift(w.lastSig, sig) {
		w.turns = w.turns[:0]
	}

	turn := core.Turn{
		ID:        uuid.NewString(),
		Speaker:   core.SpeakerUser,
		Text:      text,
		Timestamp: w.now(),
		Emotion:   emotion.Estimate(text),
		Signature: sig,
	}
	w.appendLocked(turn)
	w.lastSig = sig
	return turn
}

func (w *Window) addAssistantLocked(text string) core.Turn {
	turn := core.Turn{
		ID:           uuid.NewString(),
		Speaker:      core.SpeakerAssistant,
		Text:         text,
		Timestamp:    w.now(),
		ReplyEmotion: emotion.EstimateReply(text),
	}
	w.appendLocked(turn)
	return turn
}

func (w *Window) appendLocked(turn core.Turn) {
	w.turns = append(w.turns, turn)
	if over := len(w.turns) - w.capacity; over > 0 {
		// Shift in place so the backing array does not grow without bound.
		n := copy(w.turns, w.turns[over:])
		clear(w.turns[n:])
		w.turns = w.turns[:n]
	}
}
