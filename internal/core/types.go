package core

import (
	"strings"
	"time"
)

const (
	TuskName          = "TuskVoice"
	TuskUserAgent     = "TuskVoice/0.1"
	TuskRepositoryURL = "https://github.com/sandevgo/tuskvoice"
	TuskVersion       = "0.1.0"
)

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one utterance held by a memory window. Emotion and Signature are
// only set on user turns, ReplyEmotion only on assistant turns.
type Turn struct {
	ID           string       `json:"id"`
	Speaker      Speaker      `json:"speaker"`
	Text         string       `json:"text"`
	Timestamp    time.Time    `json:"timestamp"`
	Emotion      Emotion      `json:"emotion,omitempty"`
	ReplyEmotion ReplyEmotion `json:"reply_emotion,omitempty"`
	Signature    string       `json:"signature,omitempty"`
}

// Label returns the emotion label matching the turn's speaker.
func (t Turn) Label() string {
	if t.Speaker == SpeakerAssistant {
		return string(t.ReplyEmotion)
	}
	return string(t.Emotion)
}

// DialogueContext is built by the caller for a single turn and never stored.
type DialogueContext struct {
	SessionID         string
	UserID            string
	LastUserText      string
	LastAssistantText string
	TurnIndex         int
	Mode              Mode
	Module            Module
	Tone              Tone
}

type Snippet struct {
	ID      int64  `json:"id"`
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

// SessionRef identifies who issued a slash command.
type SessionRef struct {
	SessionID string
	UserID    string
}

type Tone string

const (
	ToneWarm     Tone = "warm"
	ToneDirect   Tone = "direct"
	TonePlayful  Tone = "playful"
	ToneCalm     Tone = "calm"
	ToneClinical Tone = "clinical"
)

var Tones = []Tone{ToneWarm, ToneDirect, TonePlayful, ToneCalm, ToneClinical}

type Mode string

const (
	ModePublic    Mode = "public"
	ModeContext   Mode = "context"
	ModeArchitect Mode = "architect"
	ModeCode      Mode = "code"
)

var Modes = []Mode{ModePublic, ModeContext, ModeArchitect, ModeCode}

type Module string

const (
	ModuleCore    Module = "core"
	ModuleHealth  Module = "health"
	ModuleFinance Module = "finance"
	ModuleAuto    Module = "auto"
	ModuleSchool  Module = "school"
	ModuleCreator Module = "creator"
	ModuleLegal   Module = "legal"
)

var Modules = []Module{
	ModuleCore, ModuleHealth, ModuleFinance, ModuleAuto,
	ModuleSchool, ModuleCreator, ModuleLegal,
}

func ParseTone(s string) (Tone, bool) {
	return parseName(s, Tones)
}

func ParseMode(s string) (Mode, bool) {
	return parseName(s, Modes)
}

func ParseModule(s string) (Module, bool) {
	return parseName(s, Modules)
}

func parseName[T ~string](s string, known []T) (T, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range known {
		if string(k) == s {
			return k, true
		}
	}
	var zero T
	return zero, false
}
