// Package pipeline runs one conversational turn end to end: it composes the
// directive, calls the generator, rewrites the reply into the persona voice
// and only then commits memory and tone state.
package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/sandevgo/tuskvoice/internal/config"
	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/directive"
	"github.com/sandevgo/tuskvoice/internal/service/intent"
	"github.com/sandevgo/tuskvoice/internal/service/memory"
	"github.com/sandevgo/tuskvoice/internal/service/rewrite"
	"github.com/sandevgo/tuskvoice/internal/service/tone"
	"github.com/sandevgo/tuskvoice/internal/service/topic"
	"github.com/sandevgo/tuskvoice/pkg/log"
	"github.com/sandevgo/tuskvoice/pkg/tokens"
)

const knowledgeLimit = 3

type Option func(*Pipeline)

func WithKnowledge(k core.KnowledgeLookup) Option {
	return func(p *Pipeline) {
		p.knowledge = k
	}
}

func WithTranscript(r core.TranscriptRepository) Option {
	return func(p *Pipeline) {
		p.transcript = r
	}
}

type Pipeline struct {
	cfg        *config.PersonaConfig
	gen        core.Generator
	tones      *tone.Tracker
	composer   *directive.Composer
	rewriter   *rewrite.Rewriter
	knowledge  core.KnowledgeLookup
	transcript core.TranscriptRepository

	mu       sync.Mutex
	sessions map[string]*session

	pending sync.WaitGroup
}

func New(
	cfg *config.PersonaConfig,
	gen core.Generator,
	tones *tone.Tracker,
	composer *directive.Composer,
	rewriter *rewrite.Rewriter,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		gen:      gen,
		tones:    tones,
		composer: composer,
		rewriter: rewriter,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SubmitUserTurn always returns text for the user. Generator failures and
// cancellation yield a fallback sentence and leave no trace in memory or
// tone state.
func (p *Pipeline) SubmitUserTurn(ctx context.Context, text string, dc core.DialogueContext) string {
	logger := log.FromCtx(ctx).With().
		Str("session", dc.SessionID).
		Str("user", dc.UserID).
		Logger()

	text = strings.TrimSpace(text)
	if text == "" {
		return EmptyInputReply
	}

	s := p.session(dc.SessionID)
	dc.LastUserText = text
	dc = p.resolve(s, dc)

	effective, err := p.effectiveTone(ctx, dc)
	if err != nil {
		logger.Warn().Err(err).Msg("turn abandoned before generation")
		return Fallback(err)
	}
	dc.Tone = effective

	prompt := p.composer.Build(dc)
	prompt = p.withKnowledge(ctx, prompt, text)
	// Counting may load the encoding, so only do it when debug is on.
	if e := logger.Debug(); e.Enabled() {
		e.Str("tone", string(effective)).
			Int("directive_tokens", tokens.Count(prompt)).
			Msg("directive composed")
	}

	raw, err := p.gen.Generate(ctx, prompt, text)
	if err != nil {
		logger.Warn().Err(err).Str("kind", kindName(err)).Msg("generation failed")
		return Fallback(err)
	}
	if err := ctx.Err(); err != nil {
		logger.Warn().Err(err).Msg("turn abandoned during generation")
		return Fallback(core.NetworkFailure(err))
	}

	reply := p.rewriter.Rewrite(raw, dc)

	p.tones.Update(dc.UserID, func(core.Tone, bool) (core.Tone, bool) {
		return tone.Derive(text, effective), true
	})

	userTurn, replyTurn := s.window.AddExchange(text, reply)
	s.history.AddExchange(text, reply)
	s.advance()

	p.persist(ctx, dc, userTurn, replyTurn)

	logger.Debug().
		Str("mode", string(dc.Mode)).
		Str("emotion", string(userTurn.Emotion)).
		Str("reply_emotion", string(replyTurn.ReplyEmotion)).
		Msg("turn completed")

	return reply
}

// Context builds the DialogueContext a transport should pass for the next
// turn of the session.
func (p *Pipeline) Context(sessionID, userID string) core.DialogueContext {
	s := p.session(sessionID)
	prefs := s.preferences()

	dc := core.DialogueContext{
		SessionID: sessionID,
		UserID:    userID,
		TurnIndex: s.completed(),
		Mode:      prefs.Mode,
		Module:    prefs.Module,
		Tone:      prefs.Tone,
	}

	turns := s.window.Recent()
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Speaker == core.SpeakerAssistant {
			dc.LastAssistantText = turns[i].Text
			break
		}
	}
	return dc
}

func (p *Pipeline) Snapshot(sessionID string) memory.Snapshot {
	return p.session(sessionID).window.Snapshot()
}

func (p *Pipeline) Recent(sessionID string) []core.Turn {
	return p.session(sessionID).window.Recent()
}

func (p *Pipeline) History(sessionID string) []core.Turn {
	return p.session(sessionID).history.Recent()
}

func (p *Pipeline) Preferences(sessionID string) Preferences {
	return p.session(sessionID).preferences()
}

// Clear resets the session's window, history and turn counter along with the
// user's carried tone.
func (p *Pipeline) Clear(ctx context.Context, sessionID, userID string) error {
	p.session(sessionID).reset()
	return p.tones.Clear(ctx, userID)
}

func (p *Pipeline) SetMode(sessionID string, mode core.Mode) {
	p.session(sessionID).update(func(prefs *Preferences) { prefs.Mode = mode })
}

func (p *Pipeline) SetModule(sessionID string, module core.Module) {
	p.session(sessionID).update(func(prefs *Preferences) { prefs.Module = module })
}

// SetTone pins the session default and overrides the user's carried tone.
func (p *Pipeline) SetTone(ctx context.Context, sessionID, userID string, t core.Tone) error {
	p.session(sessionID).update(func(prefs *Preferences) { prefs.Tone = t })
	return p.tones.Set(ctx, userID, t)
}

// CurrentTone reports the tone the next turn for userID would use.
func (p *Pipeline) CurrentTone(ctx context.Context, sessionID, userID string) (core.Tone, error) {
	return p.effectiveTone(ctx, p.Context(sessionID, userID))
}

func (p *Pipeline) Start(ctx context.Context) error {
	return nil
}

// Shutdown waits for background transcript writes.
func (p *Pipeline) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolve fills the context from session preferences. An unpinned mode is
// detected from the user's line before falling back to the configured one.
func (p *Pipeline) resolve(s *session, dc core.DialogueContext) core.DialogueContext {
	dc = s.fill(dc)
	if dc.Mode == "" {
		if m, ok := intent.DetectMode(dc.LastUserText); ok {
			dc.Mode = m
		} else {
			dc.Mode = p.cfg.Mode()
		}
	}
	if dc.Module == "" {
		dc.Module = p.cfg.Module()
	}
	return dc
}

// effectiveTone prefers the user's carried tone, then the caller's tone,
// then the mode's default and finally the configured one.
func (p *Pipeline) effectiveTone(ctx context.Context, dc core.DialogueContext) (core.Tone, error) {
	stored, ok, err := p.tones.Get(ctx, dc.UserID)
	if err != nil {
		return "", err
	}
	if ok {
		return stored, nil
	}
	if dc.Tone != "" {
		return dc.Tone, nil
	}
	if t, ok := intent.DefaultTone(dc.Mode); ok {
		return t, nil
	}
	return p.cfg.Tone(), nil
}

func (p *Pipeline) withKnowledge(ctx context.Context, prompt, text string) string {
	if p.knowledge == nil {
		return prompt
	}

	tags := topic.Tokens(text)
	if len(tags) == 0 {
		return prompt
	}

	snippets, err := p.knowledge.Lookup(ctx, tags, knowledgeLimit)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("knowledge lookup failed")
		return prompt
	}
	return directive.WithReferences(prompt, snippets)
}

func (p *Pipeline) persist(ctx context.Context, dc core.DialogueContext, turns ...core.Turn) {
	if p.transcript == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	p.pending.Add(1)
	go func() {
		defer p.pending.Done()
		for _, turn := range turns {
			if err := p.transcript.AppendTurn(ctx, dc.SessionID, dc.UserID, turn); err != nil {
				log.FromCtx(ctx).Error().Err(err).Str("session", dc.SessionID).Msg("failed to save transcript turn")
				return
			}
		}
	}()
}

func (p *Pipeline) session(id string) *session {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.sessions[id]
	if !ok {
		s = &session{
			window:  memory.NewWindow(memory.WithCapacity(p.cfg.WindowSize)),
			history: memory.NewHistory(memory.WithCapacity(p.cfg.HistorySize)),
			prefs: Preferences{
				Module: p.cfg.Module(),
			},
		}
		p.sessions[id] = s
	}
	return s
}
