package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/tuskvoice/internal/config"
	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/directive"
	"github.com/sandevgo/tuskvoice/internal/service/owner"
	"github.com/sandevgo/tuskvoice/internal/service/pipeline"
	"github.com/sandevgo/tuskvoice/internal/service/rewrite"
	"github.com/sandevgo/tuskvoice/internal/service/tone"
)

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, _, userText string) (string, error) {
	return "You said: " + userText, nil
}

type fakeState struct {
	cfg *config.AppConfig
	err error
}

func (s *fakeState) ChangeModel(_ context.Context, model string) error {
	if s.err != nil {
		return s.err
	}
	return s.cfg.SetModel(model)
}

var ref = core.SessionRef{SessionID: "s1", UserID: "u1"}

func newTestRouter(t *testing.T) (*Router, *pipeline.Pipeline, *fakeState) {
	t.Helper()
	return newTestRouterWithOwner(t, "")
}

func newTestRouterWithOwner(t *testing.T, passphrase string) (*Router, *pipeline.Pipeline, *fakeState) {
	t.Helper()
	persona := &config.PersonaConfig{Name: "Tusk", WindowSize: 7, HistorySize: 20, DefaultTone: "warm"}
	p := pipeline.New(persona, echoGenerator{}, tone.NewTracker(), directive.NewComposer("Tusk"), rewrite.New())

	appCfg := &config.AppConfig{Provider: "openrouter", Model: "m1"}
	state := &fakeState{cfg: appCfg}
	return New(NewCommands(p, appCfg, state, owner.New(passphrase))), p, state
}

func TestRouter_NotACommand(t *testing.T) {
	r, _, _ := newTestRouter(t)
	out, handled := r.Execute(context.Background(), ref, "hello there")
	assert.False(t, handled)
	assert.Empty(t, out)
}

func TestRouter_UnknownCommand(t *testing.T) {
	r, _, _ := newTestRouter(t)
	out, handled := r.Execute(context.Background(), ref, "/dance now")
	assert.True(t, handled)
	assert.Contains(t, out, "unknown command: /dance")
}

func TestRouter_Help(t *testing.T) {
	r, _, _ := newTestRouter(t)
	out, handled := r.Execute(context.Background(), ref, "/help")
	require.True(t, handled)
	for _, name := range []string{"/clear", "/mood", "/history", "/tone", "/mode", "/module", "/model", "/owner"} {
		assert.Contains(t, out, name)
	}

	cmds := r.ListCommands()
	require.Len(t, cmds, 8)
	assert.Equal(t, "clear", cmds[0].Name())
}

func TestRouter_BotSuffix(t *testing.T) {
	r, _, _ := newTestRouter(t)
	out, handled := r.Execute(context.Background(), ref, "/mood@tusk_bot")
	assert.True(t, handled)
	assert.Contains(t, out, "Mood")
}

func TestToneCommand(t *testing.T) {
	ctx := context.Background()
	r, p, _ := newTestRouter(t)

	out, _ := r.Execute(ctx, ref, "/tone")
	assert.Contains(t, out, "`warm` (current)")

	out, _ = r.Execute(ctx, ref, "/tone Playful")
	assert.Contains(t, out, "Tone set to: `playful`")

	current, err := p.CurrentTone(ctx, "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, core.TonePlayful, current)

	out, _ = r.Execute(ctx, ref, "/tone grumpy")
	assert.Contains(t, out, "Command Error")
	assert.Contains(t, out, `unknown tone "grumpy"`)
}

func TestModeAndModuleCommands(t *testing.T) {
	ctx := context.Background()
	r, p, _ := newTestRouter(t)

	out, _ := r.Execute(ctx, ref, "/mode")
	assert.Contains(t, out, "`auto` (current)")
	assert.Contains(t, out, "`context`")

	_, _ = r.Execute(ctx, ref, "/mode code")
	_, _ = r.Execute(ctx, ref, "/module finance")

	prefs := p.Preferences("s1")
	assert.Equal(t, core.ModeCode, prefs.Mode)
	assert.Equal(t, core.ModuleFinance, prefs.Module)

	out, _ = r.Execute(ctx, ref, "/module")
	assert.Contains(t, out, "`finance` (current)")

	out, _ = r.Execute(ctx, ref, "/module astrology")
	assert.Contains(t, out, `unknown module "astrology"`)

	out, _ = r.Execute(ctx, ref, "/mode AUTO")
	assert.Contains(t, out, "Mode set to: `auto`")
	assert.Empty(t, p.Preferences("s1").Mode)
}

func TestConversationCommands(t *testing.T) {
	ctx := context.Background()
	r, p, _ := newTestRouter(t)

	out, _ := r.Execute(ctx, ref, "/history")
	assert.Contains(t, out, "Nothing here yet")

	p.SubmitUserTurn(ctx, "happy, that was great help with the parser", p.Context("s1", "u1"))

	out, _ = r.Execute(ctx, ref, "/mood")
	assert.Contains(t, out, "`positive`")

	out, _ = r.Execute(ctx, ref, "/history")
	assert.Contains(t, out, "History (2 turns)")
	assert.Contains(t, out, "**user** (positive) happy, that was great help with the parser")
	assert.Contains(t, out, "**assistant**")

	out, _ = r.Execute(ctx, ref, "/clear")
	assert.Contains(t, out, "Memory cleared")
	assert.Empty(t, p.History("s1"))
}

func TestModelCommand(t *testing.T) {
	ctx := context.Background()
	r, _, state := newTestRouter(t)

	out, _ := r.Execute(ctx, ref, "/model")
	assert.Contains(t, out, "**Provider**  ›  `openrouter`")
	assert.Contains(t, out, "**Model**  ›  `m1`")

	out, _ = r.Execute(ctx, ref, "/model anthropic/claude-3-5-haiku-latest")
	assert.Contains(t, out, "Model changed to: `anthropic/claude-3-5-haiku-latest`")
	assert.Contains(t, out, "**Previous**  ›  `openrouter/m1`")

	out, _ = r.Execute(ctx, ref, "/model a b")
	assert.Contains(t, out, "expected one model name, got 2")

	state.err = errors.New("provider unavailable")
	out, _ = r.Execute(ctx, ref, "/model gpt-4o")
	assert.True(t, strings.Contains(out, "failed to set model: provider unavailable"))
}

func TestOwnerCommand(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newTestRouterWithOwner(t, "OLIVIA-14")
	other := core.SessionRef{SessionID: "s2", UserID: "u2"}

	out, _ := r.Execute(ctx, ref, "/owner")
	assert.Contains(t, out, "**Status**  ›  `locked`")

	out, _ = r.Execute(ctx, ref, "/model gpt-4o")
	assert.Contains(t, out, "owner mode required")

	out, _ = r.Execute(ctx, ref, "/owner nope")
	assert.Contains(t, out, "wrong passphrase")

	out, _ = r.Execute(ctx, ref, "/owner olivia-14")
	assert.Contains(t, out, "Owner mode enabled.")

	out, _ = r.Execute(ctx, ref, "/owner")
	assert.Contains(t, out, "unlocked since")

	out, _ = r.Execute(ctx, ref, "/model gpt-4o")
	assert.Contains(t, out, "Model changed to: `openrouter/gpt-4o`")

	out, _ = r.Execute(ctx, other, "/model gpt-4o-mini")
	assert.Contains(t, out, "owner mode required", "unlock does not carry to other users")

	out, _ = r.Execute(ctx, ref, "/owner off")
	assert.Contains(t, out, "Owner mode disabled.")
	out, _ = r.Execute(ctx, ref, "/model gpt-4o-mini")
	assert.Contains(t, out, "owner mode required")
}

func TestOwnerCommand_NoPassphrase(t *testing.T) {
	r, _, _ := newTestRouter(t)
	out, _ := r.Execute(context.Background(), ref, "/owner")
	assert.Contains(t, out, "No passphrase is configured")
}

func TestFormatter_TurnPreview(t *testing.T) {
	f := NewResponseFormatter()
	long := core.Turn{Speaker: core.SpeakerUser, Emotion: core.EmotionNeutral, Text: strings.Repeat("word ", 40)}

	got := f.Turn(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.True(t, strings.HasPrefix(got, "**user** (neutral) word word"))
}
