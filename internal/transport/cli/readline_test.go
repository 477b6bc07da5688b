package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/tuskvoice/internal/config"
	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/command"
	"github.com/sandevgo/tuskvoice/internal/service/directive"
	"github.com/sandevgo/tuskvoice/internal/service/pipeline"
	"github.com/sandevgo/tuskvoice/internal/service/rewrite"
	"github.com/sandevgo/tuskvoice/internal/service/tone"
)

type stubGenerator struct {
	reply string
	err   error
}

func (g stubGenerator) Generate(context.Context, string, string) (string, error) {
	return g.reply, g.err
}

func newTestReadLine(gen core.Generator) *ReadLine {
	persona := &config.PersonaConfig{Name: "Tusk", WindowSize: 7, HistorySize: 20}
	p := pipeline.New(persona, gen, tone.NewTracker(), directive.NewComposer("Tusk"), rewrite.New())
	return &ReadLine{
		persona: "Tusk",
		conv:    p,
		router:  command.New(command.NewCommands(p, nil, nil, nil)),
		ref:     core.SessionRef{SessionID: "cli-test", UserID: localUserID},
	}
}

func TestReadLine_HandleReply(t *testing.T) {
	r := newTestReadLine(stubGenerator{reply: "Glad it worked out."})

	out := r.Handle(context.Background(), "so happy, it finally works")
	assert.Contains(t, out, "Tusk:")
	assert.Contains(t, out, "Glad it worked out.")
	assert.Contains(t, out, "you: positive")
}

func TestReadLine_HandleCommand(t *testing.T) {
	r := newTestReadLine(stubGenerator{reply: "unused"})

	out := r.Handle(context.Background(), "/tone")
	assert.Contains(t, out, "Tone")
	assert.NotContains(t, out, "Tusk:")
}

func TestReadLine_HandleFailureHasNoMoodFooter(t *testing.T) {
	r := newTestReadLine(stubGenerator{err: core.ErrNetworkFailure})

	out := r.Handle(context.Background(), "hello")
	assert.Contains(t, out, "Tusk:")
	assert.False(t, strings.Contains(out, "you:"))
}
