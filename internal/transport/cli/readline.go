package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/sandevgo/tuskvoice/internal/config"
	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/pipeline"
	"github.com/sandevgo/tuskvoice/internal/service/ui"
	"github.com/sandevgo/tuskvoice/pkg/conv"
	"github.com/sandevgo/tuskvoice/pkg/log"
)

const localUserID = "cli-local"

// Conversation is the slice of the pipeline the chat loop drives.
type Conversation interface {
	Context(sessionID, userID string) core.DialogueContext
	SubmitUserTurn(ctx context.Context, text string, dc core.DialogueContext) string
	Recent(sessionID string) []core.Turn
}

var _ Conversation = (*pipeline.Pipeline)(nil)

type Router interface {
	Execute(ctx context.Context, ref core.SessionRef, input string) (string, bool)
}

type ReadLine struct {
	persona string
	conv    Conversation
	router  Router
	ref     core.SessionRef
	rl      *readline.Instance
}

func NewReadLine(
	conv Conversation,
	router Router,
	appCfg *config.AppConfig,
	persona *config.PersonaConfig,
) (*ReadLine, error) {
	if err := os.MkdirAll(appCfg.GetRuntimePath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(appCfg.GetRuntimePath(), "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		persona: persona.Name,
		conv:    conv,
		router:  router,
		// Each CLI run is a new conversation; the tone carries by user.
		ref: core.SessionRef{SessionID: "cli-" + uuid.NewString(), UserID: localUserID},
		rl:  rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx).With().Str("session", r.ref.SessionID).Logger()
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		fmt.Fprintln(r.rl.Stdout(), r.Handle(ctx, line))
	}
}

// Handle routes one input line and returns the rendered output.
func (r *ReadLine) Handle(ctx context.Context, line string) string {
	if out, ok := r.router.Execute(ctx, r.ref, line); ok {
		return ui.SystemStyle.Render(conv.MarkdownToPlain([]byte(out)))
	}

	reply := r.conv.SubmitUserTurn(ctx, line, r.conv.Context(r.ref.SessionID, r.ref.UserID))
	rendered := ui.Persona(r.persona, conv.MarkdownToPlain([]byte(reply)))

	if footer := r.moodFooter(); footer != "" {
		rendered += "\n" + footer
	}
	return rendered
}

// moodFooter describes the latest exchange; it is empty when the turn failed
// and nothing was recorded.
func (r *ReadLine) moodFooter() string {
	turns := r.conv.Recent(r.ref.SessionID)
	if len(turns) < 2 {
		return ""
	}
	user, reply := turns[len(turns)-2], turns[len(turns)-1]
	if user.Speaker != core.SpeakerUser || reply.Speaker != core.SpeakerAssistant {
		return ""
	}
	return ui.Mood(user.Label(), reply.Label())
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
