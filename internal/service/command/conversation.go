package command

import (
	"context"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/memory"
	"github.com/sandevgo/tuskvoice/internal/service/pipeline"
)

// Conversation is the part of the pipeline the commands drive.
type Conversation interface {
	Clear(ctx context.Context, sessionID, userID string) error
	Snapshot(sessionID string) memory.Snapshot
	History(sessionID string) []core.Turn
	Preferences(sessionID string) pipeline.Preferences
	SetMode(sessionID string, mode core.Mode)
	SetModule(sessionID string, module core.Module)
	SetTone(ctx context.Context, sessionID, userID string, t core.Tone) error
	CurrentTone(ctx context.Context, sessionID, userID string) (core.Tone, error)
}
