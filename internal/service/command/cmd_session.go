package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/tuskvoice/internal/core"
)

type ClearCommand struct {
	conv      Conversation
	formatter *ResponseFormatter
}

func NewClearCommand(conv Conversation) *ClearCommand {
	return &ClearCommand{conv: conv, formatter: NewResponseFormatter()}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Forget this conversation and the carried tone"
}

func (c *ClearCommand) Execute(ctx context.Context, ref core.SessionRef, _ []string) (string, error) {
	if err := c.conv.Clear(ctx, ref.SessionID, ref.UserID); err != nil {
		return "", fmt.Errorf("failed to clear session: %w", err)
	}
	return c.formatter.Success("Memory cleared. Fresh start."), nil
}

type MoodCommand struct {
	conv      Conversation
	formatter *ResponseFormatter
}

func NewMoodCommand(conv Conversation) *MoodCommand {
	return &MoodCommand{conv: conv, formatter: NewResponseFormatter()}
}

func (c *MoodCommand) Name() string {
	return "mood"
}

func (c *MoodCommand) Description() string {
	return "Show the emotional read of the current conversation"
}

func (c *MoodCommand) Execute(_ context.Context, ref core.SessionRef, _ []string) (string, error) {
	snap := c.conv.Snapshot(ref.SessionID)

	recent := "none yet"
	if len(snap.RecentEmotions) > 0 {
		recent = strings.Join(names(snap.RecentEmotions), " → ")
	}

	return c.formatter.Combine(
		c.formatter.Info("Mood"),
		c.formatter.Label("Dominant", string(snap.DominantEmotion)),
		c.formatter.Label("Recent", recent),
	), nil
}

type HistoryCommand struct {
	conv      Conversation
	formatter *ResponseFormatter
}

func NewHistoryCommand(conv Conversation) *HistoryCommand {
	return &HistoryCommand{conv: conv, formatter: NewResponseFormatter()}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Show recent turns with their emotion labels"
}

func (c *HistoryCommand) Execute(_ context.Context, ref core.SessionRef, _ []string) (string, error) {
	turns := c.conv.History(ref.SessionID)
	if len(turns) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("History"),
			c.formatter.Tip("Nothing here yet. Say something first"),
		), nil
	}

	items := make([]string, len(turns))
	for i, t := range turns {
		items[i] = c.formatter.Turn(t)
	}
	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("History (%d turns)", len(turns))),
		c.formatter.List(items),
	), nil
}
