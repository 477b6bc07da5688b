package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/tuskvoice/internal/core"
)

type ToneCommand struct {
	conv      Conversation
	formatter *ResponseFormatter
}

func NewToneCommand(conv Conversation) *ToneCommand {
	return &ToneCommand{conv: conv, formatter: NewResponseFormatter()}
}

func (c *ToneCommand) Name() string {
	return "tone"
}

func (c *ToneCommand) Description() string {
	return "Show or pin the reply tone"
}

func (c *ToneCommand) Execute(ctx context.Context, ref core.SessionRef, args []string) (string, error) {
	if len(args) == 0 {
		current, err := c.conv.CurrentTone(ctx, ref.SessionID, ref.UserID)
		if err != nil {
			return "", fmt.Errorf("failed to read tone: %w", err)
		}
		return c.formatter.Combine(
			c.formatter.Info("Tone"),
			c.formatter.Label("Current", string(current)),
			c.formatter.Choices(string(current), names(core.Tones)),
			c.formatter.Usage("/tone [name]"),
		), nil
	}

	t, ok := core.ParseTone(args[0])
	if !ok {
		return "", fmt.Errorf("unknown tone %q", args[0])
	}
	if err := c.conv.SetTone(ctx, ref.SessionID, ref.UserID, t); err != nil {
		return "", fmt.Errorf("failed to set tone: %w", err)
	}
	return c.formatter.Success(fmt.Sprintf("Tone set to: `%s`", t)), nil
}

type ModeCommand struct {
	conv      Conversation
	formatter *ResponseFormatter
}

func NewModeCommand(conv Conversation) *ModeCommand {
	return &ModeCommand{conv: conv, formatter: NewResponseFormatter()}
}

func (c *ModeCommand) Name() string {
	return "mode"
}

func (c *ModeCommand) Description() string {
	return "Show or change the operating mode"
}

// autoMode unpins the session mode so it is detected per message again.
const autoMode = "auto"

func (c *ModeCommand) Execute(_ context.Context, ref core.SessionRef, args []string) (string, error) {
	if len(args) == 0 {
		current := string(c.conv.Preferences(ref.SessionID).Mode)
		if current == "" {
			current = autoMode
		}
		return c.formatter.Combine(
			c.formatter.Info("Mode"),
			c.formatter.Choices(current, append([]string{autoMode}, names(core.Modes)...)),
			c.formatter.Usage("/mode [name]"),
		), nil
	}

	if strings.EqualFold(args[0], autoMode) {
		c.conv.SetMode(ref.SessionID, "")
		return c.formatter.Success("Mode set to: `auto`"), nil
	}

	m, ok := core.ParseMode(args[0])
	if !ok {
		return "", fmt.Errorf("unknown mode %q", args[0])
	}
	c.conv.SetMode(ref.SessionID, m)
	return c.formatter.Success(fmt.Sprintf("Mode set to: `%s`", m)), nil
}

type ModuleCommand struct {
	conv      Conversation
	formatter *ResponseFormatter
}

func NewModuleCommand(conv Conversation) *ModuleCommand {
	return &ModuleCommand{conv: conv, formatter: NewResponseFormatter()}
}

func (c *ModuleCommand) Name() string {
	return "module"
}

func (c *ModuleCommand) Description() string {
	return "Show or change the domain policy"
}

func (c *ModuleCommand) Execute(_ context.Context, ref core.SessionRef, args []string) (string, error) {
	if len(args) == 0 {
		current := string(c.conv.Preferences(ref.SessionID).Module)
		return c.formatter.Combine(
			c.formatter.Info("Module"),
			c.formatter.Choices(current, names(core.Modules)),
			c.formatter.Usage("/module [name]"),
		), nil
	}

	m, ok := core.ParseModule(args[0])
	if !ok {
		return "", fmt.Errorf("unknown module %q", args[0])
	}
	c.conv.SetModule(ref.SessionID, m)
	return c.formatter.Success(fmt.Sprintf("Module set to: `%s`", m)), nil
}
