package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/owner"
)

type ModelCommand struct {
	cfg       core.ProviderConfig
	state     core.GlobalState
	owners    *owner.Registry
	formatter *ResponseFormatter
}

// NewModelCommand builds /model. A non-nil owners registry restricts model
// changes to users in owner mode.
func NewModelCommand(
	cfg core.ProviderConfig,
	state core.GlobalState,
	owners *owner.Registry,
) *ModelCommand {
	return &ModelCommand{
		cfg:       cfg,
		state:     state,
		owners:    owners,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModelCommand) Name() string {
	return "model"
}

func (c *ModelCommand) Description() string {
	return "Show or change the generator model"
}

func (c *ModelCommand) Execute(ctx context.Context, ref core.SessionRef, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Current Model"),
			c.formatter.Label("Provider", c.cfg.GetProvider()),
			c.formatter.Label("Model", c.cfg.GetModel()),
			c.formatter.Usage("/model [provider/]model"),
			c.formatter.List([]string{
				"`/model gpt-4o-mini`",
				"`/model anthropic/claude-3-5-haiku-latest`",
				"`/model openrouter/openai/gpt-4o`",
			}),
		), nil
	}

	if len(args) > 1 {
		return "", fmt.Errorf("expected one model name, got %d", len(args))
	}
	if c.owners != nil && !c.owners.Enabled(ref.UserID) {
		return "", errOwnerRequired
	}

	prev := c.current()
	if err := c.state.ChangeModel(ctx, args[0]); err != nil {
		return "", fmt.Errorf("failed to set model: %w", err)
	}

	return c.formatter.Combine(
		c.formatter.Success(fmt.Sprintf("Model changed to: `%s`", c.current())),
		c.formatter.Label("Previous", prev),
	), nil
}

func (c *ModelCommand) current() string {
	return c.cfg.GetProvider() + "/" + c.cfg.GetModel()
}
