package command

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/owner"
	"github.com/sandevgo/tuskvoice/pkg/log"
)

var errOwnerRequired = errors.New("owner mode required, unlock it with /owner <passphrase>")

type OwnerCommand struct {
	owners    *owner.Registry
	formatter *ResponseFormatter
}

func NewOwnerCommand(owners *owner.Registry) *OwnerCommand {
	return &OwnerCommand{owners: owners, formatter: NewResponseFormatter()}
}

func (c *OwnerCommand) Name() string {
	return "owner"
}

func (c *OwnerCommand) Description() string {
	return "Unlock or lock owner mode"
}

func (c *OwnerCommand) Execute(ctx context.Context, ref core.SessionRef, args []string) (string, error) {
	logger := log.FromCtx(ctx)

	if len(args) == 0 {
		return c.status(ref.UserID), nil
	}

	if len(args) == 1 && strings.EqualFold(args[0], "off") {
		c.owners.Lock(ref.UserID)
		logger.Info().Str("user", ref.UserID).Msg("owner mode disabled")
		return c.formatter.Success("Owner mode disabled."), nil
	}

	if !c.owners.Unlock(ref.UserID, strings.Join(args, " ")) {
		logger.Warn().Str("user", ref.UserID).Msg("owner passphrase rejected")
		return "", errors.New("wrong passphrase")
	}
	logger.Info().Str("user", ref.UserID).Msg("owner mode enabled")
	return c.formatter.Success("Owner mode enabled."), nil
}

func (c *OwnerCommand) status(userID string) string {
	if !c.owners.Required() {
		return c.formatter.Combine(
			c.formatter.Info("Owner Mode"),
			c.formatter.Tip("No passphrase is configured, so everyone is treated as the owner"),
		)
	}

	state := "locked"
	if at, ok := c.owners.Since(userID); ok {
		state = "unlocked since " + at.Format(time.RFC3339)
	}
	return c.formatter.Combine(
		c.formatter.Info("Owner Mode"),
		c.formatter.Label("Status", state),
		c.formatter.Usage("/owner <passphrase> | /owner off"),
	)
}
