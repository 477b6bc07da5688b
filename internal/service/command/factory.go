package command

import (
	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/internal/service/owner"
)

// NewCommands builds the slash commands. /model needs cfg and state, /owner
// needs owners; each is left out when its dependencies are nil.
func NewCommands(
	conv Conversation,
	cfg core.ProviderConfig,
	state core.GlobalState,
	owners *owner.Registry,
) []core.Command {
	commands := []core.Command{
		NewClearCommand(conv),
		NewMoodCommand(conv),
		NewHistoryCommand(conv),
		NewToneCommand(conv),
		NewModeCommand(conv),
		NewModuleCommand(conv),
	}
	if cfg != nil && state != nil {
		commands = append(commands, NewModelCommand(cfg, state, owners))
	}
	if owners != nil {
		commands = append(commands, NewOwnerCommand(owners))
	}
	return commands
}
