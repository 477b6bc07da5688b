package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, ref SessionRef, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, ref SessionRef, args []string) (string, error)
}
