package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/tuskvoice/pkg/log"
	"github.com/sandevgo/tuskvoice/pkg/srv"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the persona as MCP tools over stdio",
	Long: `Runs an MCP server on stdin/stdout exposing submit_turn, snapshot and clear.
Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLoggerTo(ctx, os.Stderr)
		defer flushLog()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		app := NewApp(ctx)
		log.FromCtx(ctx).Info().Str("persona", app.Persona.Name).Msg("starting mcp server")

		app.Run(ctx, []srv.Service{app.MCP(cancel)})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
