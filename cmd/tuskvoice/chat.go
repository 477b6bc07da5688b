package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/tuskvoice/pkg/log"
	"github.com/sandevgo/tuskvoice/pkg/srv"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the persona in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		app := NewApp(ctx)
		repl, err := app.CLI(cancel)
		if err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("failed to start chat")
			return err
		}

		app.Run(ctx, []srv.Service{repl})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
