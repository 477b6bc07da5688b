package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/tuskvoice/pkg/log"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the configured transports",
	Long:  `Starts every transport enabled in the environment (Telegram, CLI) on one shared pipeline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting tuskvoice")

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		app := NewApp(ctx)
		transports, err := app.Transports(ctx, cancel)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize transports")
		}
		if len(transports) == 0 {
			logger.Warn().Msg("no transports enabled, set ENABLE_CLI or ENABLE_TELEGRAM")
		}

		app.Run(ctx, transports)
		logger.Info().Msg("tuskvoice has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
