package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sandevgo/tuskvoice/internal/config"
	"github.com/sandevgo/tuskvoice/pkg/env"
	"github.com/sandevgo/tuskvoice/pkg/log"
)

type initOptions struct {
	provider      string
	model         string
	apiKey        string
	persona       string
	telegramToken string
	force         bool
}

var initOpts initOptions

var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "Write a starter .env into the runtime directory",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()
		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")

		if _, err := os.Stat(envPath); err == nil && !initOpts.force {
			return fmt.Errorf("%s already exists, use --force to overwrite", envPath)
		}

		content, err := renderEnv(runtimePath)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(runtimePath, 0755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}
		if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
			return fmt.Errorf("failed to write .env: %w", err)
		}

		logger.Info().Str("path", envPath).Msg("wrote configuration")
		logger.Info().Msg("Run 'tuskvoice chat' to talk in the terminal or 'tuskvoice start' for all transports.")
		return nil
	},
}

func renderEnv(runtimePath string) (string, error) {
	appCfg := &config.AppConfig{RuntimePath: runtimePath, Provider: initOpts.provider}
	if initOpts.model != "" {
		if err := appCfg.SetModel(initOpts.model); err != nil {
			return "", err
		}
	}
	appCfg.SetAPIKey(initOpts.apiKey)

	sections := []any{appCfg, &config.PersonaConfig{Name: initOpts.persona}}
	if initOpts.telegramToken != "" {
		appCfg.EnableTelegram = true
		sections = append(sections, &config.TelegramConfig{Token: initOpts.telegramToken})
	}
	return env.MarshalEnv(sections...)
}

func init() {
	f := initCmd.Flags()
	f.StringVar(&initOpts.provider, "provider", "", "llm provider: openai, anthropic, openrouter, ollama, custom")
	f.StringVar(&initOpts.model, "model", "", "model id, optionally prefixed with the provider")
	f.StringVar(&initOpts.apiKey, "api-key", "", "api key for the chosen provider")
	f.StringVar(&initOpts.persona, "persona", "", "persona name")
	f.StringVar(&initOpts.telegramToken, "telegram-token", "", "enable the telegram bot with this token")
	f.BoolVar(&initOpts.force, "force", false, "overwrite an existing .env")
	rootCmd.AddCommand(initCmd)
}
