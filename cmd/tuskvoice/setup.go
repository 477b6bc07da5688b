package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/tuskvoice/internal/config"
	"github.com/sandevgo/tuskvoice/internal/providers/llm"
	"github.com/sandevgo/tuskvoice/internal/service/command"
	"github.com/sandevgo/tuskvoice/internal/service/directive"
	"github.com/sandevgo/tuskvoice/internal/service/owner"
	"github.com/sandevgo/tuskvoice/internal/service/pipeline"
	"github.com/sandevgo/tuskvoice/internal/service/rewrite"
	"github.com/sandevgo/tuskvoice/internal/service/state"
	"github.com/sandevgo/tuskvoice/internal/service/tone"
	"github.com/sandevgo/tuskvoice/internal/storage/sqlite"
	"github.com/sandevgo/tuskvoice/internal/transport/cli"
	"github.com/sandevgo/tuskvoice/internal/transport/mcpserver"
	"github.com/sandevgo/tuskvoice/internal/transport/telegram"
	"github.com/sandevgo/tuskvoice/pkg/log"
	"github.com/sandevgo/tuskvoice/pkg/srv"
)

// App is the wired core every subcommand shares. Transports are added on top
// by the subcommand that needs them.
type App struct {
	AppCfg   *config.AppConfig
	Persona  *config.PersonaConfig
	Pipeline *pipeline.Pipeline
	Router   *command.Router
	Services []srv.Service
}

func NewApp(ctx context.Context) *App {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	persona := config.NewPersonaConfig(ctx)

	app := &App{AppCfg: appCfg, Persona: persona}

	// 2. Generator
	provider, err := llm.NewDynamicProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}
	globalState := state.NewGlobalState(provider)

	// 3. Optional side logs
	var opts []pipeline.Option
	if appCfg.UseSQLite() {
		db, err := initStorage(ctx, appCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize storage")
		}
		app.Services = append(app.Services, srv.NewCleanup(db.Close))

		if appCfg.EnableTranscript {
			opts = append(opts, pipeline.WithTranscript(sqlite.NewTranscriptRepo(db)))
		}
		if appCfg.EnableKnowledge {
			opts = append(opts, pipeline.WithKnowledge(sqlite.NewKnowledgeRepo(db)))
		}
	}

	// 4. Pipeline
	app.Pipeline = pipeline.New(
		persona,
		provider,
		tone.NewTracker(),
		directive.NewComposer(persona.Name),
		rewrite.New(rewrite.WithPersona(persona.Name)),
		opts...,
	)
	// Prepended so it shuts down before the database it writes to.
	app.Services = append([]srv.Service{app.Pipeline}, app.Services...)

	// 5. Slash commands
	owners := owner.New(appCfg.OwnerPassphrase)
	app.Router = command.New(command.NewCommands(app.Pipeline, appCfg, globalState, owners))

	return app
}

// Transports builds the services configured in AppConfig. stop ends the
// process when the interactive CLI exits.
func (a *App) Transports(ctx context.Context, stop context.CancelFunc) ([]srv.Service, error) {
	var services []srv.Service

	if a.AppCfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.Pipeline, a.Router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if a.AppCfg.EnableCLI {
		repl, err := a.CLI(stop)
		if err != nil {
			return nil, err
		}
		services = append(services, repl)
	}

	return services, nil
}

func (a *App) CLI(stop context.CancelFunc) (srv.Service, error) {
	repl, err := cli.NewReadLine(a.Pipeline, a.Router, a.AppCfg, a.Persona)
	if err != nil {
		return nil, err
	}
	return srv.StopOnReturn(repl, stop), nil
}

func (a *App) MCP(stop context.CancelFunc) srv.Service {
	return srv.StopOnReturn(mcpserver.New(a.Pipeline), stop)
}

// Run starts services and blocks until ctx is cancelled. Transports shut down
// first, then the pipeline, then storage.
func (a *App) Run(ctx context.Context, transports []srv.Service) {
	services := append(transports[:len(transports):len(transports)], a.Services...)

	srv.StartServices(ctx, services)
	srv.ShutdownServices(ctx, services)
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, error) {
	return sqlite.NewDB(ctx, cfg.GetDatabasePath())
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
