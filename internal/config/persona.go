package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/pkg/log"
)

type PersonaConfig struct {
	Name          string `env:"PERSONA_NAME" envDefault:"Tusk"`
	WindowSize    int    `env:"MEMORY_WINDOW_SIZE" envDefault:"7"`
	HistorySize   int    `env:"HISTORY_SIZE" envDefault:"20"`
	DefaultMode   string `env:"DEFAULT_MODE" envDefault:"public"`
	DefaultModule string `env:"DEFAULT_MODULE" envDefault:"core"`
	DefaultTone   string `env:"DEFAULT_TONE" envDefault:"warm"`
}

func NewPersonaConfig(ctx context.Context) *PersonaConfig {
	c := &PersonaConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Persona config")
	}
	return c
}

func (c *PersonaConfig) Mode() core.Mode {
	if m, ok := core.ParseMode(c.DefaultMode); ok {
		return m
	}
	return core.ModePublic
}

func (c *PersonaConfig) Module() core.Module {
	if m, ok := core.ParseModule(c.DefaultModule); ok {
		return m
	}
	return core.ModuleCore
}

func (c *PersonaConfig) Tone() core.Tone {
	if t, ok := core.ParseTone(c.DefaultTone); ok {
		return t
	}
	return core.ToneWarm
}
