package srv

import (
	"context"
	"errors"
	"time"

	"github.com/sandevgo/tuskvoice/pkg/log"
)

const shutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				if errors.Is(err, context.Canceled) && ctx.Err() != nil {
					return
				}
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then shuts services down in
// order. Each gets a fresh deadline since ctx is already cancelled.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	for _, service := range services {
		if err := service.Shutdown(shutdownCtx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", service)
		}
	}
}

type foreground struct {
	Service
	stop context.CancelFunc
}

// StopOnReturn wraps an interactive service so that the process context is
// cancelled once its Start returns, as when the user leaves the REPL.
func StopOnReturn(s Service, stop context.CancelFunc) Service {
	return &foreground{Service: s, stop: stop}
}

func (f *foreground) Start(ctx context.Context) error {
	defer f.stop()
	return f.Service.Start(ctx)
}

type cleanup func() error

// NewCleanup turns a release function, such as a database Close, into a
// service that only acts on shutdown.
func NewCleanup(fn func() error) Service {
	return cleanup(fn)
}

func (c cleanup) Start(context.Context) error {
	return nil
}

func (c cleanup) Shutdown(context.Context) error {
	if c == nil {
		return nil
	}
	return c()
}
