package llm

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/pkg/log"
)

type active struct {
	gen      core.Generator
	provider string
	model    string
}

// DynamicProvider lets /model swap the backend while turns are in flight.
// A turn keeps the generator it started with.
type DynamicProvider struct {
	config  core.ProviderConfig
	current atomic.Pointer[active]
	swap    sync.Mutex
}

func NewDynamicProvider(
	ctx context.Context,
	config core.ProviderConfig,
) (*DynamicProvider, error) {
	d := &DynamicProvider{
		config: config,
	}

	gen, err := NewProvider(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial provider: %w", err)
	}

	d.current.Store(&active{gen: gen, provider: config.GetProvider(), model: config.GetModel()})
	return d, nil
}

func (d *DynamicProvider) Generate(ctx context.Context, directive, userText string) (string, error) {
	return d.current.Load().gen.Generate(ctx, directive, userText)
}

// GetModel returns the "provider/model" currently serving.
func (d *DynamicProvider) GetModel() string {
	a := d.current.Load()
	return a.provider + "/" + a.model
}

// SetModel builds a generator for model and switches to it. On failure the
// config is restored and the previous generator keeps serving.
func (d *DynamicProvider) SetModel(ctx context.Context, model string) error {
	d.swap.Lock()
	defer d.swap.Unlock()

	prev := d.current.Load()

	if err := d.config.SetModel(model); err != nil {
		return err
	}

	gen, err := NewProvider(ctx, d.config)
	if err != nil {
		_ = d.config.SetModel(prev.provider + "/" + prev.model)
		return fmt.Errorf("failed to create provider: %w", err)
	}

	next := &active{gen: gen, provider: d.config.GetProvider(), model: d.config.GetModel()}
	d.current.Store(next)

	log.FromCtx(ctx).Debug().
		Str("from", prev.provider+"/"+prev.model).
		Str("to", next.provider+"/"+next.model).
		Msg("generator swapped")
	return nil
}
