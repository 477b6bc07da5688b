package state

import (
	"context"

	"github.com/sandevgo/tuskvoice/pkg/log"
)

type provider interface {
	GetModel() string
	SetModel(ctx context.Context, model string) error
}

// GlobalState holds the process-wide switches slash commands may flip.
type GlobalState struct {
	provider provider
}

func NewGlobalState(
	provider provider,
) *GlobalState {
	return &GlobalState{
		provider: provider,
	}
}

func (s *GlobalState) ChangeModel(ctx context.Context, model string) error {
	if err := s.provider.SetModel(ctx, model); err != nil {
		return err
	}
	log.FromCtx(ctx).Info().Str("model", s.provider.GetModel()).Msg("generator model changed")
	return nil
}
