package core

import "context"

// ProviderConfig describes the active generator backend. Implementations must
// be safe for concurrent use since /model may change it at any time.
type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetAPIKey() string
	GetBaseURL() string
	SetModel(model string) error
}

type GlobalState interface {
	ChangeModel(ctx context.Context, model string) error
}
