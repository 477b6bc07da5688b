package core

import "context"

type KnowledgeLookup interface {
	Lookup(ctx context.Context, tags []string, limit int) ([]Snippet, error)
}

type TranscriptRepository interface {
	AppendTurn(ctx context.Context, sessionID, userID string, turn Turn) error
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error)
}
