// Package knowledge turns documents into tagged reference notes for the
// knowledge store.
package knowledge

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/pkg/log"
)

type SnippetStore interface {
	AddSnippet(ctx context.Context, tag, content string) (core.Snippet, error)
}

type Importer struct {
	store   SnippetStore
	fetcher *Fetcher
	chunker *Chunker
}

func NewImporter(store SnippetStore, fetcher *Fetcher, chunker *Chunker) *Importer {
	return &Importer{store: store, fetcher: fetcher, chunker: chunker}
}

// Import reads source, an http(s) url or a local file, splits it into notes
// and stores each under tag. It returns the number of notes offered to the
// store; duplicates are ignored there.
func (i *Importer) Import(ctx context.Context, tag, source string) (int, error) {
	text, err := i.read(ctx, source)
	if err != nil {
		return 0, err
	}

	notes := i.chunker.Split(text)
	for n, note := range notes {
		if _, err := i.store.AddSnippet(ctx, tag, note); err != nil {
			return n, fmt.Errorf("failed to store note %d: %w", n, err)
		}
	}

	log.FromCtx(ctx).Debug().
		Str("tag", tag).
		Str("source", source).
		Int("notes", len(notes)).
		Msg("imported knowledge")
	return len(notes), nil
}

func (i *Importer) read(ctx context.Context, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return i.fetcher.Fetch(ctx, source)
	}

	b, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return string(b), nil
}
