package knowledge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/tuskvoice/internal/core"
)

// one token per word keeps expectations independent of the encoding.
func wordChunker(max int) *Chunker {
	c := NewChunker(max)
	c.count = func(s string) int { return len(strings.Fields(s)) }
	return c
}

func TestChunker_Split(t *testing.T) {
	tests := []struct {
		name string
		max  int
		text string
		want []string
	}{
		{"empty", 5, "  \n\t ", nil},
		{"single sentence", 5, "Hello world.", []string{"Hello world."}},
		{"sentences packed", 5, "Hello world. How are you?", []string{"Hello world. How are you?"}},
		{"split at limit", 3, "First sentence here. Second one.", []string{"First sentence here.", "Second one."}},
		{"paragraphs never merge", 10, "One.\n\nTwo.", []string{"One.", "Two."}},
		{"soft wraps joined", 10, "A line\nthat wraps.", []string{"A line that wraps."}},
		{"decimal stays inline", 10, "Pi is 3.14 roughly.", []string{"Pi is 3.14 roughly."}},
		{"long sentence cut on words", 2, "a b c d e", []string{"a b", "c d", "e"}},
		{"cjk sentences", 1, "你好。再见。", []string{"你好。", "再见。"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordChunker(tt.max).Split(tt.text))
		})
	}
}

func TestNewChunker_Default(t *testing.T) {
	assert.Equal(t, DefaultMaxTokens, NewChunker(0).MaxTokens)
}

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, core.TuskUserAgent, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body><h1>Sleep</h1><p>Keep a regular schedule.</p></body></html>"))
		case "/plain":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("plain <b>text</b>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher()
	ctx := context.Background()

	text, err := f.Fetch(ctx, srv.URL+"/page")
	require.NoError(t, err)
	assert.Contains(t, text, "Keep a regular schedule.")
	assert.NotContains(t, text, "<p>")

	text, err = f.Fetch(ctx, srv.URL+"/plain")
	require.NoError(t, err)
	assert.Equal(t, "plain <b>text</b>", text)

	_, err = f.Fetch(ctx, srv.URL+"/missing")
	assert.ErrorContains(t, err, "status 404")
}

type memoryStore struct {
	notes map[string][]string
}

func (m *memoryStore) AddSnippet(_ context.Context, tag, content string) (core.Snippet, error) {
	m.notes[tag] = append(m.notes[tag], content)
	return core.Snippet{ID: int64(len(m.notes[tag])), Tag: tag, Content: content}, nil
}

func TestImporter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("Drink water.\n\nStretch every hour."), 0o600))

	store := &memoryStore{notes: map[string][]string{}}
	imp := NewImporter(store, NewFetcher(), wordChunker(20))

	n, err := imp.Import(context.Background(), "wellness", path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"Drink water.", "Stretch every hour."}, store.notes["wellness"])
}

func TestImporter_MissingFile(t *testing.T) {
	imp := NewImporter(&memoryStore{notes: map[string][]string{}}, NewFetcher(), wordChunker(20))
	_, err := imp.Import(context.Background(), "x", filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
