package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sandevgo/tuskvoice/internal/core"
)

// KnowledgeRepo is a tag indexed store of reference snippets.
type KnowledgeRepo struct {
	db *sql.DB
}

func NewKnowledgeRepo(db *sql.DB) *KnowledgeRepo {
	return &KnowledgeRepo{db: db}
}

// AddSnippet stores content under tag. Adding the same pair twice is a no-op
// that returns the existing row.
func (r *KnowledgeRepo) AddSnippet(ctx context.Context, tag, content string) (core.Snippet, error) {
	tag = normalizeTag(tag)
	content = strings.TrimSpace(content)
	if tag == "" || content == "" {
		return core.Snippet{}, fmt.Errorf("tag and content are required")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snippets (tag, content) VALUES (?, ?) ON CONFLICT (tag, content) DO NOTHING`,
		tag, content,
	)
	if err != nil {
		return core.Snippet{}, fmt.Errorf("failed to insert snippet: %w", err)
	}

	s := core.Snippet{Tag: tag, Content: content}
	err = r.db.QueryRowContext(ctx,
		`SELECT id FROM snippets WHERE tag = ? AND content = ?`, tag, content,
	).Scan(&s.ID)
	if err != nil {
		return core.Snippet{}, fmt.Errorf("failed to load snippet id: %w", err)
	}
	return s, nil
}

// Lookup returns up to limit distinct snippets stored under any of tags,
// oldest first.
func (r *KnowledgeRepo) Lookup(ctx context.Context, tags []string, limit int) ([]core.Snippet, error) {
	if len(tags) == 0 || limit <= 0 {
		return nil, nil
	}

	args := make([]any, 0, len(tags)+1)
	for _, t := range tags {
		args = append(args, normalizeTag(t))
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT MIN(id), tag, content
		FROM snippets
		WHERE tag IN (%s)
		GROUP BY content
		ORDER BY MIN(id)
		LIMIT ?`, placeholders(len(tags)))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snippets: %w", err)
	}
	defer rows.Close()

	var snippets []core.Snippet
	for rows.Next() {
		var s core.Snippet
		if err := rows.Scan(&s.ID, &s.Tag, &s.Content); err != nil {
			return nil, fmt.Errorf("failed to scan snippet: %w", err)
		}
		snippets = append(snippets, s)
	}
	return snippets, rows.Err()
}

func (r *KnowledgeRepo) ListTags(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag, COUNT(*) FROM snippets GROUP BY tag ORDER BY tag`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[string]int)
	for rows.Next() {
		var (
			tag   string
			count int
		)
		if err := rows.Scan(&tag, &count); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags[tag] = count
	}
	return tags, rows.Err()
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
