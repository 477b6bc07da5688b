package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/tuskvoice/internal/core"
	"github.com/sandevgo/tuskvoice/pkg/log"
)

// TranscriptRepo is an append-only side log of completed turns.
type TranscriptRepo struct {
	db *sql.DB
}

func NewTranscriptRepo(db *sql.DB) *TranscriptRepo {
	return &TranscriptRepo{db: db}
}

func (r *TranscriptRepo) AppendTurn(ctx context.Context, sessionID, userID string, turn core.Turn) error {
	query := `INSERT INTO turns (turn_id, session_id, user_id, speaker, content, emotion, reply_emotion, signature, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		turn.ID, sessionID, userID, string(turn.Speaker), turn.Text,
		string(turn.Emotion), string(turn.ReplyEmotion), turn.Signature,
		turn.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

// RecentTurns returns the last limit turns of the session in chronological order.
func (r *TranscriptRepo) RecentTurns(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	// Fetch the LAST 'limit' turns by ordering DESC
	query := `SELECT turn_id, speaker, content, emotion, reply_emotion, signature, created_at
		FROM turns WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var (
			t                              core.Turn
			speaker, emotion, replyEmotion string
			created                        int64
			signature                      sql.NullString
		)
		if err := rows.Scan(&t.ID, &speaker, &t.Text, &emotion, &replyEmotion, &signature, &created); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		t.Speaker = core.Speaker(speaker)
		t.Emotion = core.Emotion(emotion)
		t.ReplyEmotion = core.ReplyEmotion(replyEmotion)
		t.Signature = signature.String
		t.Timestamp = time.Unix(0, created)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest -> Oldest back to Oldest -> Newest.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Msg("loaded transcript turns")
	return turns, nil
}
