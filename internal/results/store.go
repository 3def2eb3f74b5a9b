package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mind-engage/mindengage-practice/internal/session"
)

var ErrNotFound = errors.New("result not found")

// SQLStore persists results in the results table. It is a session.ResultSink.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Consume stores r once; a second delivery for the same session is ignored.
func (s *SQLStore) Consume(ctx context.Context, r session.Result) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO results (session_id, test_id, user_id, score, total_questions, time_spent_seconds, forced, result_json, submitted_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (session_id) DO NOTHING`,
		r.SessionID, r.TestID, r.UserID, r.Score, r.TotalQuestions, r.TimeSpentSeconds, r.Forced, string(b), r.SubmittedAt.Unix())
	if err != nil {
		return fmt.Errorf("store result %s: %w", r.SessionID, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, sessionID string) (session.Result, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT result_json FROM results WHERE session_id=$1`, sessionID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Result{}, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return session.Result{}, err
	}
	var r session.Result
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return session.Result{}, fmt.Errorf("decode result %s: %w", sessionID, err)
	}
	return r, nil
}

type ListOpts struct {
	UserID string // "" lists every user
	TestID string
	Limit  int
	Offset int
}

// List returns results newest first.
func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]session.Result, error) {
	q := `SELECT result_json FROM results WHERE 1=1`
	args := []any{}
	if opts.UserID != "" {
		args = append(args, opts.UserID)
		q += fmt.Sprintf(" AND user_id=$%d", len(args))
	}
	if opts.TestID != "" {
		args = append(args, opts.TestID)
		q += fmt.Sprintf(" AND test_id=$%d", len(args))
	}
	q += " ORDER BY submitted_at DESC, session_id"
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	args = append(args, opts.Limit, max(opts.Offset, 0))
	q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []session.Result{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var r session.Result
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
