package exam

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

const questionCols = `id,category,kind,prompt,options_json,answer_json,explanation,difficulty`

func (s *SQLStore) PutQuestion(ctx context.Context, q Question) (Question, error) {
	q, err := Normalize(q)
	if err != nil {
		return Question{}, err
	}
	oj, err := json.Marshal(q.Options)
	if err != nil {
		return Question{}, err
	}
	aj, err := json.Marshal(q.CorrectAnswer)
	if err != nil {
		return Question{}, err
	}
	// new rows go to the end of the set; updates keep their position
	_, err = s.db.ExecContext(ctx, `INSERT INTO questions (`+questionCols+`,position,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,(SELECT COALESCE(MAX(position),0)+1 FROM questions),$9)
		ON CONFLICT (id) DO UPDATE SET category=EXCLUDED.category, kind=EXCLUDED.kind, prompt=EXCLUDED.prompt,
			options_json=EXCLUDED.options_json, answer_json=EXCLUDED.answer_json,
			explanation=EXCLUDED.explanation, difficulty=EXCLUDED.difficulty`,
		q.ID, q.Category, string(q.Kind), q.Prompt, string(oj), string(aj), q.Explanation, string(q.Difficulty), time.Now().Unix())
	if err != nil {
		return Question{}, fmt.Errorf("put question: %w", err)
	}
	return q, nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, id string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+questionCols+` FROM questions WHERE id=$1`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Question{}, ErrNotFound
	}
	return q, err
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) ListQuestions(ctx context.Context, opts ListOpts) ([]Question, error) {
	var (
		where []string
		args  []any
	)
	if !allCategories(opts.Category) {
		args = append(args, opts.Category)
		where = append(where, fmt.Sprintf("category=$%d", len(args)))
	}
	if needle := strings.TrimSpace(opts.Q); needle != "" {
		args = append(args, "%"+strings.ToLower(needle)+"%")
		where = append(where, fmt.Sprintf("LOWER(prompt) LIKE $%d", len(args)))
	}
	q := `SELECT ` + questionCols + ` FROM questions`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY position`
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
		if opts.Offset > 0 {
			args = append(args, opts.Offset)
			q += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Question{}
	for rows.Next() {
		qq, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, qq)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if opts.Limit <= 0 && opts.Offset > 0 {
		out = page(out, opts.Offset, 0)
	}
	return out, nil
}

func (s *SQLStore) Categories(ctx context.Context) ([]CategorySummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM questions GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CategorySummary{}
	for rows.Next() {
		var c CategorySummary
		if err := rows.Scan(&c.Name, &c.Questions); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) QuestionSet(ctx context.Context, category string) ([]Question, error) {
	if allCategories(category) {
		return []Question{}, nil
	}
	return s.ListQuestions(ctx, ListOpts{Category: category})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(r rowScanner) (Question, error) {
	var (
		q                  Question
		kind, diff, oj, aj string
	)
	if err := r.Scan(&q.ID, &q.Category, &kind, &q.Prompt, &oj, &aj, &q.Explanation, &diff); err != nil {
		return Question{}, err
	}
	q.Kind, q.Difficulty = Kind(kind), Difficulty(diff)
	if err := json.Unmarshal([]byte(oj), &q.Options); err != nil {
		return Question{}, fmt.Errorf("question %s options: %w", q.ID, err)
	}
	if len(q.Options) == 0 {
		q.Options = nil
	}
	if err := json.Unmarshal([]byte(aj), &q.CorrectAnswer); err != nil {
		return Question{}, fmt.Errorf("question %s answer: %w", q.ID, err)
	}
	return q, nil
}
