package exam

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("question not found")
	ErrInvalidQuestion = errors.New("invalid question")
)

type ListOpts struct {
	Q        string // case-insensitive substring of the prompt
	Category string // "" or "all" for every category
	Limit    int
	Offset   int
}

// Store is the question bank. QuestionSet returns the ordered, read-only set used
// for one test instance; the other methods back the admin screen.
type Store interface {
	ListQuestions(ctx context.Context, opts ListOpts) ([]Question, error)
	GetQuestion(ctx context.Context, id string) (Question, error)
	PutQuestion(ctx context.Context, q Question) (Question, error)
	DeleteQuestion(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]CategorySummary, error)
	QuestionSet(ctx context.Context, category string) ([]Question, error)
}

func allCategories(c string) bool { return c == "" || c == "all" }
