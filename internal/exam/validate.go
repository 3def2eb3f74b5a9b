package exam

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Normalize trims a question, fills a missing id and checks it the way the bank
// editor does. Errors wrap ErrInvalidQuestion.
func Normalize(q Question) (Question, error) {
	q.ID = strings.TrimSpace(q.ID)
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.Category = strings.TrimSpace(q.Category)
	q.Prompt = strings.TrimSpace(q.Prompt)
	if q.Kind == "" {
		q.Kind = KindMultipleChoice
	}
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMedium
	}

	switch {
	case q.Category == "":
		return Question{}, invalid("category is required")
	case q.Prompt == "":
		return Question{}, invalid("question text is required")
	}
	switch q.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return Question{}, invalid("unknown difficulty %q", q.Difficulty)
	}

	switch q.Kind {
	case KindMultipleChoice, KindTrueFalse:
		if len(q.Options) == 0 {
			return Question{}, invalid("options are required for %s", q.Kind)
		}
		for i, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				return Question{}, invalid("option %d is empty", i)
			}
		}
		idx, ok := q.CorrectAnswer.Index()
		if !ok {
			return Question{}, invalid("correct answer must be an option index")
		}
		if idx < 0 || idx >= len(q.Options) {
			return Question{}, invalid("correct answer %d outside %d options", idx, len(q.Options))
		}
	case KindEssay:
		if len(q.Options) != 0 {
			return Question{}, invalid("essay questions take no options")
		}
		if !q.CorrectAnswer.IsZero() && !q.CorrectAnswer.IsText() {
			return Question{}, invalid("essay answer key must be text")
		}
	default:
		return Question{}, invalid("unknown question type %q", q.Kind)
	}
	return q, nil
}

// ValidateSet checks the contract a question source owes the test engine:
// a non-empty list with unique ids and non-empty option lists.
func ValidateSet(qs []Question) error {
	if len(qs) == 0 {
		return invalid("question set is empty")
	}
	seen := make(map[string]struct{}, len(qs))
	for _, q := range qs {
		if _, dup := seen[q.ID]; dup {
			return invalid("duplicate question id %q", q.ID)
		}
		seen[q.ID] = struct{}{}
		if q.Options != nil && len(q.Options) == 0 {
			return invalid("question %q has an empty option list", q.ID)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuestion, fmt.Sprintf(format, args...))
}
