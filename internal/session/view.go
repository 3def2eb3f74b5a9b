package session

import (
	"maps"

	"github.com/mind-engage/mindengage-practice/internal/exam"
)

// NavItem is one cell of the question navigator grid.
type NavItem struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	Answered bool   `json:"answered"`
	Flagged  bool   `json:"flagged"`
}

// View is a read-only snapshot for rendering. It never carries answer keys.
type View struct {
	ID               string                 `json:"id"`
	TestID           string                 `json:"test_id"`
	State            State                  `json:"state"`
	CurrentIndex     int                    `json:"current_index"`
	Current          exam.Public            `json:"current"`
	TotalQuestions   int                    `json:"total_questions"`
	AnsweredCount    int                    `json:"answered_count"`
	Answers          map[string]exam.Answer `json:"answers"`
	Flagged          []string               `json:"flagged"`
	RemainingSeconds int                    `json:"remaining_seconds"`
	DurationMinutes  int                    `json:"duration_minutes"`
	Progress         int                    `json:"progress"` // percent, (current+1)/total
	Navigator        []NavItem              `json:"navigator"`
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	nav := make([]NavItem, len(s.questions))
	for i, q := range s.questions {
		_, answered := s.answers[q.ID]
		_, flagged := s.flagged[q.ID]
		nav[i] = NavItem{Index: i, ID: q.ID, Answered: answered, Flagged: flagged}
	}
	flagged := s.flaggedInOrder()
	if flagged == nil {
		flagged = []string{}
	}
	return View{
		ID:               s.id,
		TestID:           s.testID,
		State:            s.state,
		CurrentIndex:     s.current,
		Current:          s.questions[s.current].Public(),
		TotalQuestions:   len(s.questions),
		AnsweredCount:    len(s.answers),
		Answers:          maps.Clone(s.answers),
		Flagged:          flagged,
		RemainingSeconds: s.remaining,
		DurationMinutes:  s.durationMinutes,
		Progress:         percent(s.current+1, len(s.questions)),
		Navigator:        nav,
	}
}
