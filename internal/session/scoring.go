package session

import (
	"math"

	"github.com/mind-engage/mindengage-practice/internal/exam"
	"github.com/mind-engage/mindengage-practice/internal/grading"
)

type tally struct {
	correct    int
	total      int
	categories map[string]CategoryScore
	pending    []string
}

// score walks the whole question set exactly once. A missing answer is graded
// as unanswered and never counts as correct unless the grader's policy says so.
func score(questions []exam.Question, answers map[string]exam.Answer, g grading.Grader) tally {
	t := tally{categories: make(map[string]CategoryScore)}
	for _, q := range questions {
		var response interface{}
		a, answered := answers[q.ID]
		if answered {
			response = a
		}
		gq := grading.Q{Kind: string(q.Kind)}
		if !q.CorrectAnswer.IsZero() {
			gq.Key = q.CorrectAnswer
		}
		v := g.Grade(gq, response, answered)
		if !v.Counted {
			continue
		}
		cs := t.categories[q.Category]
		cs.Total++
		t.total++
		if v.Correct {
			cs.Correct++
			t.correct++
		}
		t.categories[q.Category] = cs
		if v.NeedsManual {
			t.pending = append(t.pending, q.ID)
		}
	}
	return t
}

// percent is round(100*n/d), defined as 0 when d is 0.
func percent(n, d int) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(d)))
}
