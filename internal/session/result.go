package session

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/mind-engage/mindengage-practice/internal/exam"
)

type CategoryScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percent is the rounded share of correct answers, 0 for an empty category.
func (c CategoryScore) Percent() int { return percent(c.Correct, c.Total) }

// Result is produced once per session and never changes afterwards.
type Result struct {
	SessionID        string                   `json:"session_id"`
	TestID           string                   `json:"test_id"`
	UserID           string                   `json:"user_id,omitempty"`
	Answers          map[string]exam.Answer   `json:"answers"`
	Score            int                      `json:"score"`
	TotalQuestions   int                      `json:"total_questions"`
	AnsweredCount    int                      `json:"answered_count"`
	TimeSpentSeconds int                      `json:"time_spent_seconds"`
	CategoryScores   map[string]CategoryScore `json:"category_scores"`
	Flagged          []string                 `json:"flagged,omitempty"`
	PendingReview    []string                 `json:"pending_review,omitempty"`
	Forced           bool                     `json:"forced"`
	SubmittedAt      time.Time                `json:"submitted_at"`
}

// Correct sums the correct answers across categories.
func (r Result) Correct() int {
	n := 0
	for _, c := range r.CategoryScores {
		n += c.Correct
	}
	return n
}

// Clone returns a deep copy so callers cannot reach the cached result's maps.
func (r Result) Clone() Result {
	r.Answers = maps.Clone(r.Answers)
	r.CategoryScores = maps.Clone(r.CategoryScores)
	r.Flagged = slices.Clone(r.Flagged)
	r.PendingReview = slices.Clone(r.PendingReview)
	return r
}

// Label is the results page headline for a score.
func Label(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 80:
		return "good"
	case score >= 70:
		return "fairly good"
	case score >= 60:
		return "sufficient"
	default:
		return "needs improvement"
	}
}

func Grade(score int) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	default:
		return "D"
	}
}

type InsightKind string

const (
	InsightPositive InsightKind = "positive"
	InsightNeutral  InsightKind = "neutral"
	InsightNegative InsightKind = "negative"
)

type Insight struct {
	Kind     InsightKind `json:"type"`
	Category string      `json:"category,omitempty"`
	Message  string      `json:"message"`
}

// Insights gives one overall remark plus one per weak (<50%) or strong (>=80%) category.
func Insights(r Result) []Insight {
	out := make([]Insight, 0, 1+len(r.CategoryScores))
	switch {
	case r.Score >= 80:
		out = append(out, Insight{Kind: InsightPositive, Message: "Very good performance. Keep it up."})
	case r.Score >= 60:
		out = append(out, Insight{Kind: InsightNeutral, Message: "Fairly good performance, with room to improve."})
	default:
		out = append(out, Insight{Kind: InsightNegative, Message: "Performance needs work. Practice more."})
	}

	cats := make([]string, 0, len(r.CategoryScores))
	for c := range r.CategoryScores {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		cs := r.CategoryScores[c]
		if cs.Total == 0 {
			continue
		}
		p := cs.Percent()
		switch {
		case p < 50:
			out = append(out, Insight{Kind: InsightNegative, Category: c,
				Message: fmt.Sprintf("Focus more on %s: %d%% correct", strings.ToUpper(c), p)})
		case p >= 80:
			out = append(out, Insight{Kind: InsightPositive, Category: c,
				Message: fmt.Sprintf("Very good at %s: %d%% correct", strings.ToUpper(c), p)})
		}
	}
	return out
}
