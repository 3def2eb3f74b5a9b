package grading

import (
	"fmt"
	"reflect"
	"strings"
)

// Question kinds understood by the default grader.
const (
	KindMultipleChoice = "multiple-choice"
	KindTrueFalse      = "true-false"
	KindEssay          = "essay"
)

// Q is a minimal view of a question needed for grading.
type Q struct {
	Kind string
	Key  interface{}
}

// Verdict is the outcome of grading a single question response.
type Verdict struct {
	Correct     bool // counts toward the correct total
	Counted     bool // false removes the question from every total
	NeedsManual bool // the answer still needs a human reviewer
}

// Strategy grades a single question. answered is false when no response was recorded.
type Strategy interface {
	Grade(q Q, response interface{}, answered bool) Verdict
}

// Grader routes by question kind to the correct Strategy.
type Grader interface {
	Grade(q Q, response interface{}, answered bool) Verdict
}

// EssayPolicy decides how essay questions, which have no automated check, are scored.
type EssayPolicy string

const (
	// EssayStrict compares essays like any other kind; a free-text answer rarely matches.
	EssayStrict EssayPolicy = "strict"
	// EssayExclude drops essays from the score and from every total.
	EssayExclude EssayPolicy = "exclude"
	// EssayPendingReview counts essays as correct and reports them for manual review.
	EssayPendingReview EssayPolicy = "pending-review"
)

// ParseEssayPolicy accepts the configuration spelling of a policy. Empty means strict.
func ParseEssayPolicy(s string) (EssayPolicy, error) {
	switch p := EssayPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return EssayStrict, nil
	case EssayStrict, EssayExclude, EssayPendingReview:
		return p, nil
	default:
		return "", fmt.Errorf("unknown essay policy %q", s)
	}
}

type defaultGrader struct {
	strategies map[string]Strategy
	fallback   Strategy
}

func (g *defaultGrader) Grade(q Q, response interface{}, answered bool) Verdict {
	s, ok := g.strategies[q.Kind]
	if !ok {
		s = g.fallback
	}
	return s.Grade(q, response, answered)
}

// Engine options

type Option func(*config)

type config struct {
	Essay EssayPolicy
}

func WithEssayPolicy(p EssayPolicy) Option { return func(c *config) { c.Essay = p } }

// NewDefaultGrader installs built-in strategies. Unknown kinds are graded strictly.
func NewDefaultGrader(opts ...Option) Grader {
	cfg := &config{Essay: EssayStrict}
	for _, o := range opts {
		o(cfg)
	}
	return &defaultGrader{
		strategies: map[string]Strategy{
			KindMultipleChoice: strictStrategy{},
			KindTrueFalse:      strictStrategy{},
			KindEssay:          essayStrategy{policy: cfg.Essay},
		},
		fallback: strictStrategy{},
	}
}

// --- Strategies ---

type strictStrategy struct{}

// A nil Key means the question has no answer key; nothing matches it.
func (strictStrategy) Grade(q Q, response interface{}, answered bool) Verdict {
	return Verdict{Counted: true, Correct: answered && q.Key != nil && StrictEqual(response, q.Key)}
}

type essayStrategy struct{ policy EssayPolicy }

func (s essayStrategy) Grade(q Q, response interface{}, answered bool) Verdict {
	switch s.policy {
	case EssayExclude:
		return Verdict{}
	case EssayPendingReview:
		return Verdict{Counted: true, Correct: true, NeedsManual: true}
	default:
		return strictStrategy{}.Grade(q, response, answered)
	}
}

// StrictEqual reports whether a and b hold the same dynamic type and value.
// Values of non-comparable types are never equal.
func StrictEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
