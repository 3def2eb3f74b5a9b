package exam

type Kind string

const (
	KindMultipleChoice Kind = "multiple-choice"
	KindTrueFalse      Kind = "true-false"
	KindEssay          Kind = "essay"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Question struct {
	ID            string     `json:"id" yaml:"id"`
	Category      string     `json:"category" yaml:"category"` // verbal, numerical, logical, spatial, ...
	Kind          Kind       `json:"type" yaml:"type"`
	Prompt        string     `json:"question" yaml:"question"`
	Options       []string   `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer Answer     `json:"correct_answer" yaml:"correct_answer"`
	Explanation   string     `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Public is the question as shown to a test taker: no answer key, no explanation.
type Public struct {
	ID         string     `json:"id"`
	Category   string     `json:"category"`
	Kind       Kind       `json:"type"`
	Prompt     string     `json:"question"`
	Options    []string   `json:"options,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
}

func (q Question) Public() Public {
	return Public{
		ID:         q.ID,
		Category:   q.Category,
		Kind:       q.Kind,
		Prompt:     q.Prompt,
		Options:    append([]string(nil), q.Options...),
		Difficulty: q.Difficulty,
	}
}

// CategorySummary is one entry of the category picker.
type CategorySummary struct {
	Name      string `json:"name"`
	Questions int    `json:"questions"`
}
