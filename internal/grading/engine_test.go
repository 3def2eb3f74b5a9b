package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type choice struct{ n int }

func TestStrictEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b interface{}
		want bool
	}{
		{"same int", 1, 1, true},
		{"different int", 1, 0, false},
		{"int vs string", 1, "1", false},
		{"same struct", choice{2}, choice{2}, true},
		{"both nil", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"slices never equal", []int{1}, []int{1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StrictEqual(tc.a, tc.b))
		})
	}
}

func TestDefaultGrader_MultipleChoice(t *testing.T) {
	g := NewDefaultGrader()
	q := Q{Kind: KindMultipleChoice, Key: 1}

	assert.Equal(t, Verdict{Counted: true, Correct: true}, g.Grade(q, 1, true))
	assert.Equal(t, Verdict{Counted: true}, g.Grade(q, 0, true))
	assert.Equal(t, Verdict{Counted: true}, g.Grade(q, nil, false), "unanswered is incorrect")
}

func TestDefaultGrader_UnknownKindIsStrict(t *testing.T) {
	g := NewDefaultGrader()
	v := g.Grade(Q{Kind: "matching", Key: "x"}, "x", true)
	assert.True(t, v.Correct)
	assert.True(t, v.Counted)
}

func TestDefaultGrader_EssayPolicies(t *testing.T) {
	q := Q{Kind: KindEssay, Key: "model answer"}

	strict := NewDefaultGrader()
	assert.Equal(t, Verdict{Counted: true}, strict.Grade(q, "my essay", true))

	exclude := NewDefaultGrader(WithEssayPolicy(EssayExclude))
	assert.False(t, exclude.Grade(q, "my essay", true).Counted)

	pending := NewDefaultGrader(WithEssayPolicy(EssayPendingReview))
	v := pending.Grade(q, nil, false)
	assert.True(t, v.Counted)
	assert.True(t, v.Correct)
	assert.True(t, v.NeedsManual)
}

func TestDefaultGrader_MissingKeyNeverMatches(t *testing.T) {
	essay := Q{Kind: KindEssay}
	assert.Equal(t, Verdict{Counted: true}, NewDefaultGrader().Grade(essay, 0, true))
	assert.Equal(t, Verdict{Counted: true}, NewDefaultGrader().Grade(essay, nil, true))
	assert.Equal(t, Verdict{Counted: true}, NewDefaultGrader().Grade(Q{Kind: KindMultipleChoice}, nil, true))
}

func TestParseEssayPolicy(t *testing.T) {
	p, err := ParseEssayPolicy("")
	require.NoError(t, err)
	assert.Equal(t, EssayStrict, p)

	p, err = ParseEssayPolicy(" Pending-Review ")
	require.NoError(t, err)
	assert.Equal(t, EssayPendingReview, p)

	_, err = ParseEssayPolicy("lenient")
	assert.Error(t, err)
}
