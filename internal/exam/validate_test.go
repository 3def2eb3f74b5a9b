package exam

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	q, err := Normalize(Question{Category: " verbal ", Prompt: " p ", Options: []string{"a", "b"}, CorrectAnswer: IndexAnswer(1)})
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID, "missing id is generated")
	assert.Equal(t, "verbal", q.Category)
	assert.Equal(t, KindMultipleChoice, q.Kind)
	assert.Equal(t, DifficultyMedium, q.Difficulty)

	cases := map[string]Question{
		"no category":      {Prompt: "p", Options: []string{"a"}},
		"no prompt":        {Category: "c", Options: []string{"a"}},
		"no options":       {Category: "c", Prompt: "p"},
		"blank option":     {Category: "c", Prompt: "p", Options: []string{"a", " "}},
		"text key":         {Category: "c", Prompt: "p", Options: []string{"a"}, CorrectAnswer: TextAnswer("a")},
		"key out of range": {Category: "c", Prompt: "p", Options: []string{"a"}, CorrectAnswer: IndexAnswer(1)},
		"bad difficulty":   {Category: "c", Prompt: "p", Options: []string{"a"}, Difficulty: "extreme"},
		"bad kind":         {Category: "c", Prompt: "p", Kind: "matching"},
		"essay options":    {Category: "c", Prompt: "p", Kind: KindEssay, Options: []string{"a"}},
		"essay index key":  {Category: "c", Prompt: "p", Kind: KindEssay, CorrectAnswer: IndexAnswer(0)},
	}
	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(q)
			assert.True(t, errors.Is(err, ErrInvalidQuestion), "got %v", err)
		})
	}
}

func TestNormalize_EssayWithoutKey(t *testing.T) {
	q, err := Normalize(Question{Category: "verbal", Kind: KindEssay, Prompt: "Explain"})
	require.NoError(t, err)
	assert.True(t, q.CorrectAnswer.IsZero())
}

func TestValidateSet(t *testing.T) {
	assert.Error(t, ValidateSet(nil))
	assert.Error(t, ValidateSet([]Question{mcq("1", "v", 0), mcq("1", "v", 0)}))
	assert.Error(t, ValidateSet([]Question{{ID: "1", Options: []string{}}}))
	assert.NoError(t, ValidateSet([]Question{mcq("1", "v", 0), mcq("2", "v", 0)}))
}

func TestLoadSeed_Embedded(t *testing.T) {
	qs, err := LoadSeed("")
	require.NoError(t, err)
	require.Len(t, qs, 7)
	assert.Equal(t, "verbal", qs[0].Category)
	assert.Equal(t, IndexAnswer(1), qs[0].CorrectAnswer)
	for _, q := range qs {
		_, err := Normalize(q)
		assert.NoError(t, err, "seed question %s", q.ID)
	}

	s := NewInMemoryStore()
	n, err := SeedIfEmpty(context.Background(), s, qs)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = SeedIfEmpty(context.Background(), s, qs)
	require.NoError(t, err)
	assert.Zero(t, n, "non-empty bank is left alone")
}
