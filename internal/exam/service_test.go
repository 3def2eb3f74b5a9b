package exam

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcq(id, category string, correct int) Question {
	return Question{
		ID:            id,
		Category:      category,
		Kind:          KindMultipleChoice,
		Prompt:        "question " + id,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: IndexAnswer(correct),
		Difficulty:    DifficultyEasy,
	}
}

// storeContract runs the same behaviour checks against every Store implementation.
func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	for _, q := range []Question{mcq("1", "verbal", 1), mcq("2", "numerical", 0), mcq("3", "verbal", 3)} {
		_, err := s.PutQuestion(ctx, q)
		require.NoError(t, err)
	}

	set, err := s.QuestionSet(ctx, "verbal")
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, "1", set[0].ID, "set keeps insertion order")
	assert.Equal(t, "3", set[1].ID)
	assert.Equal(t, IndexAnswer(3), set[1].CorrectAnswer)

	// update keeps position
	upd := mcq("1", "verbal", 2)
	upd.Prompt = "Sinonim dari kata CERDAS"
	_, err = s.PutQuestion(ctx, upd)
	require.NoError(t, err)
	set, err = s.QuestionSet(ctx, "verbal")
	require.NoError(t, err)
	assert.Equal(t, "1", set[0].ID)
	assert.Equal(t, IndexAnswer(2), set[0].CorrectAnswer)

	found, err := s.ListQuestions(ctx, ListOpts{Q: "cerdas"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "1", found[0].ID)

	all, err := s.ListQuestions(ctx, ListOpts{Category: "all", Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2", all[0].ID)

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []CategorySummary{{Name: "numerical", Questions: 1}, {Name: "verbal", Questions: 2}}, cats)

	require.NoError(t, s.DeleteQuestion(ctx, "2"))
	_, err = s.GetQuestion(ctx, "2")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.DeleteQuestion(ctx, "2"), ErrNotFound))

	empty, err := s.QuestionSet(ctx, "spatial")
	require.NoError(t, err)
	assert.Empty(t, empty)

	bad := mcq("9", "verbal", 7)
	_, err = s.PutQuestion(ctx, bad)
	assert.True(t, errors.Is(err, ErrInvalidQuestion))
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewInMemoryStore())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	_, err := s.PutQuestion(ctx, mcq("1", "verbal", 1))
	require.NoError(t, err)

	q, err := s.GetQuestion(ctx, "1")
	require.NoError(t, err)
	q.Options[0] = "changed"

	again, err := s.GetQuestion(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Options[0])
}
