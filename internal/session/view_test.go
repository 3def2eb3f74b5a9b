package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-practice/internal/exam"
)

func TestSnapshot(t *testing.T) {
	s, _ := newRunning(t, threeQuestions(), 30)
	require.NoError(t, s.SelectAnswer("q2", exam.IndexAnswer(3)))
	_, err := s.ToggleFlag("q3")
	require.NoError(t, err)
	_, err = s.GoTo(1)
	require.NoError(t, err)

	v := s.Snapshot()
	assert.Equal(t, StateRunning, v.State)
	assert.Equal(t, 1, v.CurrentIndex)
	assert.Equal(t, "q2", v.Current.ID)
	assert.Equal(t, 1, v.AnsweredCount)
	assert.Equal(t, 67, v.Progress)
	assert.Equal(t, 30, v.DurationMinutes)
	require.Len(t, v.Navigator, 3)
	assert.Equal(t, NavItem{Index: 1, ID: "q2", Answered: true}, v.Navigator[1])
	assert.Equal(t, NavItem{Index: 2, ID: "q3", Flagged: true}, v.Navigator[2])

	// the snapshot is detached from the session
	v.Answers["q1"] = exam.IndexAnswer(1)
	assert.Equal(t, 1, s.Snapshot().AnsweredCount)
}

func TestSnapshot_HidesAnswerKey(t *testing.T) {
	s, _ := newRunning(t, threeQuestions(), 30)
	b, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "correct_answer")
	assert.Contains(t, string(b), `"state":"running"`)
}
