package exam

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-practice/internal/db"
)

func TestSQLStore(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "bank.db") + "?_pragma=busy_timeout(5000)"
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })

	storeContract(t, NewSQLStore(dbh, string(db.DriverSQLite)))
}

func TestSQLStore_EssayRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "bank.db")
	dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })

	s := NewSQLStore(dbh, string(db.DriverSQLite))
	essay := Question{
		ID:            "e1",
		Category:      "verbal",
		Kind:          KindEssay,
		Prompt:        "Jelaskan arti kata CERDAS",
		CorrectAnswer: TextAnswer("pintar"),
		Difficulty:    DifficultyHard,
	}
	_, err = s.PutQuestion(ctx, essay)
	require.NoError(t, err)

	got, err := s.GetQuestion(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, essay, got)
}

func TestSQLStore_EssayWithoutKey(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "bank.db"))
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })

	s := NewSQLStore(dbh, string(db.DriverSQLite))
	_, err = s.PutQuestion(ctx, Question{ID: "e2", Category: "verbal", Kind: KindEssay, Prompt: "Explain", Difficulty: DifficultyEasy})
	require.NoError(t, err)

	got, err := s.GetQuestion(ctx, "e2")
	require.NoError(t, err)
	require.True(t, got.CorrectAnswer.IsZero())
}
