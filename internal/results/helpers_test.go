package results

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-practice/internal/db"
	"github.com/mind-engage/mindengage-practice/internal/exam"
	"github.com/mind-engage/mindengage-practice/internal/session"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(context.Background(), db.DriverSQLite, "file:"+filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sampleResult(id, user string, score int, at time.Time) session.Result {
	return session.Result{
		SessionID:        id,
		TestID:           "verbal",
		UserID:           user,
		Answers:          map[string]exam.Answer{"1": exam.IndexAnswer(1), "2": exam.TextAnswer("pintar")},
		Score:            score,
		TotalQuestions:   2,
		AnsweredCount:    2,
		TimeSpentSeconds: 95,
		CategoryScores:   map[string]session.CategoryScore{"verbal": {Correct: 1, Total: 2}},
		SubmittedAt:      at.UTC(),
	}
}
