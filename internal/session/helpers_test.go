package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-practice/internal/exam"
)

// fakeTicker only fires when the test says so.
type fakeTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{c: make(chan time.Time), stopped: make(chan struct{})}
}

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               { f.once.Do(func() { close(f.stopped) }) }

func (f *fakeTicker) factory() TickerFunc {
	return func(time.Duration) Ticker { return f }
}

// fire delivers up to n ticks and reports how many were taken before the ticker stopped.
func (f *fakeTicker) fire(n int) int {
	for i := 0; i < n; i++ {
		select {
		case f.c <- time.Time{}:
		case <-f.stopped:
			return i
		}
	}
	return n
}

// recordingSink counts Consume calls and keeps the last Result.
type recordingSink struct {
	mu    sync.Mutex
	calls int
	last  Result
}

func (r *recordingSink) Consume(_ context.Context, res Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.last = res
	return nil
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func mcq(id, category string, correct int) exam.Question {
	return exam.Question{
		ID:            id,
		Category:      category,
		Kind:          exam.KindMultipleChoice,
		Prompt:        "question " + id,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: exam.IndexAnswer(correct),
		Difficulty:    exam.DifficultyMedium,
	}
}

func threeQuestions() []exam.Question {
	return []exam.Question{mcq("q1", "verbal", 1), mcq("q2", "verbal", 0), mcq("q3", "numerical", 2)}
}

// advance fires n ticks and waits until the last one has been applied.
func advance(t *testing.T, s *Session, ft *fakeTicker, n int) {
	t.Helper()
	before := s.Snapshot().RemainingSeconds
	require.Equal(t, n, ft.fire(n))
	require.Eventually(t, func() bool {
		return s.Snapshot().RemainingSeconds == before-n
	}, time.Second, time.Millisecond)
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not finish")
	}
}
