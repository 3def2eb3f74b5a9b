package session

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-practice/internal/exam"
	"github.com/mind-engage/mindengage-practice/internal/grading"
)

const defaultSinkTimeout = 10 * time.Second

type Option func(*Session)

func WithID(id string) Option                { return func(s *Session) { s.id = id } }
func WithOwner(userID string) Option         { return func(s *Session) { s.owner = userID } }
func WithGrader(g grading.Grader) Option     { return func(s *Session) { s.grader = g } }
func WithSink(sink ResultSink) Option        { return func(s *Session) { s.sink = sink } }
func WithTicker(f TickerFunc) Option         { return func(s *Session) { s.newTicker = f } }
func WithLogger(l *zap.Logger) Option        { return func(s *Session) { s.log = l } }
func WithClock(now func() time.Time) Option  { return func(s *Session) { s.now = now } }
func WithSinkTimeout(d time.Duration) Option { return func(s *Session) { s.sinkTimeout = d } }

// Session is one attempt at a question set: NotStarted -> Running -> Submitted.
// All methods are safe for concurrent use; the countdown goroutine and a manual
// Submit race on the same mutex and the first one to reach Submitted wins.
type Session struct {
	mu sync.Mutex

	id              string
	testID          string
	owner           string // opaque; copied into the Result
	questions       []exam.Question
	known           map[string]struct{}
	durationMinutes int

	state     State
	closed    bool
	current   int
	answers   map[string]exam.Answer
	flagged   map[string]struct{}
	remaining int
	createdAt time.Time
	result    *Result
	cd        *countdown
	done      chan struct{}

	grader      grading.Grader
	sink        ResultSink
	newTicker   TickerFunc
	now         func() time.Time
	sinkTimeout time.Duration
	log         *zap.Logger
}

// New builds a session in NotStarted. It fails with a *ConfigurationError, and
// creates nothing, when the set is empty, has duplicate ids, or durationMinutes <= 0.
func New(testID string, questions []exam.Question, durationMinutes int, opts ...Option) (*Session, error) {
	if err := exam.ValidateSet(questions); err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	if durationMinutes <= 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("duration must be positive, got %d minutes", durationMinutes)}
	}

	s := &Session{
		id:              uuid.NewString(),
		testID:          testID,
		questions:       append([]exam.Question(nil), questions...),
		known:           make(map[string]struct{}, len(questions)),
		durationMinutes: durationMinutes,
		answers:         map[string]exam.Answer{},
		flagged:         map[string]struct{}{},
		remaining:       durationMinutes * 60,
		done:            make(chan struct{}),
		grader:          grading.NewDefaultGrader(),
		newTicker:       NewRealTicker,
		now:             time.Now,
		sinkTimeout:     defaultSinkTimeout,
		log:             zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	for _, q := range s.questions {
		s.known[q.ID] = struct{}{}
	}
	s.createdAt = s.now()
	return s, nil
}

func (s *Session) ID() string     { return s.id }
func (s *Session) TestID() string { return s.testID }
func (s *Session) Owner() string  { return s.owner }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Closed reports whether Close has torn the session down.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Done is closed once the session is submitted and its Result has been handed to the sink.
func (s *Session) Done() <-chan struct{} { return s.done }

// Result returns the cached Result once the session is submitted.
func (s *Session) Result() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Result{}, false
	}
	return s.result.Clone(), true
}

// Start moves NotStarted to Running and arms the one-second countdown.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != StateNotStarted {
		return &InvalidStateError{Op: "start", State: s.state, Closed: s.closed}
	}
	s.state = StateRunning
	s.remaining = s.durationMinutes * 60
	s.cd = startCountdown(s.newTicker(time.Second), s.tick)
	s.log.Info("session started",
		zap.String("session_id", s.id),
		zap.String("test_id", s.testID),
		zap.Int("questions", len(s.questions)),
		zap.Int("duration_minutes", s.durationMinutes))
	return nil
}

// SelectAnswer records value for questionID, replacing any earlier answer.
// The value is not checked against the question's options.
func (s *Session) SelectAnswer(questionID string, value exam.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireRunning("select answer"); err != nil {
		return err
	}
	if _, ok := s.known[questionID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	s.answers[questionID] = value
	return nil
}

// ToggleFlag marks or unmarks a question for review and reports the new flag state.
func (s *Session) ToggleFlag(questionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireRunning("toggle flag"); err != nil {
		return false, err
	}
	if _, ok := s.known[questionID]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if _, ok := s.flagged[questionID]; ok {
		delete(s.flagged, questionID)
		return false, nil
	}
	s.flagged[questionID] = struct{}{}
	return true, nil
}

// GoTo moves to index, clamped to the question range, and returns the new position.
func (s *Session) GoTo(index int) (int, error) {
	return s.move("go to", func(int) int { return index })
}

func (s *Session) Next() (int, error) {
	return s.move("next", func(cur int) int { return cur + 1 })
}

func (s *Session) Previous() (int, error) {
	return s.move("previous", func(cur int) int { return cur - 1 })
}

func (s *Session) move(op string, target func(cur int) int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireRunning(op); err != nil {
		return s.current, err
	}
	s.current = max(0, min(target(s.current), len(s.questions)-1))
	return s.current, nil
}

// Submit ends a running session and returns its Result. Once submitted, every
// further call returns the same Result without scoring again.
func (s *Session) Submit() (Result, error) {
	s.mu.Lock()
	if s.state == StateSubmitted {
		r := s.result.Clone()
		s.mu.Unlock()
		return r, nil
	}
	if err := s.requireRunning("submit"); err != nil {
		s.mu.Unlock()
		return Result{}, err
	}
	r := s.finishLocked(false)
	s.mu.Unlock()

	s.emit(r)
	return r.Clone(), nil
}

// Close tears the session down. The countdown stops and later operations fail;
// a submitted session keeps answering Submit and Result with its cached Result.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cd != nil {
		s.cd.cancel()
	}
}

// tick runs on the countdown goroutine. It returns false once the countdown should end.
func (s *Session) tick() bool {
	s.mu.Lock()
	if s.state != StateRunning || s.closed {
		s.mu.Unlock()
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		s.mu.Unlock()
		return true
	}
	r := s.finishLocked(true)
	s.mu.Unlock()

	s.emit(r)
	return false
}

func (s *Session) requireRunning(op string) error {
	if s.closed || s.state != StateRunning {
		return &InvalidStateError{Op: op, State: s.state, Closed: s.closed}
	}
	return nil
}

// finishLocked performs the Running -> Submitted transition. Caller holds mu.
func (s *Session) finishLocked(forced bool) Result {
	s.state = StateSubmitted
	if s.cd != nil {
		s.cd.cancel()
	}

	t := score(s.questions, s.answers, s.grader)
	r := Result{
		SessionID:        s.id,
		TestID:           s.testID,
		UserID:           s.owner,
		Answers:          maps.Clone(s.answers),
		Score:            percent(t.correct, t.total),
		TotalQuestions:   t.total,
		AnsweredCount:    len(s.answers),
		TimeSpentSeconds: s.durationMinutes*60 - s.remaining,
		CategoryScores:   t.categories,
		Flagged:          s.flaggedInOrder(),
		PendingReview:    t.pending,
		Forced:           forced,
		SubmittedAt:      s.now().UTC(),
	}
	s.result = &r
	s.log.Info("session submitted",
		zap.String("session_id", s.id),
		zap.String("test_id", s.testID),
		zap.Bool("forced", forced),
		zap.Int("score", r.Score),
		zap.Int("time_spent_seconds", r.TimeSpentSeconds))
	return r.Clone()
}

// emit hands r to the sink and then closes done. Only the goroutine that
// performed the transition calls it.
func (s *Session) emit(r Result) {
	defer close(s.done)
	if s.sink == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.sinkTimeout)
	defer cancel()
	if err := s.sink.Consume(ctx, r); err != nil {
		s.log.Error("result sink failed", zap.String("session_id", s.id), zap.Error(err))
	}
}

func (s *Session) flaggedInOrder() []string {
	if len(s.flagged) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.flagged))
	for _, q := range s.questions {
		if _, ok := s.flagged[q.ID]; ok {
			out = append(out, q.ID)
		}
	}
	return out
}
