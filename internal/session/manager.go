package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mind-engage/mindengage-practice/internal/exam"
)

const (
	DefaultDurationMinutes = 30
	DefaultRetention       = time.Hour
	DefaultReapSchedule    = "@every 1m"
)

type ManagerOption func(*Manager)

func WithDuration(minutes int) ManagerOption              { return func(m *Manager) { m.duration = minutes } }
func WithRetention(d time.Duration) ManagerOption         { return func(m *Manager) { m.retention = d } }
func WithSessionOptions(opts ...Option) ManagerOption     { return func(m *Manager) { m.opts = append(m.opts, opts...) } }
func WithManagerLogger(l *zap.Logger) ManagerOption       { return func(m *Manager) { m.log = l } }
func WithManagerClock(now func() time.Time) ManagerOption { return func(m *Manager) { m.now = now } }

// Manager owns the live sessions of one process.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool

	store     exam.Store
	duration  int
	retention time.Duration
	opts      []Option
	now       func() time.Time
	log       *zap.Logger
	cron      *cron.Cron
}

func NewManager(store exam.Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions:  map[string]*Session{},
		store:     store,
		duration:  DefaultDurationMinutes,
		retention: DefaultRetention,
		now:       time.Now,
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Create builds a NotStarted session over the category's question set.
// A category with no questions fails with a *ConfigurationError that also
// matches ErrUnknownCategory.
func (m *Manager) Create(ctx context.Context, category, owner string) (*Session, error) {
	qs, err := m.store.QuestionSet(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("load question set %q: %w", category, err)
	}
	if len(qs) == 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("no questions for %q", category), Err: ErrUnknownCategory}
	}

	opts := append([]Option{WithOwner(owner), WithLogger(m.log), WithClock(m.now)}, m.opts...)
	s, err := New(category, qs, m.duration, opts...)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		s.Close()
		return nil, &InvalidStateError{Op: "create", Closed: true}
	}
	m.sessions[s.ID()] = s
	m.log.Debug("session created",
		zap.String("session_id", s.ID()),
		zap.String("category", category),
		zap.String("owner", owner))
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Len reports the number of sessions held, in any state.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reap drops submitted sessions older than the retention window, sessions
// that were never started within it, and closed sessions in any state.
// It returns how many were removed.
func (m *Manager) Reap() int {
	cutoff := m.now().Add(-m.retention)

	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		if s.Closed() {
			delete(m.sessions, id)
			stale = append(stale, s)
			continue
		}
		if s.State() == StateRunning {
			continue
		}
		if r, ok := s.Result(); ok && r.SubmittedAt.After(cutoff) {
			continue
		}
		if s.State() == StateNotStarted && s.CreatedAt().After(cutoff) {
			continue
		}
		delete(m.sessions, id)
		stale = append(stale, s)
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	if len(stale) > 0 {
		m.log.Info("reaped sessions", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// StartReaper runs Reap on a cron schedule until Close.
func (m *Manager) StartReaper(schedule string) error {
	if schedule == "" {
		schedule = DefaultReapSchedule
	}
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { m.Reap() }); err != nil {
		return fmt.Errorf("schedule session reaper: %w", err)
	}

	m.mu.Lock()
	if m.cron != nil {
		m.mu.Unlock()
		return fmt.Errorf("session reaper already running")
	}
	m.cron = c
	m.mu.Unlock()

	c.Start()
	m.log.Info("session reaper started", zap.String("schedule", schedule))
	return nil
}

// Close stops the reaper and every countdown. Sessions submitted before Close
// keep their results; nothing else is accepted afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	c := m.cron
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	for _, s := range all {
		s.Close()
	}
}
