package exam

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryStore struct {
	mu        sync.RWMutex
	questions map[string]Question
	order     []string // insertion order, which is also test order
}

func NewInMemoryStore() Store {
	return &memoryStore{questions: map[string]Question{}}
}

func (m *memoryStore) ListQuestions(_ context.Context, opts ListOpts) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(opts.Q))
	out := make([]Question, 0, len(m.order))
	for _, id := range m.order {
		q := m.questions[id]
		if !allCategories(opts.Category) && q.Category != opts.Category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(q.Prompt), needle) {
			continue
		}
		out = append(out, cloneQuestion(q))
	}
	return page(out, opts.Offset, opts.Limit), nil
}

func (m *memoryStore) GetQuestion(_ context.Context, id string) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	if !ok {
		return Question{}, ErrNotFound
	}
	return cloneQuestion(q), nil
}

func (m *memoryStore) PutQuestion(_ context.Context, q Question) (Question, error) {
	q, err := Normalize(q)
	if err != nil {
		return Question{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.questions[q.ID]; !exists {
		m.order = append(m.order, q.ID)
	}
	m.questions[q.ID] = cloneQuestion(q)
	return q, nil
}

func (m *memoryStore) DeleteQuestion(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[id]; !ok {
		return ErrNotFound
	}
	delete(m.questions, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryStore) Categories(_ context.Context) ([]CategorySummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := map[string]int{}
	for _, q := range m.questions {
		counts[q.Category]++
	}
	out := make([]CategorySummary, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategorySummary{Name: name, Questions: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryStore) QuestionSet(ctx context.Context, category string) ([]Question, error) {
	if allCategories(category) {
		return []Question{}, nil
	}
	return m.ListQuestions(ctx, ListOpts{Category: category})
}

func cloneQuestion(q Question) Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}

func page(qs []Question, offset, limit int) []Question {
	if offset > 0 {
		if offset >= len(qs) {
			return []Question{}
		}
		qs = qs[offset:]
	}
	if limit > 0 && limit < len(qs) {
		qs = qs[:limit]
	}
	return qs
}
