package results

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mind-engage/mindengage-practice/internal/session"
)

const DefaultChannel = "session_submitted"

// SubmittedEvent is the pub/sub payload announcing a finished session.
type SubmittedEvent struct {
	SessionID        string                           `json:"sessionId"`
	TestID           string                           `json:"testId"`
	UserID           string                           `json:"userId,omitempty"`
	Score            int                              `json:"score"`
	TotalQuestions   int                              `json:"totalQuestions"`
	TimeSpentSeconds int                              `json:"timeSpentSeconds"`
	Forced           bool                             `json:"forced"`
	CategoryScores   map[string]session.CategoryScore `json:"categoryScores"`
	SubmittedAt      string                           `json:"submittedAt"`
}

// Publisher announces results on a Redis channel.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

func NewPublisher(rdb *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{rdb: rdb, channel: channel}
}

func (p *Publisher) Consume(ctx context.Context, r session.Result) error {
	payload, err := json.Marshal(SubmittedEvent{
		SessionID:        r.SessionID,
		TestID:           r.TestID,
		UserID:           r.UserID,
		Score:            r.Score,
		TotalQuestions:   r.TotalQuestions,
		TimeSpentSeconds: r.TimeSpentSeconds,
		Forced:           r.Forced,
		CategoryScores:   r.CategoryScores,
		SubmittedAt:      r.SubmittedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return nil
}
