package results

import (
	"context"
	"encoding/json"

	"github.com/mind-engage/mindengage-practice/internal/session"
	syncx "github.com/mind-engage/mindengage-practice/internal/sync"
)

// EventSink appends a SessionSubmitted event per result.
type EventSink struct {
	repo   *syncx.EventRepo
	siteID string
}

func NewEventSink(repo *syncx.EventRepo, siteID string) *EventSink {
	return &EventSink{repo: repo, siteID: siteID}
}

func (e *EventSink) Consume(ctx context.Context, r session.Result) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return e.repo.Append(ctx, syncx.Event{
		SiteID:   e.siteID,
		Type:     syncx.TypeSessionSubmitted,
		Key:      r.SessionID,
		DataJSON: string(b),
	})
}
