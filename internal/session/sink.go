package session

import (
	"context"
	"errors"
)

// ResultSink receives each Result exactly once, after the session has reached
// its terminal state. Errors are reported to the caller's logger only; they do
// not change the Result.
type ResultSink interface {
	Consume(ctx context.Context, r Result) error
}

// SinkFunc adapts a function to ResultSink.
type SinkFunc func(ctx context.Context, r Result) error

func (f SinkFunc) Consume(ctx context.Context, r Result) error { return f(ctx, r) }

// MultiSink fans a Result out to every sink in order and joins their errors.
// Each sink gets its own copy.
type MultiSink []ResultSink

func (m MultiSink) Consume(ctx context.Context, r Result) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Consume(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
