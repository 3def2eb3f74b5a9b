package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is matched by every *InvalidStateError.
	ErrInvalidState = errors.New("invalid session state")
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("invalid session configuration")

	ErrUnknownQuestion = errors.New("question not in this session")
	ErrNotFound        = errors.New("session not found")
	ErrUnknownCategory = errors.New("unknown test category")
)

// InvalidStateError reports an operation invoked outside the state it is valid in.
type InvalidStateError struct {
	Op     string
	State  State
	Closed bool
}

func (e *InvalidStateError) Error() string {
	if e.Closed {
		return fmt.Sprintf("%s: session closed", e.Op)
	}
	return fmt.Sprintf("%s: not allowed while %s", e.Op, e.State)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// ConfigurationError reports a session that cannot be built. No state exists after it.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return "session configuration: " + e.Err.Error()
	}
	return "session configuration: " + e.Reason
}

func (e *ConfigurationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfiguration, e.Err}
	}
	return []error{ErrConfiguration}
}
