package automation

import (
	"context"
	"errors"
	"fmt"

	"followup-srv/pkg/redact"
)

var (
	ErrConnection = errors.New("automation: connection failed")
	ErrNavigation = errors.New("automation: navigation failed")
	ErrTimeout    = errors.New("automation: timed out")
	ErrNotFound   = errors.New("automation: record not found")

	ErrNotConnected     = errors.New("automation: session is not connected")
	ErrNoRecordSelected = errors.New("automation: no record selected")
	ErrReleased         = errors.New("automation: session already released")
	ErrMissingSelector  = errors.New("automation: selector not configured")
	ErrMissingKeys      = errors.New("automation: no search key supplied")
)

// ActionError is the single failure type returned by a Capability.
// Message is already sanitized.
type ActionError struct {
	Action  string
	Kind    Kind
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s %s error: %s", e.Action, e.Kind, e.Message)
}

// Unwrap maps the kind onto its sentinel so callers can use errors.Is.
func (e *ActionError) Unwrap() error {
	switch e.Kind {
	case KindConnection:
		return ErrConnection
	case KindTimeout:
		return ErrTimeout
	case KindNotFound:
		return ErrNotFound
	default:
		return ErrNavigation
	}
}

// NewActionError wraps err for action. Deadline errors become KindTimeout whatever
// kind was asked for. The message is scrubbed of secrets and credential patterns.
func NewActionError(action string, kind Kind, err error, secrets ...string) *ActionError {
	if err == nil {
		err = errors.New("unknown failure")
	}
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &ActionError{
		Action:  action,
		Kind:    kind,
		Message: redact.Secrets(err.Error(), secrets...),
	}
}
