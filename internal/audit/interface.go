package audit

import (
	"context"

	"followup-srv/internal/model"
)

// Recorder is the write side of the reminder ledger.
//
//go:generate mockery --name Recorder
type Recorder interface {
	// Record appends one attempt. ID and CreatedAt are filled when empty and
	// free-text fields are redacted before anything is persisted.
	Record(ctx context.Context, attempt model.ReminderAttempt) error
	HasAttempt(ctx context.Context, dossierID string, channel model.Channel) (bool, error)
}

//go:generate mockery --name UseCase
type UseCase interface {
	Recorder
	List(ctx context.Context, input ListInput) (ListOutput, error)
}

// Producer publishes ledger events.
type Producer interface {
	PublishAttemptRecorded(ctx context.Context, attempt model.ReminderAttempt) error
}
