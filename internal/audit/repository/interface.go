package repository

import (
	"context"

	"followup-srv/internal/model"
)

//go:generate mockery --name AttemptRepository
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, opts CreateAttemptOptions) (model.ReminderAttempt, error)
	ListAttempts(ctx context.Context, opts ListAttemptsOptions) ([]model.ReminderAttempt, error)
	CountAttempts(ctx context.Context, opts ListAttemptsOptions) (int64, error)
	HasAttempt(ctx context.Context, opts HasAttemptOptions) (bool, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	AttemptRepository
}
