package repository

import "followup-srv/internal/model"

type CreateAttemptOptions struct {
	Attempt model.ReminderAttempt
}

type ListAttemptsOptions struct {
	DossierID string
	Channel   model.Channel
	Limit     int
	Offset    int
}

type HasAttemptOptions struct {
	DossierID string
	Channel   model.Channel
}
