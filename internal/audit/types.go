package audit

import (
	"followup-srv/internal/model"
	"followup-srv/pkg/paginator"
)

type ListInput struct {
	DossierID string
	Channel   model.Channel
	Paginate  paginator.PaginateQuery
}

type ListOutput struct {
	Attempts  []model.ReminderAttempt
	Paginator paginator.Paginator
}
