package repository

import (
	"time"

	"followup-srv/internal/model"
)

type MarkReportReceivedOptions struct {
	DossierID string
	At        time.Time
}

type MarkExpertRemindedOptions struct {
	DossierID string
	At        time.Time
}

type CreateDocumentOptions struct {
	ID         string
	DossierID  string
	Type       model.DocumentType
	StorageKey string
	CreatedAt  time.Time
}
