package repository

import (
	"context"

	"followup-srv/internal/model"
)

//go:generate mockery --name DossierRepository
type DossierRepository interface {
	// ListAwaitingDossiers returns dossiers in awaiting_expert or expert_reminded
	// with no report-received timestamp, ordered by entry date then id.
	ListAwaitingDossiers(ctx context.Context) ([]model.Dossier, error)
	GetDossier(ctx context.Context, id string) (model.Dossier, error)
	// MarkReportReceived sets the report timestamp once and advances the status to
	// report_received from the awaiting statuses only. updated=false means the
	// timestamp was already set.
	MarkReportReceived(ctx context.Context, opts MarkReportReceivedOptions) (updated bool, err error)
	// MarkExpertReminded moves an awaiting dossier to expert_reminded and stamps
	// the reminder time.
	MarkExpertReminded(ctx context.Context, opts MarkExpertRemindedOptions) error
}

//go:generate mockery --name DocumentRepository
type DocumentRepository interface {
	// ListStopDocuments returns the reminder-stopping documents of a dossier, oldest first.
	ListStopDocuments(ctx context.Context, dossierID string) ([]model.Document, error)
	CreateDocument(ctx context.Context, opts CreateDocumentOptions) (model.Document, error)
}

//go:generate mockery --name ContactRepository
type ContactRepository interface {
	GetClient(ctx context.Context, id string) (model.Client, error)
	// GetClientPreference returns nil without error when the client has no preference row.
	GetClientPreference(ctx context.Context, clientID string) (*model.ClientPreference, error)
	GetVehicle(ctx context.Context, id string) (model.Vehicle, error)
}

//go:generate mockery --name SiteProfileRepository
type SiteProfileRepository interface {
	// GetSiteProfile returns the profile with its credentials decrypted.
	GetSiteProfile(ctx context.Context, id string) (model.SiteProfile, error)
}

//go:generate mockery --name SettingsRepository
type SettingsRepository interface {
	LoadSettings(ctx context.Context) (map[string]string, error)
}

//go:generate mockery --name PostgresRepository
type PostgresRepository interface {
	DossierRepository
	DocumentRepository
	ContactRepository
	SiteProfileRepository
	SettingsRepository
}
