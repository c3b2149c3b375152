package automation

import (
	"context"

	"followup-srv/internal/model"
)

// Capability drives one session against one expert portal.
// States: disconnected -> connected -> searched -> released. An instance is owned by a
// single caller and is never shared. Cleanup is valid in every state and idempotent.
//
//go:generate mockery --name Capability
type Capability interface {
	Connect(ctx context.Context) error
	// Search locates the record, preferring primaryKey (claim number) and falling back
	// to secondaryKey (plate). Found=false is a normal negative result.
	Search(ctx context.Context, primaryKey, secondaryKey string) (SearchResult, error)
	// CheckAndRetrieveReport looks for the report on the selected record.
	// Found=false is a normal negative result.
	CheckAndRetrieveReport(ctx context.Context) (ReportResult, error)
	// SendMessage posts body on the selected record. Portals without a message
	// composer treat it as a no-op success.
	SendMessage(ctx context.Context, body string) error
	Cleanup()
}

// Factory builds a Capability for a profile whose credentials are already decrypted.
type Factory interface {
	New(profile *model.SiteProfile) (Capability, error)
}
