package kafka

import (
	"time"
)

const (
	TopicDocumentIngested   = "document.ingested"
	GroupIDDocumentIngested = "followup-stop-check"
)

// DocumentIngestedMessage is published by the document pipeline each time a file
// is attached to a dossier.
type DocumentIngestedMessage struct {
	DossierID    string    `json:"dossier_id"`
	DocumentID   string    `json:"document_id"`
	DocumentType string    `json:"document_type"`
	IngestedAt   time.Time `json:"ingested_at"`
}
