package model

import "time"

// DocumentType classifies an ingested document.
type DocumentType string

const (
	DocumentTypeExpertReport     DocumentType = "expert_report"
	DocumentTypeSettlementRecord DocumentType = "settlement_record"
	DocumentTypePaymentProof     DocumentType = "payment_proof"
)

// StopsReminders reports whether a document of this type ends expert reminders.
func (t DocumentType) StopsReminders() bool {
	switch t {
	case DocumentTypeExpertReport, DocumentTypeSettlementRecord, DocumentTypePaymentProof:
		return true
	}
	return false
}

// Document is a file attached to a dossier.
type Document struct {
	ID         string       `json:"id" db:"id"`
	DossierID  string       `json:"dossier_id" db:"dossier_id"`
	Type       DocumentType `json:"type" db:"type"`
	StorageKey string       `json:"storage_key" db:"storage_key"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}
