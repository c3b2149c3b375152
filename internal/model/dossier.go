package model

import "time"

// DossierStatus is the lifecycle status of a claim file.
type DossierStatus string

const (
	DossierStatusNew             DossierStatus = "new"
	DossierStatusAwaitingExpert  DossierStatus = "awaiting_expert"
	DossierStatusExpertReminded  DossierStatus = "expert_reminded"
	DossierStatusReportReceived  DossierStatus = "report_received"
	DossierStatusInRepair        DossierStatus = "in_repair"
	DossierStatusInvoiced        DossierStatus = "invoiced"
	DossierStatusAwaitingPayment DossierStatus = "awaiting_payment"
	DossierStatusPaid            DossierStatus = "paid"
	DossierStatusDisputed        DossierStatus = "disputed"
)

// AwaitingReport reports whether reminders may still be sent in this status.
func (s DossierStatus) AwaitingReport() bool {
	return s == DossierStatusAwaitingExpert || s == DossierStatusExpertReminded
}

// PastReport reports whether s is report_received or later in the forward sequence.
// disputed sits outside the sequence and is not considered past.
func (s DossierStatus) PastReport() bool {
	switch s {
	case DossierStatusReportReceived, DossierStatusInRepair, DossierStatusInvoiced,
		DossierStatusAwaitingPayment, DossierStatusPaid:
		return true
	}
	return false
}

// Dossier is a claim file.
type Dossier struct {
	ID          string        `json:"id" db:"id"`
	Reference   string        `json:"reference" db:"reference"`
	ClaimNumber string        `json:"claim_number" db:"claim_number"`
	Status      DossierStatus `json:"status" db:"status"`

	// Timeline
	EntryDate            time.Time  `json:"entry_date" db:"entry_date"`
	LastExpertReminderAt *time.Time `json:"last_expert_reminder_at,omitempty" db:"last_expert_reminder_at"`
	ReportReceivedAt     *time.Time `json:"report_received_at,omitempty" db:"report_received_at"`

	// Links
	ClientID      *string `json:"client_id,omitempty" db:"client_id"`
	VehicleID     *string `json:"vehicle_id,omitempty" db:"vehicle_id"`
	SiteProfileID *string `json:"site_profile_id,omitempty" db:"site_profile_id"`

	// Expert
	ExpertName  string `json:"expert_name" db:"expert_name"`
	ExpertEmail string `json:"expert_email" db:"expert_email"`

	NotifyClient bool `json:"notify_client" db:"notify_client"`
}

// ReminderAnchor is the later of the last expert reminder and the entry date.
func (d Dossier) ReminderAnchor() time.Time {
	if d.LastExpertReminderAt != nil && d.LastExpertReminderAt.After(d.EntryDate) {
		return *d.LastExpertReminderAt
	}
	return d.EntryDate
}

// DaysSinceAnchor returns the whole days elapsed between the reminder anchor and now.
func (d Dossier) DaysSinceAnchor(now time.Time) int {
	elapsed := now.Sub(d.ReminderAnchor())
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}
