package model

import "time"

// Channel is the route a reminder attempt took.
type Channel string

const (
	ChannelExpertPortal Channel = "expert_portal"
	ChannelExpertEmail  Channel = "expert_email"
	ChannelClientSMS    Channel = "client_sms"
	ChannelClientEmail  Channel = "client_email"
	ChannelSystemStop   Channel = "system_stop"
)

// Valid reports whether c is one of the known channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelExpertPortal, ChannelExpertEmail, ChannelClientSMS, ChannelClientEmail, ChannelSystemStop:
		return true
	}
	return false
}

// Outcome is the result of a reminder attempt.
type Outcome string

const (
	OutcomeSent      Outcome = "sent"
	OutcomeDelivered Outcome = "delivered"
	OutcomeRead      Outcome = "read"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomeSent, OutcomeDelivered, OutcomeRead, OutcomeFailed, OutcomeCancelled:
		return true
	}
	return false
}

// ReminderAttempt is one append-only ledger entry.
type ReminderAttempt struct {
	ID            string    `json:"id" db:"id"`
	DossierID     string    `json:"dossier_id" db:"dossier_id"`
	Channel       Channel   `json:"channel" db:"channel"`
	Recipient     string    `json:"recipient" db:"recipient"`
	Message       string    `json:"message" db:"message"`
	Outcome       Outcome   `json:"outcome" db:"outcome"`
	ExternalRef   string    `json:"external_ref,omitempty" db:"external_ref"`
	FailureDetail string    `json:"failure_detail,omitempty" db:"failure_detail"`
	ArtifactType  string    `json:"artifact_type,omitempty" db:"artifact_type"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
