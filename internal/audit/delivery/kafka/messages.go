package kafka

import "time"

// AttemptRecordedMessage is the payload of reminder.attempt.recorded.
// Free-text fields are already redacted by the recorder.
type AttemptRecordedMessage struct {
	ID            string    `json:"id"`
	DossierID     string    `json:"dossier_id"`
	Channel       string    `json:"channel"`
	Outcome       string    `json:"outcome"`
	Recipient     string    `json:"recipient,omitempty"`
	ExternalRef   string    `json:"external_ref,omitempty"`
	FailureDetail string    `json:"failure_detail,omitempty"`
	ArtifactType  string    `json:"artifact_type,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
