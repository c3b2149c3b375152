package producer

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaDelivery "followup-srv/internal/audit/delivery/kafka"
	"followup-srv/internal/model"
)

// PublishAttemptRecorded publishes one ledger entry keyed by dossier so a
// dossier's events stay ordered within a partition.
func (p *implProducer) PublishAttemptRecorded(ctx context.Context, attempt model.ReminderAttempt) error {
	msg := kafkaDelivery.AttemptRecordedMessage{
		ID:            attempt.ID,
		DossierID:     attempt.DossierID,
		Channel:       string(attempt.Channel),
		Outcome:       string(attempt.Outcome),
		Recipient:     attempt.Recipient,
		ExternalRef:   attempt.ExternalRef,
		FailureDetail: attempt.FailureDetail,
		ArtifactType:  attempt.ArtifactType,
		CreatedAt:     attempt.CreatedAt,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt event: %w", err)
	}

	if err := p.producer.Publish([]byte(attempt.DossierID), body); err != nil {
		return fmt.Errorf("failed to publish attempt event: %w", err)
	}

	p.l.Debugf(ctx, "audit.delivery.kafka.producer: published attempt %s (%s/%s)", attempt.ID, attempt.Channel, attempt.Outcome)
	return nil
}
