package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IBM/sarama"

	"followup-srv/internal/reminder"
	kafkaDelivery "followup-srv/internal/reminder/delivery/kafka"
)

// handleDocumentIngestedMessage decodes the event and delegates to the usecase.
// Malformed events and unknown dossiers are skipped (nil); anything else is
// returned so the offset is not committed.
func (c *Consumer) handleDocumentIngestedMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	c.l.Debugf(ctx, "reminder.delivery.kafka.consumer.handleDocumentIngestedMessage: Processing message from partition %d, offset %d",
		msg.Partition, msg.Offset)

	var message kafkaDelivery.DocumentIngestedMessage
	if err := json.Unmarshal(msg.Value, &message); err != nil {
		c.l.Warnf(ctx, "reminder.delivery.kafka.consumer.handleDocumentIngestedMessage: Invalid message format (skipping): %v", err)
		return nil
	}

	dossierID, ok := toDossierID(message)
	if !ok {
		c.l.Warnf(ctx, "reminder.delivery.kafka.consumer.handleDocumentIngestedMessage: Invalid message: missing dossier_id (skipping)")
		return nil
	}

	decision, err := c.uc.ShouldStop(ctx, dossierID)
	if errors.Is(err, reminder.ErrDossierNotFound) || errors.Is(err, reminder.ErrDossierRequired) {
		c.l.Warnf(ctx, "reminder.delivery.kafka.consumer.handleDocumentIngestedMessage: Dossier %s skipped: %v", dossierID, err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("usecase ShouldStop: %w", err)
	}

	if decision.Stop {
		c.l.Infof(ctx, "reminder.delivery.kafka.consumer.handleDocumentIngestedMessage: Reminders stopped for dossier %s: %s", dossierID, decision.Reason)
	}
	return nil
}
