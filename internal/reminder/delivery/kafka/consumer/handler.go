package consumer

import (
	"context"

	"github.com/IBM/sarama"
)

type documentIngestedHandler struct {
	consumer *Consumer
}

func (h *documentIngestedHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *documentIngestedHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim skips a message whose handling fails. Marking a later offset
// commits past it, so it is not redelivered; the next reminder cycle runs the
// same stop check for every awaiting dossier.
func (h *documentIngestedHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if err := h.consumer.handleDocumentIngestedMessage(session.Context(), msg); err != nil {
			h.consumer.l.Errorf(context.Background(), "reminder.delivery.kafka.consumer.ConsumeClaim: Failed to process document ingested message: %v", err)
			continue
		}
		session.MarkMessage(msg, "")
	}
	return nil
}
