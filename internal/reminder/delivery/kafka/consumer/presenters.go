package consumer

import (
	"strings"

	kafkaDelivery "followup-srv/internal/reminder/delivery/kafka"
)

func toDossierID(msg kafkaDelivery.DocumentIngestedMessage) (string, bool) {
	id := strings.TrimSpace(msg.DossierID)
	return id, id != ""
}
