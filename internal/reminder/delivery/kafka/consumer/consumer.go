package consumer

import (
	"context"

	kafkaDelivery "followup-srv/internal/reminder/delivery/kafka"
)

// ConsumeDocumentIngested starts re-evaluating stop conditions for every ingested document.
func (c *Consumer) ConsumeDocumentIngested(ctx context.Context) error {
	groupID := c.kafkaConfig.GroupID
	if groupID == "" {
		groupID = kafkaDelivery.GroupIDDocumentIngested
	}
	topic := c.kafkaConfig.DocumentTopic
	if topic == "" {
		topic = kafkaDelivery.TopicDocumentIngested
	}

	group, err := c.createConsumerGroup(groupID)
	if err != nil {
		return err
	}
	c.documentIngestedGroup = group

	handler := &documentIngestedHandler{consumer: c}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := group.ConsumeWithContext(ctx, []string{topic}, handler); err != nil {
					c.l.Errorf(ctx, "reminder.delivery.kafka.consumer.ConsumeDocumentIngested: Consumer error: %v", err)
				}
			}
		}
	}()

	go func() {
		for err := range group.Errors() {
			c.l.Errorf(ctx, "reminder.delivery.kafka.consumer.ConsumeDocumentIngested: Consumer group error: %v", err)
		}
	}()

	c.l.Infof(ctx, "Consuming %s", topic)
	return nil
}
