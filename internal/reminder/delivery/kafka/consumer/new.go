package consumer

import (
	"fmt"

	"followup-srv/config"
	"followup-srv/internal/reminder"
	pkgKafka "followup-srv/pkg/kafka"
	"followup-srv/pkg/log"
)

// Config holds the configuration for the reminder consumer
type Config struct {
	Logger      log.Logger
	KafkaConfig config.KafkaConfig
	UseCase     reminder.UseCase
}

// Consumer manages Kafka consumer groups for the reminder domain
type Consumer struct {
	l           log.Logger
	kafkaConfig config.KafkaConfig
	uc          reminder.UseCase

	documentIngestedGroup pkgKafka.IConsumer
}

// New creates a new reminder consumer
func New(cfg Config) (*Consumer, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cfg.UseCase == nil {
		return nil, fmt.Errorf("usecase is required")
	}
	if len(cfg.KafkaConfig.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	return &Consumer{
		l:           cfg.Logger,
		kafkaConfig: cfg.KafkaConfig,
		uc:          cfg.UseCase,
	}, nil
}

// Close closes all consumer groups
func (c *Consumer) Close() error {
	if c.documentIngestedGroup != nil {
		if err := c.documentIngestedGroup.Close(); err != nil {
			return fmt.Errorf("%w: %v", ErrCloseConsumerGroupFailed, err)
		}
	}
	return nil
}

func (c *Consumer) createConsumerGroup(groupID string) (pkgKafka.IConsumer, error) {
	group, err := pkgKafka.NewConsumer(pkgKafka.ConsumerConfig{
		Brokers:  c.kafkaConfig.Brokers,
		GroupID:  groupID,
		ClientID: "followup-srv-consumer",
	})
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCreateConsumerGroupFailed, groupID, err)
	}
	return group, nil
}
