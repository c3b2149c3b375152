package producer

import (
	"followup-srv/internal/audit"
	pkgKafka "followup-srv/pkg/kafka"
	"followup-srv/pkg/log"
)

type Producer interface {
	audit.Producer
}

type implProducer struct {
	l        log.Logger
	producer pkgKafka.IProducer
}

// New wraps a topic-bound Kafka producer.
func New(l log.Logger, producer pkgKafka.IProducer) Producer {
	return &implProducer{
		l:        l,
		producer: producer,
	}
}
