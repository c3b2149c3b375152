package usecase

import (
	"time"

	"followup-srv/internal/audit"
	"followup-srv/internal/audit/repository"
	"followup-srv/pkg/log"
)

type implUseCase struct {
	repo     repository.AttemptRepository
	producer audit.Producer
	l        log.Logger
	now      func() time.Time
}

// New creates the audit UseCase. producer may be nil when Kafka is not configured.
func New(repo repository.AttemptRepository, producer audit.Producer, l log.Logger) audit.UseCase {
	return &implUseCase{
		repo:     repo,
		producer: producer,
		l:        l,
		now:      time.Now,
	}
}
