package consumer

import (
	"context"
	"fmt"

	"followup-srv/internal/audit"
	auditProducer "followup-srv/internal/audit/delivery/kafka/producer"
	auditPostgre "followup-srv/internal/audit/repository/postgre"
	auditUsecase "followup-srv/internal/audit/usecase"
	reminderConsumer "followup-srv/internal/reminder/delivery/kafka/consumer"
	reminderPostgre "followup-srv/internal/reminder/repository/postgre"
	reminderUsecase "followup-srv/internal/reminder/usecase"
)

// domainConsumers holds references to all domain consumers for cleanup
type domainConsumers struct {
	reminderConsumer *reminderConsumer.Consumer
}

// setupDomains initializes all domain layers (repositories, usecases, consumers).
// Stop checks never send anything, so the reminder engine runs without channels here.
func (srv *ConsumerServer) setupDomains(ctx context.Context) (*domainConsumers, error) {
	var producer audit.Producer
	if srv.kafkaProducer != nil {
		producer = auditProducer.New(srv.l, srv.kafkaProducer)
	}
	auditUC := auditUsecase.New(auditPostgre.New(srv.postgresDB, srv.l), producer, srv.l)

	reminderUC := reminderUsecase.New(srv.l, reminderUsecase.Deps{
		Repo:     reminderPostgre.New(srv.postgresDB, srv.encrypter, srv.l),
		Recorder: auditUC,
	}, reminderUsecase.Config{
		DossierTimeout: srv.reminderCfg.DossierTimeout,
		WriteTimeout:   srv.reminderCfg.WriteTimeout,
		ReportPrefix:   srv.reminderCfg.ReportPrefix,
	})

	cons, err := reminderConsumer.New(reminderConsumer.Config{
		Logger:      srv.l,
		KafkaConfig: srv.kafkaConfig,
		UseCase:     reminderUC,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder consumer: %w", err)
	}

	srv.l.Infof(ctx, "Reminder domain initialized")

	return &domainConsumers{
		reminderConsumer: cons,
	}, nil
}

// startConsumers starts all domain consumers in background goroutines
func (srv *ConsumerServer) startConsumers(ctx context.Context, consumers *domainConsumers) error {
	if err := consumers.reminderConsumer.ConsumeDocumentIngested(ctx); err != nil {
		srv.alert(ctx, "Consumer start failed", err)
		return fmt.Errorf("failed to start reminder consumer: %w", err)
	}

	srv.l.Infof(ctx, "All consumers started successfully")
	return nil
}

// stopConsumers gracefully stops all domain consumers
func (srv *ConsumerServer) stopConsumers(ctx context.Context, consumers *domainConsumers) {
	if consumers.reminderConsumer != nil {
		if err := consumers.reminderConsumer.Close(); err != nil {
			srv.l.Errorf(ctx, "Error closing reminder consumer: %v", err)
		}
	}

	srv.l.Infof(ctx, "All consumers stopped")
}

func (srv *ConsumerServer) alert(ctx context.Context, title string, err error) {
	if srv.discord == nil {
		return
	}
	if sendErr := srv.discord.SendError(ctx, title, "followup-srv consumer", err); sendErr != nil {
		srv.l.Warnf(ctx, "consumer.alert: Failed to notify Discord: %v", sendErr)
	}
}
