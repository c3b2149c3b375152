package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"followup-srv/config"
	"followup-srv/config/kafka"
	"followup-srv/config/postgre"
	"followup-srv/internal/consumer"
	"followup-srv/pkg/discord"
	"followup-srv/pkg/encrypter"
	pkgKafka "followup-srv/pkg/kafka"
	"followup-srv/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Follow-up Consumer Service...")

	if cfg.Store.Driver != config.StoreDriverPostgres {
		logger.Errorf(ctx, "The consumer requires store.driver=%s", config.StoreDriverPostgres)
		return
	}

	// Encrypter
	encrypterInstance, err := encrypter.New(cfg.Encrypter.Key)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize encrypter: %v", err)
		return
	}

	// PostgreSQL
	postgresDB, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer postgre.Disconnect()
	logger.Info(ctx, "PostgreSQL client initialized")

	// Kafka Producer (stop entries are published like any other attempt)
	var kafkaProducer pkgKafka.IProducer
	if cfg.Kafka.AttemptTopic != "" {
		kafkaProducer, err = kafka.Connect(cfg.Kafka)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to Kafka producer: %v", err)
			return
		}
		defer kafka.Disconnect()
		logger.Info(ctx, "Kafka producer initialized")
	}

	// Discord (optional)
	var discordClient discord.IDiscord
	if cfg.Discord.WebhookID != "" {
		discordClient, err = discord.New(logger, &discord.DiscordWebhook{
			ID:    cfg.Discord.WebhookID,
			Token: cfg.Discord.WebhookToken,
		})
		if err != nil {
			logger.Warnf(ctx, "Discord webhook not configured (optional): %v", err)
			discordClient = nil
		} else {
			logger.Info(ctx, "Discord client initialized")
		}
	}

	// Consumer server
	srv, err := consumer.New(consumer.Config{
		Logger:         logger,
		KafkaConfig:    cfg.Kafka,
		ReminderConfig: cfg.Reminder,
		PostgresDB:     postgresDB,
		Encrypter:      encrypterInstance,
		KafkaProducer:  kafkaProducer,
		Discord:        discordClient,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create consumer server: %v", err)
		return
	}

	logger.Info(ctx, "Consumer server starting...")
	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Consumer server error: %v", err)
		return
	}

	logger.Info(ctx, "Consumer server stopped gracefully")
}
