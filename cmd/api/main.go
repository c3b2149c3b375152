package main

import (
	"context"
	"fmt"

	"followup-srv/config"
	configKafka "followup-srv/config/kafka"
	configMinio "followup-srv/config/minio"
	configPostgre "followup-srv/config/postgre"
	configRedis "followup-srv/config/redis"
	"followup-srv/internal/automation/browser"
	"followup-srv/internal/httpserver"
	"followup-srv/pkg/discord"
	"followup-srv/pkg/email"
	"followup-srv/pkg/encrypter"
	pkgKafka "followup-srv/pkg/kafka"
	"followup-srv/pkg/log"
	"followup-srv/pkg/minio"
	pkgRedis "followup-srv/pkg/redis"
	"followup-srv/pkg/sms"

	"github.com/jmoiron/sqlx"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	ctx := context.Background()

	// 3. Initialize encrypter (site credentials at rest)
	encrypterInstance, err := encrypter.New(cfg.Encrypter.Key)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize encrypter: %v", err)
		return
	}

	// 4. Relational store and portal lock backend
	var (
		postgresDB  *sqlx.DB
		redisClient pkgRedis.IRedis
	)
	if cfg.Store.Driver == config.StoreDriverPostgres {
		postgresDB, err = configPostgre.Connect(ctx, cfg.Postgres)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
			return
		}
		defer configPostgre.Disconnect()
		logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

		redisClient, err = configRedis.Connect(ctx, cfg.Redis)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
			return
		}
		defer configRedis.Disconnect()
		logger.Infof(ctx, "Redis connected successfully to %s:%d (DB %d)", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB)
	} else {
		logger.Warnf(ctx, "Using the in-memory store: dossiers and ledger are not persisted")
	}

	// 5. MinIO (optional, portal-retrieved reports)
	var minioClient minio.MinIO
	if cfg.MinIO.Endpoint != "" {
		client, err := configMinio.Connect(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf(ctx, "MinIO not available, retrieved reports keep their portal URL: %v", err)
		} else {
			minioClient = client
			defer configMinio.Disconnect()
			logger.Infof(ctx, "MinIO client initialized (bucket %s)", cfg.MinIO.Bucket)
		}
	}

	// 6. Kafka producer (optional, attempt events)
	var kafkaProducer pkgKafka.IProducer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err = configKafka.Connect(cfg.Kafka)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to Kafka producer: %v", err)
			return
		}
		defer configKafka.Disconnect()
		logger.Infof(ctx, "Kafka producer initialized (topic %s)", cfg.Kafka.AttemptTopic)
	}

	// 7. Outbound channels
	var mailer email.Sender
	if cfg.SMTP.Host != "" {
		mailer, err = email.New(logger, email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			SSL:      cfg.SMTP.SSL,
		})
		if err != nil {
			logger.Errorf(ctx, "Failed to initialize SMTP sender: %v", err)
			return
		}
	} else {
		logger.Warnf(ctx, "smtp.host is empty: email reminders are disabled")
	}

	var smsSender sms.Sender
	if cfg.SMS.GatewayURL != "" {
		smsSender, err = sms.New(logger, sms.Config{
			GatewayURL: cfg.SMS.GatewayURL,
			Username:   cfg.SMS.Username,
			Password:   cfg.SMS.Password,
			APIKey:     cfg.SMS.APIKey,
			Timeout:    cfg.SMS.Timeout,
		})
		if err != nil {
			logger.Errorf(ctx, "Failed to initialize SMS gateway: %v", err)
			return
		}
	} else {
		logger.Warnf(ctx, "sms.gateway_url is empty: SMS reminders are disabled")
	}

	portals := browser.NewFactory(logger, browser.Config{
		Headless:    cfg.Automation.Headless,
		NoSandbox:   cfg.Automation.NoSandbox,
		ChromePath:  cfg.Automation.ChromePath,
		StepTimeout: cfg.Automation.StepTimeout,
	})

	// 8. Discord (optional)
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
			logger.Infof(ctx, "Discord webhook initialized successfully")
		}
	}

	// 9. Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Config:      cfg,

		PostgresDB: postgresDB,

		RedisClient:   redisClient,
		MinIOClient:   minioClient,
		KafkaProducer: kafkaProducer,
		Encrypter:     encrypterInstance,

		Mailer:     mailer,
		SMS:        smsSender,
		Automation: portals,

		Discord: discordClient,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}
}
