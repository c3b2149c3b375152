package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"followup-srv/config"
	"followup-srv/internal/audit"
	"followup-srv/internal/automation"
	"followup-srv/pkg/discord"
	"followup-srv/pkg/email"
	"followup-srv/pkg/encrypter"
	pkgKafka "followup-srv/pkg/kafka"
	"followup-srv/pkg/log"
	"followup-srv/pkg/minio"
	pkgRedis "followup-srv/pkg/redis"
	"followup-srv/pkg/sms"
)

type HTTPServer struct {
	// Server Configuration
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string
	config      *config.Config

	// Database Configuration. A nil postgresDB selects the in-memory store.
	postgresDB *sqlx.DB

	// Infrastructure clients (optional)
	redisClient   pkgRedis.IRedis
	minioClient   minio.MinIO
	kafkaProducer pkgKafka.IProducer
	encrypter     encrypter.Encrypter

	// Outbound channels (optional)
	mailer     email.Sender
	smsSender  sms.Sender
	automation automation.Factory

	// Monitoring & Notification Configuration
	discord discord.IDiscord

	// Shared usecases
	auditUC audit.UseCase
}

type Config struct {
	// Server Configuration
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string
	Config      *config.Config

	// Database Configuration
	PostgresDB *sqlx.DB

	// Infrastructure clients
	RedisClient   pkgRedis.IRedis
	MinIOClient   minio.MinIO
	KafkaProducer pkgKafka.IProducer
	Encrypter     encrypter.Encrypter

	// Outbound channels
	Mailer     email.Sender
	SMS        sms.Sender
	Automation automation.Factory

	// Monitoring & Notification Configuration
	Discord discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
// Config.Logger is used when logger is nil.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)
	if logger == nil {
		logger = cfg.Logger
	}

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		config:      cfg.Config,

		postgresDB: cfg.PostgresDB,

		redisClient:   cfg.RedisClient,
		minioClient:   cfg.MinIOClient,
		kafkaProducer: cfg.KafkaProducer,
		encrypter:     cfg.Encrypter,

		mailer:     cfg.Mailer,
		smsSender:  cfg.SMS,
		automation: cfg.Automation,

		discord: cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.config == nil {
		return errors.New("config is required")
	}
	if srv.config.Cron.Secret == "" {
		return errors.New("cron secret is required")
	}
	if srv.postgresDB != nil && srv.encrypter == nil {
		return errors.New("encrypter is required with the postgres store")
	}

	return nil
}
