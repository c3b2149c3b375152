package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds all service configuration.
type Config struct {
	// Environment Configuration
	Environment EnvironmentConfig

	// Server Configuration
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Store - Dossiers, settings, ledger
	Store    StoreConfig
	Postgres PostgresConfig

	// Redis - Portal session locks
	Redis RedisConfig

	// MinIO - Reports retrieved from expert portals
	MinIO MinIOConfig

	// Kafka - Attempt events, document ingestion
	Kafka KafkaConfig

	// Outbound transports
	SMTP SMTPConfig
	SMS  SMSConfig

	// Reminder engine
	Reminder   ReminderConfig
	Automation AutomationConfig
	Cron       CronConfig
	Scheduler  SchedulerConfig

	Encrypter EncrypterConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
}

// EnvironmentConfig is the configuration for the deployment environment.
type EnvironmentConfig struct {
	Name string
}

// HTTPServerConfig is the configuration for the HTTP server
type HTTPServerConfig struct {
	Host string
	Port int
	Mode string
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// StoreConfig selects the relational store implementation.
type StoreConfig struct {
	Driver string
}

// PostgresConfig is the configuration for Postgres
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Schema   string
}

// RedisConfig is the configuration for Redis
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// MinIOConfig is the configuration for MinIO
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
}

// KafkaConfig is the configuration for Kafka. Leave Brokers empty to disable event publishing.
type KafkaConfig struct {
	Brokers       []string
	AttemptTopic  string
	DocumentTopic string
	GroupID       string
}

// SMTPConfig is the configuration for the email relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	SSL      bool
}

// SMSConfig is the configuration for the SMS gateway.
type SMSConfig struct {
	GatewayURL    string
	Username      string
	Password      string
	APIKey        string
	Timeout       time.Duration
	DefaultRegion string
}

// ReminderConfig tunes the reminder cycle.
type ReminderConfig struct {
	DossierTimeout time.Duration
	PortalTimeout  time.Duration
	WriteTimeout   time.Duration
	ReportPrefix   string
}

// AutomationConfig tunes the headless browser driver.
type AutomationConfig struct {
	Headless    bool
	NoSandbox   bool
	ChromePath  string
	StepTimeout time.Duration
	LockTTL     time.Duration
}

// CronConfig holds the shared secret the scheduler presents to the trigger.
type CronConfig struct {
	Secret string
}

// SchedulerConfig drives cmd/scheduler.
type SchedulerConfig struct {
	Spec       string
	TriggerURL string
	Timeout    time.Duration
}

// EncrypterConfig is the configuration for the encrypter
type EncrypterConfig struct {
	Key string
}

type DiscordConfig struct {
	WebhookID    string
	WebhookToken string
}

// Load loads configuration using Viper
func Load() (*Config, error) {
	viper.SetConfigName("followup-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/followup/")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Read config file (optional - will use env vars if file not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Host = viper.GetString("http_server.host")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Store
	cfg.Store.Driver = strings.ToLower(viper.GetString("store.driver"))
	cfg.Postgres.Host = viper.GetString("postgres.host")
	cfg.Postgres.Port = viper.GetInt("postgres.port")
	cfg.Postgres.User = viper.GetString("postgres.user")
	cfg.Postgres.Password = viper.GetString("postgres.password")
	cfg.Postgres.DBName = viper.GetString("postgres.dbname")
	cfg.Postgres.SSLMode = viper.GetString("postgres.sslmode")
	cfg.Postgres.Schema = viper.GetString("postgres.schema")

	// Redis
	cfg.Redis.Host = viper.GetString("redis.host")
	cfg.Redis.Port = viper.GetInt("redis.port")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	// MinIO
	cfg.MinIO.Endpoint = viper.GetString("minio.endpoint")
	cfg.MinIO.AccessKey = viper.GetString("minio.access_key")
	cfg.MinIO.SecretKey = viper.GetString("minio.secret_key")
	cfg.MinIO.UseSSL = viper.GetBool("minio.use_ssl")
	cfg.MinIO.Region = viper.GetString("minio.region")
	cfg.MinIO.Bucket = viper.GetString("minio.bucket")

	// Kafka
	cfg.Kafka.Brokers = viper.GetStringSlice("kafka.brokers")
	cfg.Kafka.AttemptTopic = viper.GetString("kafka.attempt_topic")
	cfg.Kafka.DocumentTopic = viper.GetString("kafka.document_topic")
	cfg.Kafka.GroupID = viper.GetString("kafka.group_id")

	// SMTP
	cfg.SMTP.Host = viper.GetString("smtp.host")
	cfg.SMTP.Port = viper.GetInt("smtp.port")
	cfg.SMTP.Username = viper.GetString("smtp.username")
	cfg.SMTP.Password = viper.GetString("smtp.password")
	cfg.SMTP.SSL = viper.GetBool("smtp.ssl")

	// SMS
	cfg.SMS.GatewayURL = viper.GetString("sms.gateway_url")
	cfg.SMS.Username = viper.GetString("sms.username")
	cfg.SMS.Password = viper.GetString("sms.password")
	cfg.SMS.APIKey = viper.GetString("sms.api_key")
	cfg.SMS.Timeout = viper.GetDuration("sms.timeout")
	cfg.SMS.DefaultRegion = viper.GetString("sms.default_region")

	// Reminder engine
	cfg.Reminder.DossierTimeout = viper.GetDuration("reminder.dossier_timeout")
	cfg.Reminder.PortalTimeout = viper.GetDuration("reminder.portal_timeout")
	cfg.Reminder.WriteTimeout = viper.GetDuration("reminder.write_timeout")
	cfg.Reminder.ReportPrefix = viper.GetString("reminder.report_prefix")
	cfg.Automation.Headless = viper.GetBool("automation.headless")
	cfg.Automation.NoSandbox = viper.GetBool("automation.no_sandbox")
	cfg.Automation.ChromePath = viper.GetString("automation.chrome_path")
	cfg.Automation.StepTimeout = viper.GetDuration("automation.step_timeout")
	cfg.Automation.LockTTL = viper.GetDuration("automation.lock_ttl")

	// Scheduler
	cfg.Cron.Secret = viper.GetString("cron.secret")
	cfg.Scheduler.Spec = viper.GetString("scheduler.spec")
	cfg.Scheduler.TriggerURL = viper.GetString("scheduler.trigger_url")
	cfg.Scheduler.Timeout = viper.GetDuration("scheduler.timeout")

	// Encrypter
	cfg.Encrypter.Key = viper.GetString("encrypter.key")

	// Discord
	cfg.Discord.WebhookID = viper.GetString("discord.webhook_id")
	cfg.Discord.WebhookToken = viper.GetString("discord.webhook_token")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment.name", "production")

	// HTTP Server
	viper.SetDefault("http_server.host", "")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")

	// Logger
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Store
	viper.SetDefault("store.driver", StoreDriverPostgres)
	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.user", "postgres")
	viper.SetDefault("postgres.password", "postgres")
	viper.SetDefault("postgres.dbname", "postgres")
	viper.SetDefault("postgres.sslmode", "prefer")
	viper.SetDefault("postgres.schema", "followup")

	// Redis
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// MinIO
	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.access_key", "minioadmin")
	viper.SetDefault("minio.secret_key", "minioadmin")
	viper.SetDefault("minio.use_ssl", false)
	viper.SetDefault("minio.region", "us-east-1")
	viper.SetDefault("minio.bucket", "followup-reports")

	// Kafka
	viper.SetDefault("kafka.brokers", []string{})
	viper.SetDefault("kafka.attempt_topic", "reminder.attempt.recorded")
	viper.SetDefault("kafka.document_topic", "document.ingested")
	viper.SetDefault("kafka.group_id", "followup-srv")

	// SMTP
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.ssl", false)

	// SMS
	viper.SetDefault("sms.timeout", 10*time.Second)
	viper.SetDefault("sms.default_region", "FR")

	// Reminder engine
	viper.SetDefault("reminder.dossier_timeout", 3*time.Minute)
	viper.SetDefault("reminder.write_timeout", 10*time.Second)
	viper.SetDefault("reminder.report_prefix", "reports")
	viper.SetDefault("automation.headless", true)
	viper.SetDefault("automation.no_sandbox", false)
	viper.SetDefault("automation.step_timeout", 30*time.Second)
	viper.SetDefault("automation.lock_ttl", 5*time.Minute)

	// Scheduler
	viper.SetDefault("scheduler.spec", "0 8 * * 1-5")
	viper.SetDefault("scheduler.trigger_url", "http://localhost:8080/api/v1/reminders/cycle")
	viper.SetDefault("scheduler.timeout", 15*time.Minute)
}

func validate(cfg *Config) error {
	switch cfg.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("store.driver must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, cfg.Store.Driver)
	}

	if cfg.Cron.Secret == "" {
		return fmt.Errorf("cron.secret is required")
	}
	if len(cfg.Cron.Secret) < 16 {
		return fmt.Errorf("cron.secret must be at least 16 characters")
	}

	if cfg.Encrypter.Key == "" {
		return fmt.Errorf("encrypter.key is required")
	}

	if cfg.Reminder.DossierTimeout <= 0 {
		return fmt.Errorf("reminder.dossier_timeout must be positive")
	}
	if cfg.Reminder.PortalTimeout > 0 && cfg.Reminder.PortalTimeout >= cfg.Reminder.DossierTimeout {
		return fmt.Errorf("reminder.portal_timeout must be shorter than reminder.dossier_timeout")
	}
	if cfg.Automation.StepTimeout <= 0 {
		return fmt.Errorf("automation.step_timeout must be positive")
	}
	if cfg.Automation.StepTimeout > cfg.Reminder.DossierTimeout {
		return fmt.Errorf("automation.step_timeout must not exceed reminder.dossier_timeout")
	}

	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.AttemptTopic == "" {
		return fmt.Errorf("kafka.attempt_topic is required when kafka.brokers is set")
	}

	return nil
}
