package usecase

import (
	"time"

	"followup-srv/internal/audit"
	"followup-srv/internal/automation"
	"followup-srv/internal/reminder"
	"followup-srv/internal/reminder/repository"
	"followup-srv/pkg/email"
	"followup-srv/pkg/log"
	"followup-srv/pkg/minio"
	"followup-srv/pkg/phone"
	"followup-srv/pkg/sms"
)

const (
	defaultDossierTimeout = 3 * time.Minute
	defaultWriteTimeout   = 10 * time.Second
	defaultReportPrefix   = "reports"
)

// Config tunes one engine instance.
type Config struct {
	// DossierTimeout bounds all network work done for a single dossier.
	DossierTimeout time.Duration

	// PortalTimeout bounds the portal session inside the dossier budget so the
	// email fallback keeps time to run. Zero means two thirds of DossierTimeout.
	PortalTimeout time.Duration

	// WriteTimeout bounds ledger and status writes. They run detached from the
	// dossier deadline.
	WriteTimeout time.Duration

	ReportBucket string
	ReportPrefix string
	PhoneRegion  string
}

// Deps are the collaborators of the engine. Factory, Lock, Mailer, SMS and
// Storage may be nil; the matching channel or feature is then unavailable.
type Deps struct {
	Repo     repository.PostgresRepository
	Recorder audit.Recorder
	Factory  automation.Factory
	Lock     reminder.SiteLock
	Mailer   email.Sender
	SMS      sms.Sender
	Storage  minio.MinIO
}

type implUseCase struct {
	repo     repository.PostgresRepository
	recorder audit.Recorder
	factory  automation.Factory
	lock     reminder.SiteLock
	mailer   email.Sender
	sms      sms.Sender
	storage  minio.MinIO
	l        log.Logger
	cfg      Config
	now      func() time.Time
}

// New creates the reminder UseCase.
func New(l log.Logger, deps Deps, cfg Config) reminder.UseCase {
	if cfg.DossierTimeout <= 0 {
		cfg.DossierTimeout = defaultDossierTimeout
	}
	if cfg.PortalTimeout <= 0 || cfg.PortalTimeout >= cfg.DossierTimeout {
		cfg.PortalTimeout = cfg.DossierTimeout * 2 / 3
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.ReportPrefix == "" {
		cfg.ReportPrefix = defaultReportPrefix
	}
	if cfg.PhoneRegion == "" {
		cfg.PhoneRegion = phone.DefaultRegion
	}

	return &implUseCase{
		repo:     deps.Repo,
		recorder: deps.Recorder,
		factory:  deps.Factory,
		lock:     deps.Lock,
		mailer:   deps.Mailer,
		sms:      deps.SMS,
		storage:  deps.Storage,
		l:        l,
		cfg:      cfg,
		now:      time.Now,
	}
}
