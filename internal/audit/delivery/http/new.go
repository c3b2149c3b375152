package http

import (
	"followup-srv/internal/audit"
	"followup-srv/internal/middleware"
	"followup-srv/pkg/discord"
	"followup-srv/pkg/log"
	"followup-srv/pkg/minio"

	"github.com/gin-gonic/gin"
)

// Handler serves the reminder ledger.
type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

// Config wires the ledger handler. Reports and ReportBucket are optional; without
// them stored reports are listed by object key only.
type Config struct {
	Logger       log.Logger
	UseCase      audit.UseCase
	Reports      minio.FileSharer
	ReportBucket string
	Discord      discord.IDiscord
}

type handler struct {
	l            log.Logger
	uc           audit.UseCase
	reports      minio.FileSharer
	reportBucket string
	discord      discord.IDiscord
}

func New(cfg Config) Handler {
	return &handler{
		l:            cfg.Logger,
		uc:           cfg.UseCase,
		reports:      cfg.Reports,
		reportBucket: cfg.ReportBucket,
		discord:      cfg.Discord,
	}
}
