package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"followup-srv/internal/middleware"
	"followup-srv/internal/reminder"
	reminderHTTP "followup-srv/internal/reminder/delivery/http"
	"followup-srv/internal/reminder/repository"
	reminderMemory "followup-srv/internal/reminder/repository/memory"
	reminderPostgre "followup-srv/internal/reminder/repository/postgre"
	reminderRedis "followup-srv/internal/reminder/repository/redis"
	reminderUsecase "followup-srv/internal/reminder/usecase"
)

// setupReminderDomain initializes the reminder engine (repo -> usecase -> delivery)
func (srv *HTTPServer) setupReminderDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	if srv.auditUC == nil {
		return errors.New("audit usecase must be initialized first")
	}

	var repo repository.PostgresRepository
	if srv.postgresDB != nil {
		repo = reminderPostgre.New(srv.postgresDB, srv.encrypter, srv.l)
	} else {
		repo = reminderMemory.New()
	}

	var lock reminder.SiteLock
	if srv.redisClient != nil {
		lock = reminderRedis.New(srv.redisClient, srv.config.Automation.LockTTL, srv.l)
	} else {
		lock = reminderMemory.NewSiteLock()
	}

	deps := reminderUsecase.Deps{
		Repo:     repo,
		Recorder: srv.auditUC,
		Factory:  srv.automation,
		Lock:     lock,
		Mailer:   srv.mailer,
		SMS:      srv.smsSender,
		Storage:  srv.minioClient,
	}

	uc := reminderUsecase.New(srv.l, deps, reminderUsecase.Config{
		DossierTimeout: srv.config.Reminder.DossierTimeout,
		PortalTimeout:  srv.config.Reminder.PortalTimeout,
		WriteTimeout:   srv.config.Reminder.WriteTimeout,
		ReportBucket:   srv.config.MinIO.Bucket,
		ReportPrefix:   srv.config.Reminder.ReportPrefix,
		PhoneRegion:    srv.config.SMS.DefaultRegion,
	})

	handler := reminderHTTP.New(srv.l, uc, srv.discord)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Reminder domain registered")
	return nil
}
