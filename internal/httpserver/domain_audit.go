package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"followup-srv/internal/audit"
	auditHTTP "followup-srv/internal/audit/delivery/http"
	auditProducer "followup-srv/internal/audit/delivery/kafka/producer"
	"followup-srv/internal/audit/repository"
	auditMemory "followup-srv/internal/audit/repository/memory"
	auditPostgre "followup-srv/internal/audit/repository/postgre"
	auditUsecase "followup-srv/internal/audit/usecase"
	"followup-srv/internal/middleware"
)

func (srv *HTTPServer) setupAuditDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	var repo repository.PostgresRepository
	if srv.postgresDB != nil {
		repo = auditPostgre.New(srv.postgresDB, srv.l)
	} else {
		repo = auditMemory.New()
	}

	var producer audit.Producer
	if srv.kafkaProducer != nil {
		producer = auditProducer.New(srv.l, srv.kafkaProducer)
	}

	srv.auditUC = auditUsecase.New(repo, producer, srv.l)

	cfg := auditHTTP.Config{
		Logger:  srv.l,
		UseCase: srv.auditUC,
		Discord: srv.discord,
	}
	if srv.minioClient != nil {
		cfg.Reports = srv.minioClient
		cfg.ReportBucket = srv.config.MinIO.Bucket
	}
	handler := auditHTTP.New(cfg)
	handler.RegisterRoutes(r, mw)

	srv.l.Infof(ctx, "Audit domain registered")
	return nil
}
