package httpserver

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"followup-srv/internal/middleware"
)

func (srv *HTTPServer) mapHandlers() error {
	ctx := context.Background()
	mw := middleware.New(srv.l, srv.config.Cron.Secret)

	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	api := srv.gin.Group("")

	// Audit first: the reminder engine records through its usecase.
	if err := srv.setupAuditDomain(ctx, api, mw); err != nil {
		return fmt.Errorf("failed to setup audit domain: %w", err)
	}
	if err := srv.setupReminderDomain(ctx, api, mw); err != nil {
		return fmt.Errorf("failed to setup reminder domain: %w", err)
	}

	return nil
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(middleware.Recovery(srv.l, srv.discord))
	if srv.mode != "release" {
		srv.gin.Use(gin.Logger())
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
}
