package http

import (
	"followup-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1")
	api.Use(mw.CronAuth())
	{
		api.GET("/dossiers/:dossier_id/reminders", h.ListReminders)
	}
}
