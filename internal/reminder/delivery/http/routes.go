package http

import (
	"followup-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	api := r.Group("/api/v1/reminders")
	api.Use(mw.CronAuth())
	{
		api.POST("/cycle", h.RunCycle)
		api.GET("/cycle", h.RunCycle)
		api.POST("/dossiers/:dossier_id/stop-check", h.CheckStop)
	}
}
