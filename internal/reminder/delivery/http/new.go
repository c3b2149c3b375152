package http

import (
	"followup-srv/internal/middleware"
	"followup-srv/internal/reminder"
	"followup-srv/pkg/discord"
	"followup-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

// Handler serves the cycle trigger.
type Handler interface {
	RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware)
}

type handler struct {
	l       log.Logger
	uc      reminder.UseCase
	discord discord.IDiscord
}

func New(l log.Logger, uc reminder.UseCase, discord discord.IDiscord) Handler {
	return &handler{l: l, uc: uc, discord: discord}
}
