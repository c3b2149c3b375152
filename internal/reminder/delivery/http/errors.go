package http

import (
	"errors"
	"fmt"
	"strings"

	"followup-srv/internal/reminder"
	pkgErrors "followup-srv/pkg/errors"
	"followup-srv/pkg/redact"

	"github.com/gin-gonic/gin"
)

var (
	errDossierRequired = pkgErrors.NewHTTPError(
		400, "dossier_id is required",
	)
	errDossierNotFound = pkgErrors.NewHTTPError(
		404, "Dossier not found",
	)
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, reminder.ErrDossierRequired):
		return errDossierRequired
	case errors.Is(err, reminder.ErrDossierNotFound):
		return errDossierNotFound
	default:
		return err
	}
}

const maxAlertErrors = 10

func (h *handler) alertFatal(c *gin.Context, err error) {
	if h.discord == nil {
		return
	}
	if derr := h.discord.SendError(c.Request.Context(), "Reminder cycle aborted", redact.Error(err), nil); derr != nil {
		h.l.Warnf(c.Request.Context(), "reminder.delivery.http.alertFatal: discord: %v", derr)
	}
}

func (h *handler) alertPartial(c *gin.Context, result reminder.CycleResult) {
	if h.discord == nil {
		return
	}
	lines := result.Errors
	if len(lines) > maxAlertErrors {
		lines = append(lines[:maxAlertErrors:maxAlertErrors], fmt.Sprintf("... and %d more", len(result.Errors)-maxAlertErrors))
	}
	title := fmt.Sprintf("Reminder cycle finished with %d dossier error(s)", len(result.Errors))
	if derr := h.discord.SendWarning(c.Request.Context(), title, strings.Join(lines, "\n")); derr != nil {
		h.l.Warnf(c.Request.Context(), "reminder.delivery.http.alertPartial: discord: %v", derr)
	}
}
