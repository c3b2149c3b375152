package http

import (
	"followup-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// ListReminders - One page of ledger entries of a dossier, newest first.
func (h *handler) ListReminders(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListRemindersRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "audit.delivery.http.ListReminders: processListRemindersRequest failed: %v", err)
		response.Error(c, errInvalidQuery, h.discord)
		return
	}

	out, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "audit.delivery.http.ListReminders: usecase List failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newListRemindersResp(ctx, req.DossierID, out))
}
