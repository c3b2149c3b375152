package http

import (
	"net/http"

	"followup-srv/pkg/redact"
	"followup-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// RunCycle - Run one reminder cycle. The body always carries the partial result.
func (h *handler) RunCycle(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.uc.RunCycle(ctx)
	if err != nil {
		h.l.Errorf(ctx, "reminder.delivery.http.RunCycle: usecase RunCycle failed: %v", err)
		h.alertFatal(c, err)
		c.JSON(http.StatusInternalServerError, newCycleResp(result, redact.Error(err)))
		return
	}

	if len(result.Errors) > 0 {
		h.alertPartial(c, result)
	}
	c.JSON(http.StatusOK, newCycleResp(result, ""))
}

// CheckStop - Evaluate the stop conditions of one dossier now.
func (h *handler) CheckStop(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCheckStopRequest(c)
	if err != nil {
		h.l.Warnf(ctx, "reminder.delivery.http.CheckStop: processCheckStopRequest failed: %v", err)
		response.Error(c, errDossierRequired, h.discord)
		return
	}

	decision, err := h.uc.ShouldStop(ctx, req.DossierID)
	if err != nil {
		h.l.Errorf(ctx, "reminder.delivery.http.CheckStop: usecase ShouldStop failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}
	response.OK(c, newStopResp(req.DossierID, decision))
}
