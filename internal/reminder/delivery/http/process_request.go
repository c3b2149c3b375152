package http

import "github.com/gin-gonic/gin"

func (h *handler) processCheckStopRequest(c *gin.Context) (checkStopReq, error) {
	var req checkStopReq
	if err := c.ShouldBindUri(&req); err != nil {
		return req, err
	}
	return req, nil
}
