package http

import (
	"github.com/gin-gonic/gin"
)

func (h *handler) processListRemindersRequest(c *gin.Context) (listRemindersReq, error) {
	var req listRemindersReq
	if err := c.ShouldBindUri(&req); err != nil {
		return req, err
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, nil
}
