package middleware

import (
	"crypto/subtle"
	"strings"

	"followup-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// CronAuth admits requests carrying "Authorization: Bearer <cron secret>".
// An unset secret rejects everything.
func (m Middleware) CronAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.validSecret(c.GetHeader("Authorization")) {
			m.l.Warnf(c.Request.Context(), "middleware.CronAuth: rejected %s %s from %s",
				c.Request.Method, c.Request.URL.Path, c.ClientIP())
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m Middleware) validSecret(header string) bool {
	if m.cronSecret == "" || !strings.HasPrefix(header, bearerPrefix) {
		return false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return subtle.ConstantTimeCompare([]byte(token), []byte(m.cronSecret)) == 1
}
