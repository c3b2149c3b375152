package response

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"

	"followup-srv/pkg/discord"
	"followup-srv/pkg/errors"
	"followup-srv/pkg/redact"

	"github.com/gin-gonic/gin"
)

// OK writes a 200 response wrapping data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: 0,
		Message:   messageSuccess,
		Data:      data,
	})
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{
		ErrorCode: http.StatusUnauthorized,
		Message:   messageUnauthorized,
	})
}

// Error writes err. HTTPErrors keep their status; anything else becomes a 500
// and is reported to Discord when a client is configured.
func Error(c *gin.Context, err error, d discord.IDiscord) {
	var httpErr *errors.HTTPError
	if stdErrors.As(err, &httpErr) {
		c.JSON(httpErr.StatusCode, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		})
		return
	}

	reportToDiscord(c.Request.Context(), d, c.Request.URL.Path, redact.Error(err))
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   messageInternal,
	})
}

// ErrorWithMap writes the mapped HTTPError for err, falling back to Error.
func ErrorWithMap(c *gin.Context, err error, m ErrorMapping, d discord.IDiscord) {
	for target, httpErr := range m {
		if stdErrors.Is(err, target) {
			Error(c, httpErr, d)
			return
		}
	}
	Error(c, err, d)
}

// PanicError answers a recovered panic with a 500.
func PanicError(c *gin.Context, rec any, d discord.IDiscord) {
	reportToDiscord(c.Request.Context(), d, c.Request.URL.Path, redact.String(fmt.Sprint(rec)))
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   messageInternal,
	})
}

func reportToDiscord(ctx context.Context, d discord.IDiscord, path, detail string) {
	if d == nil {
		return
	}
	_ = d.SendError(ctx, "Unhandled error on "+path, detail, nil)
}
