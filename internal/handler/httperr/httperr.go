package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ctxLegacyStatusKey = "legacy_error_status"

type Response struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

// UseLegacyStatus makes every error response on the request go out as 500.
func UseLegacyStatus(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enabled {
			c.Set(ctxLegacyStatusKey, true)
		}
		c.Next()
	}
}

// StatusFor returns the status to send for an error response.
func StatusFor(c *gin.Context, status int) int {
	if status >= http.StatusBadRequest && c.GetBool(ctxLegacyStatusKey) {
		return http.StatusInternalServerError
	}
	return status
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: StatusFor(c, status), Message: msg}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
