package middleware

import (
	"log/slog"
	"net/http"

	"cardshop/internal/handler/httperr"
	"cardshop/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logServerErrors(c)
		if c.Writer.Written() {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				// Public: Meta ⇒ Return as is
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.JSON(http.StatusInternalServerError, resp)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// AbortWithError has usually written the body already, so server side
// failures are logged here before the written check.
func logServerErrors(c *gin.Context) {
	for _, e := range c.Errors {
		resp, ok := e.Meta.(httperr.Response)
		if !ok || resp.Status < http.StatusInternalServerError {
			continue
		}
		slog.Error("request failed",
			"request_id", GetRequestID(c),
			"path", c.Request.URL.Path,
			"error", e.Err.Error(),
			"stack", errs.ExtractStackLines(e.Err, 8))
	}
}
