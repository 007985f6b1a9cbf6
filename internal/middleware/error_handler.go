package middleware

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"

	"taskboard/internal/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the
// standard response envelope. Handlers raise typed failures via c.Error
// and return; this middleware is the single place a failure body is
// written. Untyped errors default to 500. The stack field is included
// only outside production.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		message := err.Error()

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			status = appErr.Status
			message = appErr.Message
		}

		log.Printf("Error: %s", err)

		if c.Writer.Written() {
			return
		}

		body := gin.H{"success": false, "error": message}
		if !production {
			body["stack"] = string(debug.Stack())
		}
		c.JSON(status, body)
	}
}
