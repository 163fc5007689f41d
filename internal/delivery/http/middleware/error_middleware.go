package middleware

import (
	"errors"
	"net/http"
	"time"

	"talentmatch-backend/internal/delivery/http/response"
	"talentmatch-backend/pkg/apperror"
	"talentmatch-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors appended to the gin context into the
// standard response envelope. Client errors keep their message and
// category; anything else collapses to the generic banner message so
// internal details never leak. Server-side failures are logged with the
// request metadata; logging is best-effort and never blocks the response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// A bare error takes the status the handler already wrote,
			// so 502/503 keep their display category
			status := c.Writer.Status()
			if status < http.StatusBadRequest {
				status = http.StatusInternalServerError
			}
			appErr = apperror.FromStatus(status, err)
		}

		if appErr.Code >= http.StatusInternalServerError {
			logError(c, appErr)
		}

		response.Error(c, appErr.Code, appErr.Message, gin.H{"category": appErr.Category})
	}
}

func logError(c *gin.Context, appErr *apperror.AppError) {
	if logger.Log == nil {
		return
	}
	attrs := []any{
		"status", appErr.Code,
		"category", string(appErr.Category),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"timestamp", time.Now().Format(time.RFC3339),
	}
	if reqID := c.GetString("RequestID"); reqID != "" {
		attrs = append(attrs, "request_id", reqID)
	}
	if appErr.Err != nil {
		attrs = append(attrs, "error", appErr.Err.Error())
	}
	logger.Log.Error("request failed", attrs...)
}
