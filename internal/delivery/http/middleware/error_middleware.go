package middleware

import (
	"errors"
	"net/http"

	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/pkg/apperror"
	"go-applytrack-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler drains errors attached to the context and maps them to the
// response envelope. Unexpected errors are logged server-side and replaced
// with a generic 500 so internals never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed", "path", c.FullPath(), "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		logger.Log.Error("unexpected error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
