package middleware

import (
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(string(domain.KeyRequestID))

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"request_id", requestID,
					"method", c.Request.Method,
					"path", c.FullPath(),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("unhandled error",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
	}
}
