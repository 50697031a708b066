package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/greenspoon/backend/internal/apperr"
)

// ErrorHandler renders errors collected during the request as a JSON
// `{"message": ...}` body with the status the error's classification maps
// to. Internal causes are logged, never exposed.
func ErrorHandler(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors[0].Err

		status := http.StatusInternalServerError
		message := "Internal Server Error"

		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			status = appErr.HTTPStatus()
			message = appErr.Message
		}

		entry := log.WithFields(logrus.Fields{
			"status": status,
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"ip":     c.ClientIP(),
		})
		if status >= http.StatusInternalServerError {
			entry.WithError(err).Error(message)
		} else {
			entry.Info(message)
		}

		c.JSON(status, gin.H{"message": message})
	}
}
