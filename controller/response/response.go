// Package response writes the JSON error envelope shared by all handlers.
package response

import (
	"sync/atomic"

	"taskflow/apperror"
	"taskflow/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestId"

var exposeErrors atomic.Bool

// ExposeErrors controls whether internal error text is echoed to clients.
func ExposeErrors(on bool) {
	exposeErrors.Store(on)
}

// Error aborts the request with {message, error?} and the status for the
// error's code. Uncategorized errors become 500.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)
	body := gin.H{"message": appErr.Message}

	switch appErr.Code {
	case apperror.CodeInternal, apperror.CodeUnavailable:
		logging.Logger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("Event ID: REQUEST_FAILED, Description: request failed")
		if exposeErrors.Load() && appErr.Cause != nil {
			body["error"] = appErr.Cause.Error()
		}
	}
	c.AbortWithStatusJSON(appErr.Code.HTTPStatus(), body)
}

// BindError reports a request body or query that failed to bind.
func BindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperror.CodeInvalidInput.HTTPStatus(), gin.H{
		"message": "Invalid request",
		"error":   err.Error(),
	})
}
