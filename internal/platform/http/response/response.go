// Package response renders application errors as HTTP responses.
package response

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/platform/apperr"
	"task_backend/internal/platform/http/middleware"
)

// InternalMessage is the only text a caller sees for a 500.
const InternalMessage = "Internal server error."

// Error maps err to a status code and writes the JSON error body. attrs are
// extra slog key/value pairs (operation, resource id, username) for the log line.
func Error(c *gin.Context, err error, attrs ...any) {
	args := append([]any{
		"error", err,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"remote_addr", c.ClientIP(),
		"request_id", c.GetString(middleware.ContextRequestID),
	}, attrs...)

	appErr, ok := apperr.As(err)
	if !ok || appErr.HTTPStatus() >= http.StatusInternalServerError {
		kind := apperr.KindInternal
		if ok {
			kind = appErr.Kind()
		}
		slog.ErrorContext(c.Request.Context(), "request failed", append(args, "kind", kind.String())...)
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: InternalMessage,
		})
		return
	}

	slog.WarnContext(c.Request.Context(), "request rejected", append(args, "kind", appErr.Kind().String())...)
	c.AbortWithStatusJSON(appErr.HTTPStatus(), api.ErrorResponse{
		Code:    appErr.Code(),
		Message: appErr.Message(),
	})
}
