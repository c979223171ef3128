// Package middleware provides gin middleware shared by every route.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderXRequestID carries the request id in both directions.
	HeaderXRequestID = "X-Request-ID"

	// ContextRequestID is the gin context key for the request id.
	ContextRequestID = "request_id"
)

// RequestID reuses the caller's X-Request-ID or generates a new one, and echoes it back.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextRequestID, requestID)
		c.Header(HeaderXRequestID, requestID)
		c.Next()
	}
}
