package middleware

import (
	"time" // Request timing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request IDs
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// RequestIDHeader carries the request ID in and out
const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an ID and writes one access log line
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader) // Reuse the caller's ID when present
		if requestID == "" {
			requestID = uuid.NewString() // Otherwise mint one
		}
		c.Set("requestID", requestID)        // Expose to handlers
		c.Header(RequestIDHeader, requestID) // Echo back to the client
		start := time.Now()                  // Start timing
		c.Next()                             // Run the rest of the chain
		entry := logrus.WithFields(logrus.Fields{
			"request_id": requestID,                        // Request ID
			"method":     c.Request.Method,                 // HTTP method
			"path":       c.FullPath(),                     // Route template, not the raw URL
			"status":     c.Writer.Status(),                // Response status
			"latency_ms": time.Since(start).Milliseconds(), // Handling time
			"client_ip":  c.ClientIP(),                     // Caller address
		})
		if userID, ok := c.Get(ContextUserID); ok {
			entry = entry.WithField("user_id", userID) // Authenticated caller
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request served")
		}
	}
}
