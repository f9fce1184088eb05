package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const ContextRequestIDKey = "request_id"

// Query parameters that must never reach the logs.
var sensitiveQueryParams = map[string]bool{
	"account_number":  true,
	"security_answer": true,
	"password":        true,
	"token":           true,
}

// RequestLogger logs one structured line per request and tags every request
// with an id for correlation. Sensitive query parameters are masked.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"query":      maskedQuery(c),
			"status":     c.Writer.Status(),
			"client_ip":  clientIP(c),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("request completed")
	}
}

func maskedQuery(c *gin.Context) string {
	values := c.Request.URL.Query()
	for key := range values {
		if sensitiveQueryParams[key] {
			values.Set(key, "***")
		}
	}
	return values.Encode()
}
