package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"nano-banking/internal/transport/http/response"
)

// Health probes must not be throttled.
var rateLimitExemptPaths = map[string]bool{
	"/health":          true,
	"/health/detailed": true,
	"/health/ready":    true,
	"/health/live":     true,
	"/api/v1/health":   true,
}

// RateLimit enforces a fixed per-minute window per client IP, counted in
// Redis so the limit holds across replicas. Redis outages fail open.
func RateLimit(client *redisv9.Client, perMinute int, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 || rateLimitExemptPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		ip := clientIP(c)
		key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/60)

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.WithError(err).Warn("rate limit counter unavailable")
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, time.Minute)
		}

		if count > int64(perMinute) {
			response.Error(c, 429, response.CodeRateLimited, "rate limit exceeded, try again in a minute")
			c.Abort()
			return
		}
		c.Next()
	}
}

func clientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return strings.TrimSpace(real)
	}
	return c.ClientIP()
}
