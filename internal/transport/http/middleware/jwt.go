package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"nano-banking/internal/pkg/jwtutil"
	"nano-banking/internal/transport/http/response"
)

const (
	ContextSessionIDKey  = "session_id"
	ContextCustomerIDKey = "customer_id"
	ContextAdminUserKey  = "admin_user"
)

// AuthSession requires a token minted after identity verification. It puts
// the session and customer ids on the request context.
func AuthSession(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}
		if claims.Admin || claims.CustomerID == "" {
			response.Error(c, 403, response.CodeForbidden, "token not valid for customer endpoints")
			c.Abort()
			return
		}

		c.Set(ContextSessionIDKey, claims.SessionID)
		c.Set(ContextCustomerIDKey, claims.CustomerID)
		c.Next()
	}
}

// AuthAdmin requires an operator token.
func AuthAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}
		if !claims.Admin {
			response.Error(c, 403, response.CodeForbidden, "admin token required")
			c.Abort()
			return
		}

		c.Set(ContextAdminUserKey, claims.Subject)
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret string) (*jwtutil.Claims, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
		c.Abort()
		return nil, false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
		c.Abort()
		return nil, false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	claims, err := jwtutil.ParseToken(secret, token)
	if err != nil {
		response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
		c.Abort()
		return nil, false
	}
	return claims, true
}
