package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"nano-banking/internal/pkg/jwtutil"
)

const testSecret = "test-secret"

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/customer", AuthSession(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"session_id":  c.GetString(ContextSessionIDKey),
			"customer_id": c.GetString(ContextCustomerIDKey),
		})
	})
	router.GET("/admin", AuthAdmin(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextAdminUserKey)})
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthSessionAcceptsCustomerToken(t *testing.T) {
	router := testRouter()
	token, err := jwtutil.GenerateSessionToken(testSecret, time.Minute, "sess-1", "cust-1")
	if err != nil {
		t.Fatalf("GenerateSessionToken err: %v", err)
	}

	rec := doRequest(t, router, "/customer", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAuthSessionRejectsMissingHeader(t *testing.T) {
	rec := doRequest(t, testRouter(), "/customer", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthSessionRejectsBadScheme(t *testing.T) {
	rec := doRequest(t, testRouter(), "/customer", "Basic abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthSessionRejectsAdminToken(t *testing.T) {
	router := testRouter()
	token, err := jwtutil.GenerateAdminToken(testSecret, time.Minute, "operator")
	if err != nil {
		t.Fatalf("GenerateAdminToken err: %v", err)
	}

	rec := doRequest(t, router, "/customer", "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthAdminRejectsCustomerToken(t *testing.T) {
	router := testRouter()
	token, err := jwtutil.GenerateSessionToken(testSecret, time.Minute, "sess-1", "cust-1")
	if err != nil {
		t.Fatalf("GenerateSessionToken err: %v", err)
	}

	rec := doRequest(t, router, "/admin", "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthAdminAcceptsAdminToken(t *testing.T) {
	router := testRouter()
	token, err := jwtutil.GenerateAdminToken(testSecret, time.Minute, "operator")
	if err != nil {
		t.Fatalf("GenerateAdminToken err: %v", err)
	}

	rec := doRequest(t, router, "/admin", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	router := testRouter()
	token, err := jwtutil.GenerateSessionToken(testSecret, -time.Minute, "sess-1", "cust-1")
	if err != nil {
		t.Fatalf("GenerateSessionToken err: %v", err)
	}

	rec := doRequest(t, router, "/customer", "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}
