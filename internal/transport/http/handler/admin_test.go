package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"nano-banking/internal/app"
	"nano-banking/internal/model"
	"nano-banking/internal/transport/http/middleware"
)

type stubEscalationStore struct{}

func (stubEscalationStore) Create(*model.Escalation) error { return nil }
func (stubEscalationStore) ListByStatus(status string, limit int) ([]model.Escalation, error) {
	return []model.Escalation{{TicketID: "ESC-20260101-abc123", Status: status}}, nil
}

type stubAuditStore struct{}

func (stubAuditStore) ListBySessionID(sessionID string) ([]model.AuditLog, error) {
	return []model.AuditLog{{SessionID: sessionID, Action: "process_message"}}, nil
}

func newAdminRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt err: %v", err)
	}

	support := app.NewSupportService(stubEscalationStore{}, stubAuditStore{}, nil, "Bank Of AI")
	adminService := app.NewAdminService(support, stubAuditStore{}, "admin", string(hash), "test-secret", time.Minute)
	adminHandler := NewAdminHandler(adminService)

	router := gin.New()
	router.POST("/admin/login", adminHandler.Login)
	protected := router.Group("/admin")
	protected.Use(middleware.AuthAdmin("test-secret"))
	protected.GET("/audit-logs", adminHandler.AuditLogs)
	protected.GET("/escalations", adminHandler.Escalations)
	return router
}

func postLogin(t *testing.T, router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdminLoginSuccess(t *testing.T) {
	router := newAdminRouter(t)

	rec := postLogin(t, router, "admin", "hunter2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if payload.Data.Token == "" {
		t.Fatal("no token in response")
	}

	// The minted token opens the protected endpoints.
	req := httptest.NewRequest(http.MethodGet, "/admin/audit-logs?session_id=sess-1", nil)
	req.Header.Set("Authorization", "Bearer "+payload.Data.Token)
	auditRec := httptest.NewRecorder()
	router.ServeHTTP(auditRec, req)
	if auditRec.Code != http.StatusOK {
		t.Fatalf("audit-logs status = %d, body = %s", auditRec.Code, auditRec.Body.String())
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	rec := postLogin(t, newAdminRouter(t), "admin", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAdminLoginWrongUsername(t *testing.T) {
	rec := postLogin(t, newAdminRouter(t), "root", "hunter2")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAdminLoginBadPayload(t *testing.T) {
	router := newAdminRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	router := newAdminRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/escalations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}
