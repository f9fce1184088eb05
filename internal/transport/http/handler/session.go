package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nano-banking/internal/app"
	"nano-banking/internal/transport/http/response"
)

type SessionHandler struct {
	sessionService *app.SessionService
	supportService *app.SupportService
}

func NewSessionHandler(sessionService *app.SessionService, supportService *app.SupportService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		supportService: supportService,
	}
}

func (h *SessionHandler) Create(c *gin.Context) {
	session, err := h.sessionService.Create(c.Request.Context(), "")
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create session failed")
		return
	}

	response.OK(c, gin.H{
		"session_id":             session.SessionID,
		"created_at":             session.CreatedAt,
		"timeout_minutes":        int(h.sessionService.Timeout().Minutes()),
		"verification_required":  true,
		"supported_capabilities": []string{"balance_inquiry", "transaction_history", "update_information", "document_management", "escalation"},
	})
}

func (h *SessionHandler) Terminate(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("id"))
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid session id")
		return
	}

	if err := h.sessionService.Terminate(c.Request.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "terminate session failed")
		}
		return
	}

	response.OK(c, gin.H{"terminated_session_id": sessionID})
}

func (h *SessionHandler) Summary(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Param("id"))
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid session id")
		return
	}

	summary, err := h.supportService.Summarize(c.Request.Context(), sessionID, "")
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNoSessionActivity):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "generate summary failed")
		}
		return
	}

	response.OK(c, summary)
}
