package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nano-banking/internal/app"
	"nano-banking/internal/transport/http/middleware"
	"nano-banking/internal/transport/http/response"
)

type ChatHandler struct {
	chatService    *app.ChatService
	sessionService *app.SessionService
}

type ChatRequest struct {
	SessionID  string `json:"session_id"`
	Message    string `json:"message" binding:"required,max=2000"`
	CustomerID string `json:"customer_id"`
}

func NewChatHandler(chatService *app.ChatService, sessionService *app.SessionService) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		sessionService: sessionService,
	}
}

// resolveSessionID validates the supplied session id, or starts a fresh
// session when the request carries none.
func (h *ChatHandler) resolveSessionID(c *gin.Context, sessionID string) (string, bool) {
	if sessionID == "" {
		session, err := h.sessionService.Create(c.Request.Context(), "")
		if err != nil {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create session failed")
			return "", false
		}
		return session.SessionID, true
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "session_id must be a UUID")
		return "", false
	}
	return sessionID, true
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	sessionID, ok := h.resolveSessionID(c, req.SessionID)
	if !ok {
		return
	}

	result, err := h.chatService.ProcessMessage(c.Request.Context(), app.ProcessInput{
		SessionID:  sessionID,
		Message:    req.Message,
		CustomerID: req.CustomerID,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrSessionNotFound):
			response.Error(c, http.StatusNotFound, response.CodeSessionNotFound, err.Error())
		case errors.Is(err, app.ErrMessageEnqueue):
			response.Error(c, http.StatusServiceUnavailable, response.CodeServiceUnavailable, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "process message failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *ChatHandler) StreamMessage(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	sessionID, ok := h.resolveSessionID(c, req.SessionID)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "stream not supported")
		return
	}

	result, err := h.chatService.StreamMessage(c.Request.Context(), app.ProcessInput{
		SessionID:  sessionID,
		Message:    req.Message,
		CustomerID: req.CustomerID,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}, func(chunk string) error {
		if _, writeErr := c.Writer.Write([]byte("data: " + sanitizeSSE(chunk) + "\n\n")); writeErr != nil {
			return writeErr
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		if _, writeErr := c.Writer.Write([]byte(fmt.Sprintf("event: error\ndata: %s\n\n", sanitizeSSE(err.Error())))); writeErr == nil {
			flusher.Flush()
		}
		return
	}

	if _, writeErr := c.Writer.Write([]byte("event: done\ndata: " + sanitizeSSE(result.Response) + "\n\n")); writeErr == nil {
		flusher.Flush()
	}
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid session_id")
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil {
			limit = parsed
		}
	}

	history, err := h.chatService.GetHistory(c.Request.Context(), sessionID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get history failed")
		return
	}

	response.OK(c, gin.H{
		"session_id": sessionID,
		"messages":   history,
		"count":      len(history),
	})
}

func sanitizeSSE(input string) string {
	replaced := strings.ReplaceAll(input, "\r\n", "\\n")
	replaced = strings.ReplaceAll(replaced, "\n", "\\n")
	return replaced
}

func sessionFromContext(c *gin.Context) (sessionID, customerID string, ok bool) {
	sessionAny, exists := c.Get(middleware.ContextSessionIDKey)
	if !exists {
		return "", "", false
	}
	customerAny, exists := c.Get(middleware.ContextCustomerIDKey)
	if !exists {
		return "", "", false
	}
	sessionID, sOK := sessionAny.(string)
	customerID, cOK := customerAny.(string)
	return sessionID, customerID, sOK && cOK && customerID != ""
}
