package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nano-banking/internal/app"
	"nano-banking/internal/transport/http/response"
)

// DocumentHandler serves the document endpoints. All routes sit behind the
// session JWT minted at identity verification.
type DocumentHandler struct {
	documentService *app.DocumentService
}

func NewDocumentHandler(documentService *app.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	sessionID, customerID, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "open uploaded file failed")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "read uploaded file failed")
		return
	}

	doc, err := h.documentService.Upload(c.Request.Context(), app.UploadInput{
		SessionID:  sessionID,
		CustomerID: customerID,
		Filename:   fileHeader.Filename,
		Category:   c.PostForm("category"),
		Content:    content,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeFileTooLarge, err.Error())
		case errors.Is(err, app.ErrFileTypeNotAllowed):
			response.Error(c, http.StatusUnsupportedMediaType, response.CodeFileTypeNotAllowed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload document failed")
		}
		return
	}

	response.OK(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	sessionID, customerID, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	docs, err := h.documentService.List(c.Request.Context(), sessionID, customerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list documents failed")
		return
	}

	response.OK(c, gin.H{
		"documents": docs,
		"count":     len(docs),
	})
}

// Info returns document metadata, or its text content with ?extract=1.
func (h *DocumentHandler) Info(c *gin.Context) {
	sessionID, customerID, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	documentID := strings.TrimSpace(c.Param("id"))
	if documentID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid document id")
		return
	}

	if c.Query("extract") == "1" {
		text, err := h.documentService.ExtractText(c.Request.Context(), sessionID, customerID, documentID)
		if err != nil {
			switch {
			case errors.Is(err, app.ErrDocumentNotFound):
				response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
			case errors.Is(err, app.ErrExtractUnsupported):
				response.Error(c, http.StatusUnsupportedMediaType, response.CodeFileTypeNotAllowed, err.Error())
			default:
				response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "extract text failed")
			}
			return
		}
		response.OK(c, gin.H{
			"document_id": documentID,
			"text":        text,
		})
		return
	}

	doc, err := h.documentService.Retrieve(c.Request.Context(), sessionID, customerID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "retrieve document failed")
		}
		return
	}

	response.OK(c, doc)
}

func (h *DocumentHandler) Archive(c *gin.Context) {
	sessionID, customerID, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	documentID := strings.TrimSpace(c.Param("id"))
	if documentID == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid document id")
		return
	}

	doc, err := h.documentService.Archive(c.Request.Context(), sessionID, customerID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrDocumentNotFound):
			response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "archive document failed")
		}
		return
	}

	response.OK(c, doc)
}
