package app

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"nano-banking/internal/model"
	"nano-banking/internal/pkg/pdfextract"
)

var (
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrExtractUnsupported = errors.New("text extraction not supported for this file type")
)

// DocumentStore is the slice of the document repository the service needs.
type DocumentStore interface {
	Create(doc *model.Document) error
	GetByIDAndCustomerID(documentID, customerID string) (*model.Document, error)
	ListActiveByCustomerID(customerID string) ([]model.Document, error)
	UpdateStatus(documentID, status string) error
}

var allowedContentTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"text/plain":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var documentCategories = map[string]bool{
	"statements":     true,
	"applications":   true,
	"correspondence": true,
	"identification": true,
	"temporary":      true,
}

// DocumentService stores customer documents on a per-customer directory tree
// and tracks them in the database.
type DocumentService struct {
	documents   DocumentStore
	auditor     *Auditor
	basePath    string
	maxFileSize int64
}

type UploadInput struct {
	SessionID  string
	CustomerID string
	Filename   string
	Category   string
	Content    []byte
}

func NewDocumentService(documents DocumentStore, auditor *Auditor, basePath string, maxFileSizeMB int) *DocumentService {
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = 10
	}
	return &DocumentService{
		documents:   documents,
		auditor:     auditor,
		basePath:    basePath,
		maxFileSize: int64(maxFileSizeMB) * 1024 * 1024,
	}
}

func (s *DocumentService) Upload(ctx context.Context, input UploadInput) (*model.Document, error) {
	if input.CustomerID == "" || len(input.Content) == 0 {
		return nil, ErrInvalidInput
	}
	if int64(len(input.Content)) > s.maxFileSize {
		return nil, ErrFileTooLarge
	}

	contentType := detectContentType(input.Filename)
	if !allowedContentTypes[contentType] {
		return nil, ErrFileTypeNotAllowed
	}

	category := input.Category
	if !documentCategories[category] {
		category = "general"
	}

	documentID := uuid.NewString()
	safeName := SanitizeFilename(input.Filename)
	dir := filepath.Join(s.basePath, input.CustomerID, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create customer folder failed: %w", err)
	}

	path := filepath.Join(dir, documentID+"_"+safeName)
	if err := os.WriteFile(path, input.Content, 0o644); err != nil {
		return nil, fmt.Errorf("write document file failed: %w", err)
	}

	doc := &model.Document{
		DocumentID:  documentID,
		CustomerID:  input.CustomerID,
		Filename:    safeName,
		FilePath:    path,
		ContentType: contentType,
		SizeBytes:   int64(len(input.Content)),
		Category:    category,
		Status:      model.DocumentStatusActive,
		CreatedAt:   time.Now(),
	}
	if err := s.documents.Create(doc); err != nil {
		// Do not leave orphaned files when the record write fails.
		_ = os.Remove(path)
		return nil, err
	}

	s.auditor.Record(ctx, input.SessionID, input.CustomerID, "upload_document",
		fmt.Sprintf("uploaded %s (%s, %d bytes)", safeName, contentType, len(input.Content)), model.AuditStatusSuccess)

	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, sessionID, customerID string) ([]model.Document, error) {
	docs, err := s.documents.ListActiveByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	s.auditor.Record(ctx, sessionID, customerID, "list_customer_documents",
		fmt.Sprintf("listed %d documents", len(docs)), model.AuditStatusSuccess)
	return docs, nil
}

// Retrieve returns document metadata after checking ownership and that the
// file is still present on disk.
func (s *DocumentService) Retrieve(ctx context.Context, sessionID, customerID, documentID string) (*model.Document, error) {
	doc, err := s.documents.GetByIDAndCustomerID(documentID, customerID)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.Status != model.DocumentStatusActive {
		return nil, ErrDocumentNotFound
	}
	if _, err := os.Stat(doc.FilePath); err != nil {
		return nil, ErrDocumentNotFound
	}

	s.auditor.Record(ctx, sessionID, customerID, "retrieve_document",
		"retrieved document info for "+doc.Filename, model.AuditStatusSuccess)
	return doc, nil
}

// ExtractText returns the textual content of plain-text and PDF documents.
func (s *DocumentService) ExtractText(ctx context.Context, sessionID, customerID, documentID string) (string, error) {
	doc, err := s.Retrieve(ctx, sessionID, customerID, documentID)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return "", fmt.Errorf("read document file failed: %w", err)
	}

	var text string
	switch doc.ContentType {
	case "text/plain":
		text = string(content)
	case "application/pdf":
		text, err = pdfextract.FromBytes(content)
		if err != nil {
			s.auditor.Record(ctx, sessionID, customerID, "extract_document_text",
				"pdf extraction failed for "+doc.Filename, model.AuditStatusFailed)
			return "", fmt.Errorf("extract pdf text failed: %w", err)
		}
	default:
		return "", ErrExtractUnsupported
	}

	s.auditor.Record(ctx, sessionID, customerID, "extract_document_text",
		fmt.Sprintf("extracted %d bytes from %s", len(text), doc.Filename), model.AuditStatusSuccess)
	return text, nil
}

// Archive flips the document status; files are never deleted.
func (s *DocumentService) Archive(ctx context.Context, sessionID, customerID, documentID string) (*model.Document, error) {
	doc, err := s.documents.GetByIDAndCustomerID(documentID, customerID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	if err := s.documents.UpdateStatus(documentID, model.DocumentStatusArchived); err != nil {
		return nil, err
	}
	doc.Status = model.DocumentStatusArchived

	s.auditor.Record(ctx, sessionID, customerID, "archive_document",
		"archived document "+doc.Filename, model.AuditStatusSuccess)
	return doc, nil
}

// SanitizeFilename strips path and shell characters and bounds the length.
func SanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	sanitized := b.String()
	if sanitized == "" {
		sanitized = "document"
	}
	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}
	return sanitized
}

func detectContentType(filename string) string {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		return "application/octet-stream"
	}
	// TypeByExtension may append a charset parameter for text types.
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return contentType
}
