package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nano-banking/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create document failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByIDAndCustomerID(documentID, customerID string) (*model.Document, error) {
	var doc model.Document
	err := r.db.
		Where("document_id = ? AND customer_id = ?", documentID, customerID).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) ListActiveByCustomerID(customerID string) ([]model.Document, error) {
	var docs []model.Document
	err := r.db.
		Where("customer_id = ? AND status = ?", customerID, model.DocumentStatusActive).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) UpdateStatus(documentID, status string) error {
	err := r.db.Model(&model.Document{}).
		Where("document_id = ?", documentID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("update document status failed: %w", err)
	}
	return nil
}
