package repository

import (
	"fmt"

	"gorm.io/gorm"

	"nano-banking/internal/model"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(entry *model.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create audit log failed: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListBySessionID(sessionID string) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("list audit logs failed: %w", err)
	}
	return logs, nil
}
