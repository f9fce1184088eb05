package repository

import (
	"fmt"

	"gorm.io/gorm"

	"nano-banking/internal/model"
)

type EscalationRepository struct {
	db *gorm.DB
}

func NewEscalationRepository(db *gorm.DB) *EscalationRepository {
	return &EscalationRepository{db: db}
}

func (r *EscalationRepository) Create(escalation *model.Escalation) error {
	if err := r.db.Create(escalation).Error; err != nil {
		return fmt.Errorf("create escalation failed: %w", err)
	}
	return nil
}

func (r *EscalationRepository) ListByStatus(status string, limit int) ([]model.Escalation, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := r.db.Order("created_at DESC").Limit(limit)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var escalations []model.Escalation
	if err := query.Find(&escalations).Error; err != nil {
		return nil, fmt.Errorf("list escalations failed: %w", err)
	}
	return escalations, nil
}
