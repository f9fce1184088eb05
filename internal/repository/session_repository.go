package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nano-banking/internal/model"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(session *model.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetBySessionID(sessionID string) (*model.Session, error) {
	var session model.Session
	if err := r.db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) UpdateStatus(sessionID, status string) error {
	err := r.db.Model(&model.Session{}).
		Where("session_id = ?", sessionID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("update session status failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) TouchActivity(sessionID string, at time.Time) error {
	err := r.db.Model(&model.Session{}).
		Where("session_id = ?", sessionID).
		Update("last_activity_at", at).Error
	if err != nil {
		return fmt.Errorf("touch session activity failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) MarkVerified(sessionID, customerID string) error {
	err := r.db.Model(&model.Session{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"customer_id": customerID,
			"verified":    true,
		}).Error
	if err != nil {
		return fmt.Errorf("mark session verified failed: %w", err)
	}
	return nil
}

// ExpireIdleBefore marks active sessions with no activity since the cutoff as
// expired and returns how many rows changed.
func (r *SessionRepository) ExpireIdleBefore(cutoff time.Time) (int64, error) {
	result := r.db.Model(&model.Session{}).
		Where("status = ? AND last_activity_at < ?", model.SessionStatusActive, cutoff).
		Update("status", model.SessionStatusExpired)
	if result.Error != nil {
		return 0, fmt.Errorf("expire idle sessions failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
