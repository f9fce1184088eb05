package model

import "time"

type Session struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SessionID      string    `gorm:"size:64;not null;uniqueIndex" json:"session_id"`
	CustomerID     string    `gorm:"size:64;index" json:"customer_id,omitempty"`
	Verified       bool      `gorm:"not null;default:false" json:"verified"`
	Status         string    `gorm:"size:16;not null;default:active;index" json:"status"`
	LastActivityAt time.Time `gorm:"not null;index" json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	SessionStatusActive     = "active"
	SessionStatusExpired    = "expired"
	SessionStatusTerminated = "terminated"
)
