package model

import "time"

// AuditLog records every tool invocation and security event for a session.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  string    `gorm:"size:64;not null;index" json:"session_id"`
	CustomerID string    `gorm:"size:64;index" json:"customer_id,omitempty"`
	Action     string    `gorm:"size:64;not null" json:"action"`
	Details    string    `gorm:"type:text" json:"details,omitempty"`
	IPAddress  string    `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent  string    `gorm:"size:256" json:"user_agent,omitempty"`
	Status     string    `gorm:"size:16;not null;default:success" json:"status"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

const (
	AuditStatusSuccess = "success"
	AuditStatusFailed  = "failed"
)
