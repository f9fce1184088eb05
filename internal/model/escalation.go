package model

import "time"

type Escalation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TicketID   string    `gorm:"size:32;not null;uniqueIndex" json:"ticket_id"`
	SessionID  string    `gorm:"size:64;not null;index" json:"session_id"`
	CustomerID string    `gorm:"size:64;index" json:"customer_id,omitempty"`
	Reason     string    `gorm:"size:256;not null" json:"reason"`
	Priority   string    `gorm:"size:16;not null;default:normal" json:"priority"`
	Status     string    `gorm:"size:16;not null;default:pending;index" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	EscalationStatusPending  = "pending"
	EscalationStatusResolved = "resolved"

	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)
