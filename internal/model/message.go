package model

import "time"

type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  string    `gorm:"size:64;not null;index" json:"session_id"`
	CustomerID string    `gorm:"size:64;index" json:"customer_id,omitempty"`
	Role       string    `gorm:"size:16;not null;index" json:"role"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Metadata   string    `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
