package model

import "time"

type Document struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DocumentID  string    `gorm:"size:64;not null;uniqueIndex" json:"document_id"`
	CustomerID  string    `gorm:"size:64;not null;index" json:"customer_id"`
	Filename    string    `gorm:"size:128;not null" json:"filename"`
	FilePath    string    `gorm:"size:512;not null" json:"-"`
	ContentType string    `gorm:"size:128;not null" json:"content_type"`
	SizeBytes   int64     `gorm:"not null" json:"size_bytes"`
	Category    string    `gorm:"size:32;not null;default:general" json:"category"`
	Status      string    `gorm:"size:16;not null;default:active;index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	DocumentStatusActive   = "active"
	DocumentStatusArchived = "archived"
)
