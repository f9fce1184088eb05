package model

import "time"

type Customer struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	CustomerID         string     `gorm:"size:64;not null;uniqueIndex" json:"customer_id"`
	FullName           string     `gorm:"size:128;not null" json:"full_name"`
	AccountNumber      string     `gorm:"size:32;not null;uniqueIndex" json:"account_number"`
	Email              string     `gorm:"size:128;not null;uniqueIndex" json:"email"`
	Phone              string     `gorm:"size:32" json:"phone"`
	Address            string     `gorm:"type:text" json:"address"`
	SecurityQuestion   string     `gorm:"size:256;not null" json:"-"`
	SecurityAnswerHash string     `gorm:"size:255;not null" json:"-"`
	AccountBalance     float64    `gorm:"not null;default:0" json:"account_balance"`
	AccountStatus      string     `gorm:"size:16;not null;default:active;index" json:"account_status"`
	Verified           bool       `gorm:"not null;default:false" json:"verified"`
	LoginAttempts      int        `gorm:"not null;default:0" json:"-"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

const (
	AccountStatusActive    = "active"
	AccountStatusSuspended = "suspended"
	AccountStatusClosed    = "closed"
)
