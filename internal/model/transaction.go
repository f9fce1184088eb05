package model

import "time"

type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TransactionID string    `gorm:"size:64;not null;uniqueIndex" json:"transaction_id"`
	CustomerID    string    `gorm:"size:64;not null;index" json:"customer_id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Type          string    `gorm:"size:16;not null" json:"type"`
	Description   string    `gorm:"size:256" json:"description"`
	BalanceAfter  float64   `gorm:"not null" json:"balance_after"`
	Status        string    `gorm:"size:16;not null;default:completed" json:"status"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)
