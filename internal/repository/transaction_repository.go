package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nano-banking/internal/model"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateWithBalance writes the transaction row and the customer's new balance
// in one database transaction.
func (r *TransactionRepository) CreateWithBalance(txn *model.Transaction, newBalance float64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		return tx.Model(&model.Customer{}).
			Where("customer_id = ?", txn.CustomerID).
			Update("account_balance", newBalance).Error
	})
	if err != nil {
		return fmt.Errorf("create transaction failed: %w", err)
	}
	return nil
}

func (r *TransactionRepository) ListRecentByCustomerID(customerID string, since time.Time, limit int) ([]model.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var txns []model.Transaction
	err := r.db.
		Where("customer_id = ? AND created_at >= ?", customerID, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions failed: %w", err)
	}
	return txns, nil
}

func (r *TransactionRepository) LastByCustomerID(customerID string) (*model.Transaction, error) {
	var txn model.Transaction
	err := r.db.
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query last transaction failed: %w", err)
	}
	return &txn, nil
}
