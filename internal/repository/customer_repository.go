package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nano-banking/internal/model"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(customer *model.Customer) error {
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("create customer failed: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByCustomerID(customerID string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.Where("customer_id = ?", customerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query customer by id failed: %w", err)
	}
	return &customer, nil
}

// FindByAccountAndName matches the account number exactly and the full name as
// a case-insensitive substring, mirroring the verification lookup.
func (r *CustomerRepository) FindByAccountAndName(accountNumber, fullName string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.
		Where("account_number = ?", accountNumber).
		Where("LOWER(full_name) LIKE ?", "%"+likeEscapeLower(fullName)+"%").
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query customer by account failed: %w", err)
	}
	return &customer, nil
}

func (r *CustomerRepository) Update(customer *model.Customer) error {
	if err := r.db.Save(customer).Error; err != nil {
		return fmt.Errorf("update customer failed: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update to the customer row.
func (r *CustomerRepository) UpdateFields(customerID string, fields map[string]interface{}) error {
	err := r.db.Model(&model.Customer{}).
		Where("customer_id = ?", customerID).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("update customer fields failed: %w", err)
	}
	return nil
}
