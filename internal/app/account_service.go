package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"nano-banking/internal/model"
)

var (
	ErrCustomerNotFound       = errors.New("customer account not found or inactive")
	ErrNoUpdatableFields      = errors.New("no valid fields to update")
	ErrInsufficientFunds      = errors.New("insufficient funds for this transaction")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)

// TransactionStore is the slice of the transaction repository the account
// service needs.
type TransactionStore interface {
	CreateWithBalance(txn *model.Transaction, newBalance float64) error
	ListRecentByCustomerID(customerID string, since time.Time, limit int) ([]model.Transaction, error)
	LastByCustomerID(customerID string) (*model.Transaction, error)
}

// AccountService exposes the account tools available to verified customers.
type AccountService struct {
	customers    CustomerStore
	transactions TransactionStore
	auditor      *Auditor
}

// Only contact fields may be changed through the assistant.
var updatableFields = map[string]bool{
	"email":   true,
	"phone":   true,
	"address": true,
}

type BalanceResult struct {
	CustomerName   string  `json:"customer_name"`
	AccountNumber  string  `json:"account_number"`
	CurrentBalance float64 `json:"current_balance"`
	BalanceStatus  string  `json:"balance_status"`
}

type HistorySummary struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalCredits      float64 `json:"total_credits"`
	TotalDebits       float64 `json:"total_debits"`
	NetChange         float64 `json:"net_change"`
	DateRangeDays     int     `json:"date_range_days"`
}

type HistoryResult struct {
	Transactions []model.Transaction `json:"transactions"`
	Summary      HistorySummary      `json:"summary"`
}

type UpdateResult struct {
	UpdatedFields []string `json:"updated_fields"`
	CustomerName  string   `json:"customer_name"`
}

type CreateTransactionInput struct {
	SessionID   string
	CustomerID  string
	Amount      float64
	Type        string
	Description string
}

func NewAccountService(customers CustomerStore, transactions TransactionStore, auditor *Auditor) *AccountService {
	return &AccountService{
		customers:    customers,
		transactions: transactions,
		auditor:      auditor,
	}
}

// QueryBalance returns the stored balance and whether it matches the last
// transaction's running balance.
func (s *AccountService) QueryBalance(ctx context.Context, sessionID, customerID string) (*BalanceResult, error) {
	customer, err := s.activeCustomer(customerID)
	if err != nil {
		return nil, err
	}

	last, err := s.transactions.LastByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	balanceStatus := "verified"
	if last != nil && last.BalanceAfter != customer.AccountBalance {
		balanceStatus = "needs_reconciliation"
	}

	s.auditor.Record(ctx, sessionID, customerID, "query_account_balance",
		fmt.Sprintf("balance queried: $%.2f", customer.AccountBalance), model.AuditStatusSuccess)

	return &BalanceResult{
		CustomerName:   customer.FullName,
		AccountNumber:  customer.AccountNumber,
		CurrentBalance: customer.AccountBalance,
		BalanceStatus:  balanceStatus,
	}, nil
}

func (s *AccountService) TransactionHistory(ctx context.Context, sessionID, customerID string, limit, days int) (*HistoryResult, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	txns, err := s.transactions.ListRecentByCustomerID(customerID, since, limit)
	if err != nil {
		return nil, err
	}

	summary := HistorySummary{
		TotalTransactions: len(txns),
		DateRangeDays:     days,
	}
	for _, txn := range txns {
		switch txn.Type {
		case model.TransactionCredit:
			summary.TotalCredits += txn.Amount
		case model.TransactionDebit:
			summary.TotalDebits += txn.Amount
		}
	}
	summary.NetChange = summary.TotalCredits - summary.TotalDebits

	s.auditor.Record(ctx, sessionID, customerID, "transaction_history",
		fmt.Sprintf("retrieved %d transactions for %d days", len(txns), days), model.AuditStatusSuccess)

	return &HistoryResult{Transactions: txns, Summary: summary}, nil
}

// UpdateCustomerRecord applies whitelisted contact updates.
func (s *AccountService) UpdateCustomerRecord(ctx context.Context, sessionID, customerID string, updates map[string]string) (*UpdateResult, error) {
	customer, err := s.customers.GetByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	fields := map[string]interface{}{}
	var updated []string
	for field, value := range updates {
		value = strings.TrimSpace(value)
		if !updatableFields[field] || value == "" {
			continue
		}
		fields[field] = value
		updated = append(updated, field)
	}
	if len(fields) == 0 {
		return nil, ErrNoUpdatableFields
	}

	if err := s.customers.UpdateFields(customerID, fields); err != nil {
		s.auditor.Record(ctx, sessionID, customerID, "update_customer_record",
			err.Error(), model.AuditStatusFailed)
		return nil, err
	}

	s.auditor.Record(ctx, sessionID, customerID, "update_customer_record",
		"updated fields: "+strings.Join(updated, ", "), model.AuditStatusSuccess)

	return &UpdateResult{
		UpdatedFields: updated,
		CustomerName:  customer.FullName,
	}, nil
}

// CreateTransaction records a credit or debit and moves the balance with it.
// Debits that would overdraw the account are rejected.
func (s *AccountService) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*model.Transaction, error) {
	customer, err := s.activeCustomer(input.CustomerID)
	if err != nil {
		return nil, err
	}

	var newBalance float64
	switch input.Type {
	case model.TransactionCredit:
		newBalance = customer.AccountBalance + input.Amount
	case model.TransactionDebit:
		newBalance = customer.AccountBalance - input.Amount
		if newBalance < 0 {
			return nil, ErrInsufficientFunds
		}
	default:
		return nil, ErrInvalidTransactionType
	}

	txn := &model.Transaction{
		TransactionID: uuid.NewString(),
		CustomerID:    input.CustomerID,
		Amount:        input.Amount,
		Type:          input.Type,
		Description:   input.Description,
		BalanceAfter:  newBalance,
		Status:        "completed",
		CreatedAt:     time.Now(),
	}
	if err := s.transactions.CreateWithBalance(txn, newBalance); err != nil {
		s.auditor.Record(ctx, input.SessionID, input.CustomerID, "create_transaction",
			err.Error(), model.AuditStatusFailed)
		return nil, err
	}

	s.auditor.Record(ctx, input.SessionID, input.CustomerID, "create_transaction",
		fmt.Sprintf("%s $%.2f: %s", input.Type, input.Amount, input.Description), model.AuditStatusSuccess)

	return txn, nil
}

func (s *AccountService) activeCustomer(customerID string) (*model.Customer, error) {
	customer, err := s.customers.GetByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.AccountStatus != model.AccountStatusActive {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}
