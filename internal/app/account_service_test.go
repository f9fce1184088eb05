package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"nano-banking/internal/model"
)

func activeCustomerFixture() *model.Customer {
	return &model.Customer{
		CustomerID:     "cust-1",
		FullName:       "Jane Smith",
		AccountNumber:  "12345678",
		AccountStatus:  model.AccountStatusActive,
		AccountBalance: 1000,
	}
}

func TestQueryBalance(t *testing.T) {
	customers := newFakeCustomerStore(activeCustomerFixture())
	transactions := &fakeTransactionStore{
		last: &model.Transaction{BalanceAfter: 1000},
	}
	svc := NewAccountService(customers, transactions, NewAuditor(&fakePublisher{}, nil))

	result, err := svc.QueryBalance(context.Background(), "sess-1", "cust-1")
	if err != nil {
		t.Fatalf("QueryBalance err: %v", err)
	}
	if result.CurrentBalance != 1000 {
		t.Fatalf("CurrentBalance = %.2f", result.CurrentBalance)
	}
	if result.BalanceStatus != "verified" {
		t.Fatalf("BalanceStatus = %q", result.BalanceStatus)
	}
}

func TestQueryBalanceFlagsReconciliation(t *testing.T) {
	customers := newFakeCustomerStore(activeCustomerFixture())
	transactions := &fakeTransactionStore{
		last: &model.Transaction{BalanceAfter: 900},
	}
	svc := NewAccountService(customers, transactions, NewAuditor(&fakePublisher{}, nil))

	result, err := svc.QueryBalance(context.Background(), "sess-1", "cust-1")
	if err != nil {
		t.Fatalf("QueryBalance err: %v", err)
	}
	if result.BalanceStatus != "needs_reconciliation" {
		t.Fatalf("BalanceStatus = %q", result.BalanceStatus)
	}
}

func TestQueryBalanceInactiveAccount(t *testing.T) {
	customer := activeCustomerFixture()
	customer.AccountStatus = model.AccountStatusClosed
	svc := NewAccountService(newFakeCustomerStore(customer), &fakeTransactionStore{}, NewAuditor(&fakePublisher{}, nil))

	if _, err := svc.QueryBalance(context.Background(), "sess-1", "cust-1"); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("err = %v, want ErrCustomerNotFound", err)
	}
}

func TestTransactionHistorySummary(t *testing.T) {
	now := time.Now()
	transactions := &fakeTransactionStore{
		recent: []model.Transaction{
			{Type: model.TransactionCredit, Amount: 500, CreatedAt: now},
			{Type: model.TransactionDebit, Amount: 120, CreatedAt: now},
			{Type: model.TransactionDebit, Amount: 80, CreatedAt: now},
		},
	}
	svc := NewAccountService(newFakeCustomerStore(activeCustomerFixture()), transactions, NewAuditor(&fakePublisher{}, nil))

	result, err := svc.TransactionHistory(context.Background(), "sess-1", "cust-1", 10, 0)
	if err != nil {
		t.Fatalf("TransactionHistory err: %v", err)
	}
	if result.Summary.TotalTransactions != 3 {
		t.Fatalf("TotalTransactions = %d", result.Summary.TotalTransactions)
	}
	if result.Summary.TotalCredits != 500 || result.Summary.TotalDebits != 200 {
		t.Fatalf("credits/debits = %.2f/%.2f", result.Summary.TotalCredits, result.Summary.TotalDebits)
	}
	if result.Summary.NetChange != 300 {
		t.Fatalf("NetChange = %.2f", result.Summary.NetChange)
	}
	if result.Summary.DateRangeDays != 30 {
		t.Fatalf("DateRangeDays = %d, want default 30", result.Summary.DateRangeDays)
	}
}

func TestUpdateCustomerRecordWhitelist(t *testing.T) {
	customers := newFakeCustomerStore(activeCustomerFixture())
	svc := NewAccountService(customers, &fakeTransactionStore{}, NewAuditor(&fakePublisher{}, nil))

	result, err := svc.UpdateCustomerRecord(context.Background(), "sess-1", "cust-1", map[string]string{
		"email":           "new@example.com",
		"account_balance": "9999999",
		"full_name":       "Someone Else",
	})
	if err != nil {
		t.Fatalf("UpdateCustomerRecord err: %v", err)
	}
	if len(result.UpdatedFields) != 1 || result.UpdatedFields[0] != "email" {
		t.Fatalf("UpdatedFields = %v", result.UpdatedFields)
	}
	if _, ok := customers.updated["account_balance"]; ok {
		t.Fatal("balance update leaked through the whitelist")
	}
}

func TestUpdateCustomerRecordNoValidFields(t *testing.T) {
	svc := NewAccountService(newFakeCustomerStore(activeCustomerFixture()), &fakeTransactionStore{}, NewAuditor(&fakePublisher{}, nil))

	_, err := svc.UpdateCustomerRecord(context.Background(), "sess-1", "cust-1", map[string]string{
		"ssn": "123-45-6789",
	})
	if !errors.Is(err, ErrNoUpdatableFields) {
		t.Fatalf("err = %v, want ErrNoUpdatableFields", err)
	}
}

func TestCreateTransactionOverdraftRejected(t *testing.T) {
	transactions := &fakeTransactionStore{}
	svc := NewAccountService(newFakeCustomerStore(activeCustomerFixture()), transactions, NewAuditor(&fakePublisher{}, nil))

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		SessionID:  "sess-1",
		CustomerID: "cust-1",
		Amount:     5000,
		Type:       model.TransactionDebit,
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if len(transactions.created) != 0 {
		t.Fatal("overdraft transaction persisted")
	}
}

func TestCreateTransactionCredit(t *testing.T) {
	transactions := &fakeTransactionStore{}
	svc := NewAccountService(newFakeCustomerStore(activeCustomerFixture()), transactions, NewAuditor(&fakePublisher{}, nil))

	txn, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		SessionID:   "sess-1",
		CustomerID:  "cust-1",
		Amount:      250,
		Type:        model.TransactionCredit,
		Description: "payroll deposit",
	})
	if err != nil {
		t.Fatalf("CreateTransaction err: %v", err)
	}
	if txn.BalanceAfter != 1250 {
		t.Fatalf("BalanceAfter = %.2f, want 1250", txn.BalanceAfter)
	}
	if txn.TransactionID == "" {
		t.Fatal("missing transaction id")
	}
}

func TestCreateTransactionInvalidType(t *testing.T) {
	svc := NewAccountService(newFakeCustomerStore(activeCustomerFixture()), &fakeTransactionStore{}, NewAuditor(&fakePublisher{}, nil))

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionInput{
		CustomerID: "cust-1",
		Amount:     10,
		Type:       "transfer",
	})
	if !errors.Is(err, ErrInvalidTransactionType) {
		t.Fatalf("err = %v, want ErrInvalidTransactionType", err)
	}
}
