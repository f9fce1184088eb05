package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"nano-banking/internal/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// CustomerStore is the slice of the customer repository the services need.
type CustomerStore interface {
	GetByCustomerID(customerID string) (*model.Customer, error)
	FindByAccountAndName(accountNumber, fullName string) (*model.Customer, error)
	Update(customer *model.Customer) error
	UpdateFields(customerID string, fields map[string]interface{}) error
}

// SessionStore is the slice of the session repository the services need.
type SessionStore interface {
	Create(session *model.Session) error
	GetBySessionID(sessionID string) (*model.Session, error)
	UpdateStatus(sessionID, status string) error
	TouchActivity(sessionID string, at time.Time) error
	MarkVerified(sessionID, customerID string) error
}

// IdentityService implements the two-step verification flow: name + account
// number first, then the customer's security question.
type IdentityService struct {
	customers   CustomerStore
	sessions    SessionStore
	auditor     *Auditor
	maxAttempts int
}

type VerifyInput struct {
	SessionID      string
	FullName       string
	AccountNumber  string
	SecurityAnswer string
}

type VerifyResult struct {
	Verified                 bool
	Message                  string
	RequiresSecurityQuestion bool
	CustomerID               string
	CustomerName             string
	RemainingAttempts        int
}

func NewIdentityService(customers CustomerStore, sessions SessionStore, auditor *Auditor, maxAttempts int) *IdentityService {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &IdentityService{
		customers:   customers,
		sessions:    sessions,
		auditor:     auditor,
		maxAttempts: maxAttempts,
	}
}

func (s *IdentityService) Verify(ctx context.Context, input VerifyInput) (*VerifyResult, error) {
	fullName := strings.TrimSpace(input.FullName)
	accountNumber := strings.TrimSpace(input.AccountNumber)
	if fullName == "" || accountNumber == "" {
		return nil, ErrInvalidInput
	}

	customer, err := s.customers.FindByAccountAndName(accountNumber, fullName)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		s.auditor.Record(ctx, input.SessionID, "", "identity_verification",
			"failed verification - customer not found", model.AuditStatusFailed)
		return &VerifyResult{
			Message: "Customer information not found. Please check your details or visit a branch.",
		}, nil
	}

	if customer.AccountStatus != model.AccountStatusActive {
		s.auditor.Record(ctx, input.SessionID, customer.CustomerID, "identity_verification",
			"account status: "+customer.AccountStatus, model.AuditStatusFailed)
		return &VerifyResult{
			Message: "Account is not active. Please contact customer service.",
		}, nil
	}

	if customer.LoginAttempts >= s.maxAttempts {
		s.auditor.Record(ctx, input.SessionID, customer.CustomerID, "identity_verification",
			"too many failed attempts", model.AuditStatusFailed)
		return &VerifyResult{
			Message: "Too many failed verification attempts. Please visit a branch.",
		}, nil
	}

	if strings.TrimSpace(input.SecurityAnswer) == "" {
		return &VerifyResult{
			Message:                  "Please answer your security question: " + customer.SecurityQuestion,
			RequiresSecurityQuestion: true,
			CustomerID:               customer.CustomerID,
		}, nil
	}

	if !VerifySecurityAnswer(customer.SecurityAnswerHash, input.SecurityAnswer) {
		customer.LoginAttempts++
		if err := s.customers.Update(customer); err != nil {
			return nil, err
		}

		s.auditor.Record(ctx, input.SessionID, customer.CustomerID, "identity_verification",
			"incorrect security answer", model.AuditStatusFailed)
		remaining := s.maxAttempts - customer.LoginAttempts
		result := &VerifyResult{
			Message:                  "Incorrect security answer. Please try again.",
			RequiresSecurityQuestion: true,
			RemainingAttempts:        remaining,
		}
		if remaining <= 0 {
			result.Message = "Too many failed verification attempts. Please visit a branch."
			result.RequiresSecurityQuestion = false
		}
		return result, nil
	}

	now := time.Now()
	customer.LoginAttempts = 0
	customer.LastLoginAt = &now
	customer.Verified = true
	if err := s.customers.Update(customer); err != nil {
		return nil, err
	}
	if err := s.sessions.MarkVerified(input.SessionID, customer.CustomerID); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, input.SessionID, customer.CustomerID, "identity_verification",
		"successful verification", model.AuditStatusSuccess)

	return &VerifyResult{
		Verified:     true,
		Message:      fmt.Sprintf("Identity verified successfully. Welcome, %s!", customer.FullName),
		CustomerID:   customer.CustomerID,
		CustomerName: customer.FullName,
	}, nil
}

// CheckAccountStatus reports the account standing for a known customer.
func (s *IdentityService) CheckAccountStatus(customerID string) (*model.Customer, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, ErrInvalidInput
	}
	return s.customers.GetByCustomerID(customerID)
}

// HashSecurityAnswer normalizes and bcrypt-hashes a security answer for
// storage. Answers are matched case-insensitively.
func HashSecurityAnswer(answer string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(normalizeAnswer(answer)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash security answer failed: %w", err)
	}
	return string(hash), nil
}

func VerifySecurityAnswer(storedHash, answer string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(normalizeAnswer(answer))) == nil
}

func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
