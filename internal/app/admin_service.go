package app

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"nano-banking/internal/model"
	"nano-banking/internal/pkg/jwtutil"
)

var ErrAdminCredentials = errors.New("invalid admin credentials")

// AdminService backs the back-office endpoints: operator login plus read
// access to the audit trail and open escalations.
type AdminService struct {
	support *SupportService
	audits  AuditStore

	username     string
	passwordHash string
	jwtSecret    string
	jwtExpire    time.Duration
}

func NewAdminService(support *SupportService, audits AuditStore, username, passwordHash, jwtSecret string, jwtExpire time.Duration) *AdminService {
	return &AdminService{
		support:      support,
		audits:       audits,
		username:     username,
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		jwtExpire:    jwtExpire,
	}
}

func (s *AdminService) Login(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidInput
	}
	if username != s.username || s.passwordHash == "" {
		return "", ErrAdminCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) != nil {
		return "", ErrAdminCredentials
	}
	return jwtutil.GenerateAdminToken(s.jwtSecret, s.jwtExpire, username)
}

func (s *AdminService) SessionAuditTrail(sessionID string) ([]model.AuditLog, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidInput
	}
	return s.audits.ListBySessionID(sessionID)
}

func (s *AdminService) PendingEscalations(status string, limit int) ([]model.Escalation, error) {
	if status == "" {
		status = model.EscalationStatusPending
	}
	return s.support.ListEscalations(status, limit)
}
