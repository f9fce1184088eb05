package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"nano-banking/internal/model"
)

// AsyncPublisher sends a payload to a durable queue for write-behind
// persistence.
type AsyncPublisher interface {
	Publish(ctx context.Context, payload interface{}) error
}

// Auditor emits audit events for tool calls and security outcomes. Audit
// failures are logged and never fail the operation being audited.
type Auditor struct {
	publisher AsyncPublisher
	log       *logrus.Logger
}

func NewAuditor(publisher AsyncPublisher, log *logrus.Logger) *Auditor {
	return &Auditor{publisher: publisher, log: log}
}

func (a *Auditor) Record(ctx context.Context, sessionID, customerID, action, details, status string) {
	a.RecordRequest(ctx, sessionID, customerID, action, details, status, "", "")
}

// RecordRequest is Record with the request origin attached, used for events
// that start at the HTTP edge.
func (a *Auditor) RecordRequest(ctx context.Context, sessionID, customerID, action, details, status, ipAddress, userAgent string) {
	if a == nil || a.publisher == nil {
		return
	}
	entry := model.AuditLog{
		SessionID:  sessionID,
		CustomerID: customerID,
		Action:     action,
		Details:    details,
		Status:     status,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		CreatedAt:  time.Now(),
	}
	if err := a.publisher.Publish(ctx, entry); err != nil && a.log != nil {
		a.log.WithFields(logrus.Fields{
			"session_id": sessionID,
			"action":     action,
		}).WithError(err).Error("audit event publish failed")
	}
}
