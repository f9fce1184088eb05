package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nano-banking/internal/model"
)

var ErrNoSessionActivity = errors.New("no interaction data found for this session")

// EscalationStore is the slice of the escalation repository the service needs.
type EscalationStore interface {
	Create(escalation *model.Escalation) error
	ListByStatus(status string, limit int) ([]model.Escalation, error)
}

// AuditStore reads back the audit trail for session summaries.
type AuditStore interface {
	ListBySessionID(sessionID string) ([]model.AuditLog, error)
}

// SupportService covers the non-account tools: the banking knowledge base,
// escalation to a human representative and session summaries.
type SupportService struct {
	escalations EscalationStore
	audits      AuditStore
	auditor     *Auditor
	bankName    string
}

type KnowledgeEntry struct {
	Category     string   `json:"category"`
	Topic        string   `json:"topic"`
	Information  string   `json:"information"`
	Steps        []string `json:"steps,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

type EscalationResult struct {
	TicketID          string   `json:"ticket_id"`
	Priority          string   `json:"priority"`
	EstimatedWaitTime string   `json:"estimated_wait_time"`
	ContactMethod     string   `json:"contact_method"`
	Message           string   `json:"message"`
	NextSteps         []string `json:"next_steps"`
}

type SessionAction struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	Details   string    `json:"details,omitempty"`
}

type SessionSummary struct {
	SessionID          string          `json:"session_id"`
	CustomerID         string          `json:"customer_id,omitempty"`
	StartTime          time.Time       `json:"start_time"`
	EndTime            time.Time       `json:"end_time"`
	DurationMinutes    float64         `json:"duration_minutes"`
	VerificationStatus string          `json:"verification_status"`
	ToolsUsed          []string        `json:"tools_used"`
	TotalActions       int             `json:"total_actions"`
	SuccessfulActions  int             `json:"successful_actions"`
	ActionsTaken       []SessionAction `json:"actions_taken"`
}

func NewSupportService(escalations EscalationStore, audits AuditStore, auditor *Auditor, bankName string) *SupportService {
	return &SupportService{
		escalations: escalations,
		audits:      audits,
		auditor:     auditor,
		bankName:    bankName,
	}
}

// SearchKnowledge matches the query against topic words in the curated
// knowledge base.
func (s *SupportService) SearchKnowledge(ctx context.Context, sessionID, customerID, query string) []KnowledgeEntry {
	queryLower := strings.ToLower(query)
	var results []KnowledgeEntry

	for _, entry := range bankingKnowledge {
		for _, keyword := range strings.Fields(strings.ToLower(entry.Topic)) {
			if strings.Contains(queryLower, keyword) {
				results = append(results, entry)
				break
			}
		}
	}

	if len(results) == 0 && (strings.Contains(queryLower, "balance") || strings.Contains(queryLower, "account")) {
		results = append(results, KnowledgeEntry{
			Category:     "account_services",
			Topic:        "Account Balance Inquiry",
			Information:  "I can help you check your account balance after verifying your identity.",
			Steps:        []string{"Provide full name and account number", "Answer security question", "View current balance"},
			Requirements: []string{"Valid identification", "Security verification"},
		})
	}

	s.auditor.Record(ctx, sessionID, customerID, "banking_knowledge_base",
		fmt.Sprintf("query: %s, results: %d", query, len(results)), model.AuditStatusSuccess)
	return results
}

// Escalate opens a ticket for a human representative. Ticket ids embed the
// date and the session suffix so they can be read back to the customer.
func (s *SupportService) Escalate(ctx context.Context, sessionID, customerID, reason, priority string) (*EscalationResult, error) {
	switch priority {
	case model.PriorityHigh, model.PriorityUrgent:
	default:
		priority = model.PriorityNormal
	}

	suffix := sessionID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	ticketID := fmt.Sprintf("ESC-%s-%s", time.Now().Format("20060102"), suffix)

	escalation := &model.Escalation{
		TicketID:   ticketID,
		SessionID:  sessionID,
		CustomerID: customerID,
		Reason:     reason,
		Priority:   priority,
		Status:     model.EscalationStatusPending,
		CreatedAt:  time.Now(),
	}
	if err := s.escalations.Create(escalation); err != nil {
		s.auditor.Record(ctx, sessionID, customerID, "escalate_to_human",
			err.Error(), model.AuditStatusFailed)
		return nil, err
	}

	var waitTime, contactMethod string
	switch priority {
	case model.PriorityUrgent:
		waitTime = "immediate"
		contactMethod = "Direct transfer to senior representative"
	case model.PriorityHigh:
		waitTime = "5-10 minutes"
		contactMethod = "Priority queue"
	default:
		waitTime = "15-20 minutes"
		contactMethod = "Standard queue"
	}

	s.auditor.Record(ctx, sessionID, customerID, "escalate_to_human",
		fmt.Sprintf("escalation %s: %s (priority: %s)", ticketID, reason, priority), model.AuditStatusSuccess)

	return &EscalationResult{
		TicketID:          ticketID,
		Priority:          priority,
		EstimatedWaitTime: waitTime,
		ContactMethod:     contactMethod,
		Message: fmt.Sprintf(
			"I've created escalation ticket %s to connect you with a human representative. Expected wait time: %s.",
			ticketID, waitTime),
		NextSteps: []string{
			"Stay on the line for transfer",
			"Reference escalation ID when speaking to representative",
			"Provide any additional context about your inquiry",
		},
	}, nil
}

func (s *SupportService) ListEscalations(status string, limit int) ([]model.Escalation, error) {
	return s.escalations.ListByStatus(status, limit)
}

// Summarize rebuilds what happened in a session from its audit trail.
func (s *SupportService) Summarize(ctx context.Context, sessionID, customerID string) (*SessionSummary, error) {
	logs, err := s.audits.ListBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoSessionActivity
	}

	verificationStatus := "not_attempted"
	toolsSeen := map[string]bool{}
	var tools []string
	actions := make([]SessionAction, 0, len(logs))
	successful := 0

	for _, entry := range logs {
		actions = append(actions, SessionAction{
			Timestamp: entry.CreatedAt,
			Action:    entry.Action,
			Status:    entry.Status,
			Details:   entry.Details,
		})
		if entry.Action == "identity_verification" {
			if entry.Status == model.AuditStatusSuccess {
				verificationStatus = "completed"
			} else {
				verificationStatus = "failed"
			}
		}
		if entry.Status == model.AuditStatusSuccess {
			successful++
		}
		if !toolsSeen[entry.Action] {
			toolsSeen[entry.Action] = true
			tools = append(tools, entry.Action)
		}
	}

	start := logs[0].CreatedAt
	end := logs[len(logs)-1].CreatedAt

	s.auditor.Record(ctx, sessionID, customerID, "generate_summary",
		fmt.Sprintf("generated summary for %d actions", len(actions)), model.AuditStatusSuccess)

	return &SessionSummary{
		SessionID:          sessionID,
		CustomerID:         customerID,
		StartTime:          start,
		EndTime:            end,
		DurationMinutes:    end.Sub(start).Minutes(),
		VerificationStatus: verificationStatus,
		ToolsUsed:          tools,
		TotalActions:       len(actions),
		SuccessfulActions:  successful,
		ActionsTaken:       actions,
	}, nil
}
