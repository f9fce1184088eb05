package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"nano-banking/internal/agent"
	"nano-banking/internal/ai"
	"nano-banking/internal/cache"
	"nano-banking/internal/model"
	"nano-banking/internal/pkg/jwtutil"
)

var ErrMessageEnqueue = errors.New("enqueue message for persistence failed")

// MessageStore reads conversation history back from the database.
type MessageStore interface {
	ListRecentBySessionID(sessionID string, limit int) ([]model.Message, error)
}

// HistoryCacheStore is the conversation history cache with its dirty marker.
type HistoryCacheStore interface {
	GetHistory(ctx context.Context, sessionID string) ([]model.Message, bool, error)
	SetHistory(ctx context.Context, sessionID string, messages []model.Message) error
	DeleteHistory(ctx context.Context, sessionID string) error
	MarkDirty(ctx context.Context, sessionID string) error
	IsDirty(ctx context.Context, sessionID string) (bool, error)
}

// LLMClient generates open-ended answers when no banking tool applies.
type LLMClient interface {
	Complete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage) (string, error)
	StreamComplete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage, onChunk func(chunk string) error) (string, error)
}

// Intents that expose account data and therefore require verification first.
var sensitiveIntents = map[string]bool{
	agent.IntentBalance:        true,
	agent.IntentTransactions:   true,
	agent.IntentUpdateInfo:     true,
	agent.IntentFileManagement: true,
	agent.IntentDocumentOCR:    true,
}

// ChatService routes each customer message through intent analysis, the
// verification gate and the banking tools, falling back to the LLM for
// open-ended questions.
type ChatService struct {
	sessions  *SessionService
	identity  *IdentityService
	accounts  *AccountService
	documents *DocumentService
	support   *SupportService
	messages  MessageStore
	history   HistoryCacheStore
	publisher AsyncPublisher
	llm       LLMClient
	llmCfg    ai.ChatConfig
	auditor   *Auditor
	log       *logrus.Logger

	maxContext int
	jwtSecret  string
	jwtExpire  time.Duration
	bankName   string
}

type ChatDeps struct {
	Sessions  *SessionService
	Identity  *IdentityService
	Accounts  *AccountService
	Documents *DocumentService
	Support   *SupportService
	Messages  MessageStore
	History   HistoryCacheStore
	Publisher AsyncPublisher
	LLM       LLMClient
	LLMConfig ai.ChatConfig
	Auditor   *Auditor
	Log       *logrus.Logger

	MaxContextMessage int
	JWTSecret         string
	JWTExpire         time.Duration
	BankName          string
}

type ProcessInput struct {
	SessionID string
	Message   string
	// CustomerID is a client-supplied hint carried into the audit trail.
	// It is never trusted for access, identity comes only from the
	// verification flow.
	CustomerID string
	ClientIP   string
	UserAgent  string
}

type ChatResult struct {
	Response                 string   `json:"response"`
	SessionID                string   `json:"session_id"`
	Intent                   string   `json:"intent"`
	RequiresVerification     bool     `json:"requires_verification,omitempty"`
	RequiresSecurityQuestion bool     `json:"requires_security_question,omitempty"`
	Verified                 bool     `json:"verified"`
	CustomerID               string   `json:"customer_id,omitempty"`
	EscalationID             string   `json:"escalation_id,omitempty"`
	SessionToken             string   `json:"session_token,omitempty"`
	ToolsUsed                []string `json:"tools_used,omitempty"`
	RequiresNewSession       bool     `json:"requires_new_session,omitempty"`
}

func NewChatService(deps ChatDeps) *ChatService {
	maxContext := deps.MaxContextMessage
	if maxContext <= 0 {
		maxContext = 20
	}
	return &ChatService{
		sessions:   deps.Sessions,
		identity:   deps.Identity,
		accounts:   deps.Accounts,
		documents:  deps.Documents,
		support:    deps.Support,
		messages:   deps.Messages,
		history:    deps.History,
		publisher:  deps.Publisher,
		llm:        deps.LLM,
		llmCfg:     deps.LLMConfig,
		auditor:    deps.Auditor,
		log:        deps.Log,
		maxContext: maxContext,
		jwtSecret:  deps.JWTSecret,
		jwtExpire:  deps.JWTExpire,
		bankName:   deps.BankName,
	}
}

// Control characters and markup are stripped before any processing.
var messageSanitizer = strings.NewReplacer(
	"<", "", ">", "", `"`, "", "'", "", "&", "", "\x00", "", "\r", "",
)

func sanitizeMessage(message string) string {
	return strings.TrimSpace(messageSanitizer.Replace(message))
}

func (s *ChatService) ProcessMessage(ctx context.Context, input ProcessInput) (*ChatResult, error) {
	message := sanitizeMessage(input.Message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	state, err := s.sessions.Resolve(ctx, input.SessionID)
	if errors.Is(err, ErrSessionExpired) {
		return &ChatResult{
			Response:           "Your session has expired due to inactivity. Please start a new session.",
			SessionID:          input.SessionID,
			RequiresNewSession: true,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.enqueueMessage(ctx, input.SessionID, state.CustomerID, model.RoleUser, message, ""); err != nil {
		return nil, err
	}

	analysis := agent.Analyze(message)
	result := s.dispatch(ctx, input, state, analysis, message)
	result.SessionID = input.SessionID
	result.Verified = state.Verified
	result.CustomerID = state.CustomerID

	metadata, _ := json.Marshal(map[string]interface{}{
		"intent":                result.Intent,
		"tools_used":            result.ToolsUsed,
		"requires_verification": result.RequiresVerification,
		"verified":              result.Verified,
	})
	if err := s.enqueueMessage(ctx, input.SessionID, state.CustomerID, model.RoleAssistant, result.Response, string(metadata)); err != nil {
		return nil, err
	}

	if err := s.sessions.Touch(ctx, input.SessionID, state); err != nil {
		s.log.WithError(err).WithField("session_id", input.SessionID).Warn("touch session failed")
	}

	details := fmt.Sprintf("intent: %s, confidence: %.2f", analysis.Primary, analysis.Confidence)
	if input.CustomerID != "" && state.CustomerID == "" {
		details += ", claimed_customer: " + input.CustomerID
	}
	s.auditor.RecordRequest(ctx, input.SessionID, state.CustomerID, "process_message",
		details, model.AuditStatusSuccess, input.ClientIP, input.UserAgent)

	return result, nil
}

// StreamMessage streams LLM output chunk by chunk for open-ended questions.
// Tool-backed intents produce a single chunk with the full response.
func (s *ChatService) StreamMessage(ctx context.Context, input ProcessInput, onChunk func(chunk string) error) (*ChatResult, error) {
	message := sanitizeMessage(input.Message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	state, err := s.sessions.Resolve(ctx, input.SessionID)
	if errors.Is(err, ErrSessionExpired) {
		result := &ChatResult{
			Response:           "Your session has expired due to inactivity. Please start a new session.",
			SessionID:          input.SessionID,
			RequiresNewSession: true,
		}
		if err := onChunk(result.Response); err != nil {
			return nil, err
		}
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	analysis := agent.Analyze(message)
	streamable := analysis.Primary == agent.IntentGeneralInquiry &&
		!state.AwaitingCredentials && !state.AwaitingSecurityAnswer

	if !streamable {
		result, err := s.ProcessMessage(ctx, input)
		if err != nil {
			return nil, err
		}
		if err := onChunk(result.Response); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := s.enqueueMessage(ctx, input.SessionID, state.CustomerID, model.RoleUser, message, ""); err != nil {
		return nil, err
	}

	response, err := s.llm.StreamComplete(ctx, s.llmCfg, s.buildLLMMessages(input.SessionID, message), onChunk)
	if err != nil {
		s.log.WithError(err).Warn("llm stream failed, sending fallback")
		response = s.fallbackResponse()
		if err := onChunk(response); err != nil {
			return nil, err
		}
	}

	result := &ChatResult{
		Response:   response,
		SessionID:  input.SessionID,
		Intent:     agent.IntentGeneralInquiry,
		Verified:   state.Verified,
		CustomerID: state.CustomerID,
		ToolsUsed:  []string{"llm_completion"},
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"intent":     result.Intent,
		"tools_used": result.ToolsUsed,
		"verified":   result.Verified,
	})
	if err := s.enqueueMessage(ctx, input.SessionID, state.CustomerID, model.RoleAssistant, response, string(metadata)); err != nil {
		return nil, err
	}

	if err := s.sessions.Touch(ctx, input.SessionID, state); err != nil {
		s.log.WithError(err).WithField("session_id", input.SessionID).Warn("touch session failed")
	}

	s.auditor.RecordRequest(ctx, input.SessionID, state.CustomerID, "process_message",
		fmt.Sprintf("intent: %s (stream)", analysis.Primary),
		model.AuditStatusSuccess, input.ClientIP, input.UserAgent)

	return result, nil
}

// GetHistory serves conversation history through the cache unless async
// persistence is still in flight for this session. Both paths return the
// newest limit turns in chronological order.
func (s *ChatService) GetHistory(ctx context.Context, sessionID string, limit int) ([]model.Message, error) {
	dirty, err := s.history.IsDirty(ctx, sessionID)
	if err != nil {
		s.log.WithError(err).Warn("check history dirty marker failed")
		dirty = true
	}
	if dirty {
		return s.messages.ListRecentBySessionID(sessionID, limit)
	}

	if cached, hit, err := s.history.GetHistory(ctx, sessionID); err == nil && hit {
		if limit > 0 && len(cached) > limit {
			cached = cached[len(cached)-limit:]
		}
		return cached, nil
	}

	messages, err := s.messages.ListRecentBySessionID(sessionID, limit)
	if err != nil {
		return nil, err
	}
	if err := s.history.SetHistory(ctx, sessionID, messages); err != nil {
		s.log.WithError(err).Warn("set history cache failed")
	}
	return messages, nil
}

func (s *ChatService) dispatch(ctx context.Context, input ProcessInput, state *cache.SessionState, analysis agent.Analysis, message string) *ChatResult {
	intent := analysis.Primary

	// Mid-verification answers are not re-classified, the customer is
	// responding to our own question.
	if state.AwaitingSecurityAnswer || state.AwaitingCredentials {
		intent = agent.IntentIdentityVerify
	}

	switch intent {
	case agent.IntentGreeting:
		return &ChatResult{
			Response: fmt.Sprintf(
				"Hello! Welcome to %s customer service. I can help you check balances, review transactions, update contact details and manage documents. How can I assist you today?",
				s.bankName),
			Intent: intent,
		}

	case agent.IntentIdentityVerify:
		return s.handleVerification(ctx, input, state, analysis, message)

	case agent.IntentEscalation:
		return s.handleEscalation(ctx, input.SessionID, state, message)

	case agent.IntentGeneralSupport:
		return s.handleKnowledge(ctx, input.SessionID, state, message)

	case agent.IntentGeneralInquiry:
		return s.handleOpenEnded(ctx, input.SessionID, message)
	}

	if sensitiveIntents[intent] && !state.Verified {
		state.AwaitingCredentials = true
		return &ChatResult{
			Response: "For your security, I need to verify your identity before accessing account information. " +
				"Please provide your full name and account number.",
			Intent:               intent,
			RequiresVerification: true,
		}
	}

	switch intent {
	case agent.IntentBalance:
		return s.handleBalance(ctx, input.SessionID, state)
	case agent.IntentTransactions:
		return s.handleTransactions(ctx, input.SessionID, state)
	case agent.IntentUpdateInfo:
		return s.handleUpdate(ctx, input.SessionID, state, analysis)
	case agent.IntentFileManagement:
		return s.handleDocuments(ctx, input.SessionID, state)
	case agent.IntentDocumentOCR:
		return &ChatResult{
			Response: "I can read the contents of plain-text and PDF documents you have uploaded. " +
				"Upload a file through the documents section, then ask me to extract its text.",
			Intent: intent,
		}
	}

	return s.handleOpenEnded(ctx, input.SessionID, message)
}

func (s *ChatService) handleVerification(ctx context.Context, input ProcessInput, state *cache.SessionState, analysis agent.Analysis, message string) *ChatResult {
	intent := agent.IntentIdentityVerify

	if state.Verified {
		return &ChatResult{
			Response: "Your identity is already verified. How can I help you with your account?",
			Intent:   intent,
		}
	}

	if state.AwaitingSecurityAnswer {
		verify, err := s.identity.Verify(ctx, VerifyInput{
			SessionID:      input.SessionID,
			FullName:       state.PendingName,
			AccountNumber:  state.PendingAccount,
			SecurityAnswer: message,
		})
		if err != nil {
			s.log.WithError(err).Error("identity verification failed")
			return &ChatResult{
				Response: "I could not complete verification right now. Please try again in a moment.",
				Intent:   intent,
			}
		}

		if verify.Verified {
			state.Verified = true
			state.CustomerID = verify.CustomerID
			state.AwaitingSecurityAnswer = false
			state.PendingName = ""
			state.PendingAccount = ""
			state.PendingCustomerID = ""

			result := &ChatResult{Response: verify.Message, Intent: intent}
			token, err := jwtutil.GenerateSessionToken(s.jwtSecret, s.jwtExpire, input.SessionID, verify.CustomerID)
			if err != nil {
				s.log.WithError(err).Error("mint session token failed")
			} else {
				result.SessionToken = token
			}
			return result
		}

		if !verify.RequiresSecurityQuestion {
			// Locked out or otherwise terminal, drop the pending attempt.
			state.AwaitingSecurityAnswer = false
			state.PendingName = ""
			state.PendingAccount = ""
			state.PendingCustomerID = ""
		}
		return &ChatResult{
			Response:                 verify.Message,
			Intent:                   intent,
			RequiresVerification:     true,
			RequiresSecurityQuestion: verify.RequiresSecurityQuestion,
		}
	}

	accountNumber := analysis.Entities[agent.EntityAccountNumber]
	fullName := agent.ExtractFullName(message, accountNumber)
	if accountNumber == "" || fullName == "" {
		state.AwaitingCredentials = true
		return &ChatResult{
			Response: "To verify your identity, please provide your full name and account number. " +
				"For example: \"My name is Jane Smith and my account number is 12345678\".",
			Intent:               intent,
			RequiresVerification: true,
		}
	}

	verify, err := s.identity.Verify(ctx, VerifyInput{
		SessionID:     input.SessionID,
		FullName:      fullName,
		AccountNumber: accountNumber,
	})
	if err != nil {
		s.log.WithError(err).Error("identity verification failed")
		return &ChatResult{
			Response: "I could not complete verification right now. Please try again in a moment.",
			Intent:   intent,
		}
	}

	if verify.RequiresSecurityQuestion {
		state.AwaitingCredentials = false
		state.AwaitingSecurityAnswer = true
		state.PendingName = fullName
		state.PendingAccount = accountNumber
		state.PendingCustomerID = verify.CustomerID
		return &ChatResult{
			Response:                 verify.Message,
			Intent:                   intent,
			RequiresVerification:     true,
			RequiresSecurityQuestion: true,
		}
	}

	state.AwaitingCredentials = false
	return &ChatResult{
		Response:             verify.Message,
		Intent:               intent,
		RequiresVerification: !verify.Verified,
	}
}

func (s *ChatService) handleEscalation(ctx context.Context, sessionID string, state *cache.SessionState, message string) *ChatResult {
	priority := model.PriorityNormal
	lower := strings.ToLower(message)
	if strings.Contains(lower, "urgent") || strings.Contains(lower, "fraud") || strings.Contains(lower, "stolen") {
		priority = model.PriorityUrgent
	} else if strings.Contains(lower, "complain") || strings.Contains(lower, "manager") {
		priority = model.PriorityHigh
	}

	escalation, err := s.support.Escalate(ctx, sessionID, state.CustomerID, message, priority)
	if err != nil {
		s.log.WithError(err).Error("create escalation failed")
		return &ChatResult{
			Response: "I could not create an escalation ticket right now. Please call our support line directly.",
			Intent:   agent.IntentEscalation,
		}
	}

	return &ChatResult{
		Response:     escalation.Message,
		Intent:       agent.IntentEscalation,
		EscalationID: escalation.TicketID,
		ToolsUsed:    []string{"escalate_to_human"},
	}
}

func (s *ChatService) handleKnowledge(ctx context.Context, sessionID string, state *cache.SessionState, message string) *ChatResult {
	entries := s.support.SearchKnowledge(ctx, sessionID, state.CustomerID, message)
	if len(entries) == 0 {
		return s.handleOpenEnded(ctx, sessionID, message)
	}

	entry := entries[0]
	var b strings.Builder
	b.WriteString(entry.Topic + ": " + entry.Information)
	if len(entry.Steps) > 0 {
		b.WriteString("\n\nSteps:")
		for _, step := range entry.Steps {
			b.WriteString("\n• " + step)
		}
	}
	if len(entry.Requirements) > 0 {
		b.WriteString("\n\nYou will need: " + strings.Join(entry.Requirements, ", ") + ".")
	}

	return &ChatResult{
		Response:  b.String(),
		Intent:    agent.IntentGeneralSupport,
		ToolsUsed: []string{"banking_knowledge_base"},
	}
}

func (s *ChatService) handleBalance(ctx context.Context, sessionID string, state *cache.SessionState) *ChatResult {
	balance, err := s.accounts.QueryBalance(ctx, sessionID, state.CustomerID)
	if err != nil {
		s.log.WithError(err).Error("query balance failed")
		return &ChatResult{
			Response: "I could not retrieve your balance right now. Please try again shortly.",
			Intent:   agent.IntentBalance,
		}
	}

	response := fmt.Sprintf("%s, your current account balance is $%.2f.", balance.CustomerName, balance.CurrentBalance)
	if balance.BalanceStatus != "verified" {
		response += " Note: the balance is being reconciled against recent transactions."
	}
	return &ChatResult{
		Response:  response,
		Intent:    agent.IntentBalance,
		ToolsUsed: []string{"query_account_balance"},
	}
}

func (s *ChatService) handleTransactions(ctx context.Context, sessionID string, state *cache.SessionState) *ChatResult {
	history, err := s.accounts.TransactionHistory(ctx, sessionID, state.CustomerID, 10, 30)
	if err != nil {
		s.log.WithError(err).Error("transaction history failed")
		return &ChatResult{
			Response: "I could not retrieve your transaction history right now. Please try again shortly.",
			Intent:   agent.IntentTransactions,
		}
	}

	if history.Summary.TotalTransactions == 0 {
		return &ChatResult{
			Response:  "You have no transactions in the last 30 days.",
			Intent:    agent.IntentTransactions,
			ToolsUsed: []string{"transaction_history"},
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d transactions in the last %d days (credits $%.2f, debits $%.2f, net $%+.2f).",
		history.Summary.TotalTransactions, history.Summary.DateRangeDays,
		history.Summary.TotalCredits, history.Summary.TotalDebits, history.Summary.NetChange)

	// Transactions arrive newest first.
	recent := history.Transactions
	if len(recent) > 3 {
		recent = recent[:3]
	}
	b.WriteString(" Most recent:")
	for _, txn := range recent {
		fmt.Fprintf(&b, "\n• %s $%.2f - %s (%s)",
			txn.Type, txn.Amount, txn.Description, txn.CreatedAt.Format("Jan 2"))
	}

	return &ChatResult{
		Response:  b.String(),
		Intent:    agent.IntentTransactions,
		ToolsUsed: []string{"transaction_history"},
	}
}

func (s *ChatService) handleUpdate(ctx context.Context, sessionID string, state *cache.SessionState, analysis agent.Analysis) *ChatResult {
	updates := map[string]string{}
	if email := analysis.Entities[agent.EntityNewEmail]; email != "" {
		updates["email"] = email
	}
	if phone := analysis.Entities[agent.EntityNewPhone]; phone != "" {
		updates["phone"] = phone
	}

	if len(updates) == 0 {
		field := analysis.Entities[agent.EntityUpdateField]
		if field == "" {
			field = "contact information"
		}
		return &ChatResult{
			Response: fmt.Sprintf("I can update your %s. Please include the new value in your message, for example: \"update my email to jane@example.com\".", field),
			Intent:   agent.IntentUpdateInfo,
		}
	}

	result, err := s.accounts.UpdateCustomerRecord(ctx, sessionID, state.CustomerID, updates)
	if err != nil {
		s.log.WithError(err).Error("update customer record failed")
		return &ChatResult{
			Response: "I could not update your information right now. Please try again shortly.",
			Intent:   agent.IntentUpdateInfo,
		}
	}

	return &ChatResult{
		Response:  fmt.Sprintf("Done, %s. I have updated your %s.", result.CustomerName, strings.Join(result.UpdatedFields, " and ")),
		Intent:    agent.IntentUpdateInfo,
		ToolsUsed: []string{"update_customer_record"},
	}
}

func (s *ChatService) handleDocuments(ctx context.Context, sessionID string, state *cache.SessionState) *ChatResult {
	docs, err := s.documents.List(ctx, sessionID, state.CustomerID)
	if err != nil {
		s.log.WithError(err).Error("list documents failed")
		return &ChatResult{
			Response: "I could not access your documents right now. Please try again shortly.",
			Intent:   agent.IntentFileManagement,
		}
	}

	if len(docs) == 0 {
		return &ChatResult{
			Response:  "You have no documents on file. You can upload statements, applications or identification through the documents section.",
			Intent:    agent.IntentFileManagement,
			ToolsUsed: []string{"list_customer_documents"},
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d document(s) on file:", len(docs))
	for _, doc := range docs {
		fmt.Fprintf(&b, "\n• %s (%s, %s)", doc.Filename, doc.Category, doc.CreatedAt.Format("Jan 2, 2006"))
	}

	return &ChatResult{
		Response:  b.String(),
		Intent:    agent.IntentFileManagement,
		ToolsUsed: []string{"list_customer_documents"},
	}
}

func (s *ChatService) handleOpenEnded(ctx context.Context, sessionID, message string) *ChatResult {
	response, err := s.llm.Complete(ctx, s.llmCfg, s.buildLLMMessages(sessionID, message))
	if err != nil {
		s.log.WithError(err).Warn("llm completion failed, sending fallback")
		return &ChatResult{
			Response: s.fallbackResponse(),
			Intent:   agent.IntentGeneralInquiry,
		}
	}
	return &ChatResult{
		Response:  response,
		Intent:    agent.IntentGeneralInquiry,
		ToolsUsed: []string{"llm_completion"},
	}
}

func (s *ChatService) buildLLMMessages(sessionID, message string) []ai.ChatMessage {
	messages := []ai.ChatMessage{{
		Role: "system",
		Content: fmt.Sprintf(
			"You are a helpful customer service assistant for %s. Answer banking questions clearly and briefly. Never invent account details, balances or transactions. For anything account-specific, tell the customer to verify their identity first.",
			s.bankName),
	}}

	history, err := s.messages.ListRecentBySessionID(sessionID, s.maxContext)
	if err != nil {
		s.log.WithError(err).Warn("load llm context failed")
	}
	for _, msg := range history {
		messages = append(messages, ai.ChatMessage{Role: msg.Role, Content: msg.Content})
	}

	return append(messages, ai.ChatMessage{Role: "user", Content: message})
}

func (s *ChatService) fallbackResponse() string {
	return fmt.Sprintf(
		"I can help with account balances, transaction history, contact detail updates and documents here at %s. Could you rephrase your question, or say \"representative\" to reach a human agent?",
		s.bankName)
}

func (s *ChatService) enqueueMessage(ctx context.Context, sessionID, customerID, role, content, metadata string) error {
	message := model.Message{
		SessionID:  sessionID,
		CustomerID: customerID,
		Role:       role,
		Content:    content,
		Metadata:   metadata,
		CreatedAt:  time.Now(),
	}
	if err := s.publisher.Publish(ctx, message); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Error("publish chat message failed")
		return ErrMessageEnqueue
	}
	if err := s.history.MarkDirty(ctx, sessionID); err != nil {
		s.log.WithError(err).Warn("mark history dirty failed")
	}
	if err := s.history.DeleteHistory(ctx, sessionID); err != nil {
		s.log.WithError(err).Warn("invalidate history cache failed")
	}
	return nil
}
