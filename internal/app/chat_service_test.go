package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"nano-banking/internal/ai"
	"nano-banking/internal/cache"
	"nano-banking/internal/model"
)

type chatFixture struct {
	svc          *ChatService
	customers    *fakeCustomerStore
	sessions     *fakeSessionStore
	states       *fakeStateCache
	publisher    *fakePublisher
	history      *fakeHistoryCache
	messages     *fakeMessageStore
	transactions *fakeTransactionStore
	llm          *fakeLLM
	escalation   *fakeEscalationStore
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	hash, err := HashSecurityAnswer("Fluffy")
	if err != nil {
		t.Fatalf("HashSecurityAnswer err: %v", err)
	}
	customers := newFakeCustomerStore(&model.Customer{
		CustomerID:         "cust-1",
		FullName:           "Jane Smith",
		AccountNumber:      "12345678",
		SecurityQuestion:   "What is your pet's name?",
		SecurityAnswerHash: hash,
		AccountStatus:      model.AccountStatusActive,
		AccountBalance:     2500.75,
	})

	now := time.Now()
	sessions := newFakeSessionStore(&model.Session{
		SessionID:      "sess-1",
		Status:         model.SessionStatusActive,
		LastActivityAt: now,
		CreatedAt:      now,
	})
	states := newFakeStateCache()
	states.states["sess-1"] = &cache.SessionState{
		CreatedAt:      now,
		LastActivityAt: now,
	}

	publisher := &fakePublisher{}
	auditor := NewAuditor(&fakePublisher{}, nil)
	log := logrus.New()

	sessionService := NewSessionService(sessions, states, auditor, 30*time.Minute)
	identityService := NewIdentityService(customers, sessions, auditor, 3)
	transactions := &fakeTransactionStore{last: &model.Transaction{BalanceAfter: 2500.75}}
	accountService := NewAccountService(customers, transactions, auditor)
	documentService := NewDocumentService(newFakeDocumentStore(), auditor, t.TempDir(), 10)
	escalations := &fakeEscalationStore{}
	supportService := NewSupportService(escalations, &fakeAuditStore{}, auditor, "Bank Of AI")

	history := newFakeHistoryCache()
	messages := &fakeMessageStore{}
	llm := &fakeLLM{response: "Happy to help with that."}

	svc := NewChatService(ChatDeps{
		Sessions:          sessionService,
		Identity:          identityService,
		Accounts:          accountService,
		Documents:         documentService,
		Support:           supportService,
		Messages:          messages,
		History:           history,
		Publisher:         publisher,
		LLM:               llm,
		LLMConfig:         ai.ChatConfig{Model: "test"},
		Auditor:           auditor,
		Log:               log,
		MaxContextMessage: 20,
		JWTSecret:         "test-secret",
		JWTExpire:         30 * time.Minute,
		BankName:          "Bank Of AI",
	})

	return &chatFixture{
		svc:          svc,
		customers:    customers,
		sessions:     sessions,
		states:       states,
		publisher:    publisher,
		history:      history,
		messages:     messages,
		transactions: transactions,
		llm:          llm,
		escalation:   escalations,
	}
}

func (f *chatFixture) send(t *testing.T, message string) *ChatResult {
	t.Helper()
	result, err := f.svc.ProcessMessage(context.Background(), ProcessInput{
		SessionID: "sess-1",
		Message:   message,
	})
	if err != nil {
		t.Fatalf("ProcessMessage(%q) err: %v", message, err)
	}
	return result
}

func TestProcessMessageGreeting(t *testing.T) {
	f := newChatFixture(t)

	result := f.send(t, "Hello!")
	if result.Intent != "greeting" {
		t.Fatalf("Intent = %q", result.Intent)
	}
	if !strings.Contains(result.Response, "Bank Of AI") {
		t.Fatalf("greeting does not name the bank: %q", result.Response)
	}
	// Both conversation turns go to the persistence queue.
	if len(f.publisher.published) != 2 {
		t.Fatalf("published = %d messages, want 2", len(f.publisher.published))
	}
}

func TestProcessMessageSensitiveIntentRequiresVerification(t *testing.T) {
	f := newChatFixture(t)

	result := f.send(t, "What is my account balance?")
	if !result.RequiresVerification {
		t.Fatalf("expected verification gate, got: %q", result.Response)
	}
	if result.Verified {
		t.Fatal("unverified session reported as verified")
	}
	if !f.states.states["sess-1"].AwaitingCredentials {
		t.Fatal("session not awaiting credentials")
	}
}

func TestProcessMessageFullVerificationFlow(t *testing.T) {
	f := newChatFixture(t)

	// Trip the gate first.
	f.send(t, "show me my balance")

	result := f.send(t, "My name is Jane Smith and my account number is 12345678")
	if !result.RequiresSecurityQuestion {
		t.Fatalf("expected security question, got: %q", result.Response)
	}
	if !strings.Contains(result.Response, "pet's name") {
		t.Fatalf("security question missing: %q", result.Response)
	}

	result = f.send(t, "Fluffy")
	if !strings.Contains(result.Response, "Welcome, Jane Smith") {
		t.Fatalf("verification success message missing: %q", result.Response)
	}
	if result.SessionToken == "" {
		t.Fatal("no session token minted on verification")
	}
	if !f.states.states["sess-1"].Verified {
		t.Fatal("session state not marked verified")
	}

	result = f.send(t, "What is my account balance?")
	if !strings.Contains(result.Response, "$2500.75") {
		t.Fatalf("balance missing from response: %q", result.Response)
	}
	if len(result.ToolsUsed) == 0 || result.ToolsUsed[0] != "query_account_balance" {
		t.Fatalf("ToolsUsed = %v", result.ToolsUsed)
	}
}

func TestProcessMessageTransactionsShowNewestFirst(t *testing.T) {
	f := newChatFixture(t)
	f.states.states["sess-1"].Verified = true
	f.states.states["sess-1"].CustomerID = "cust-1"

	// The repository hands transactions back newest first.
	now := time.Now()
	f.transactions.recent = []model.Transaction{
		{Type: model.TransactionDebit, Amount: 4.50, Description: "coffee", CreatedAt: now},
		{Type: model.TransactionDebit, Amount: 12.00, Description: "lunch", CreatedAt: now.Add(-24 * time.Hour)},
		{Type: model.TransactionCredit, Amount: 1800.00, Description: "salary", CreatedAt: now.Add(-48 * time.Hour)},
		{Type: model.TransactionDebit, Amount: 60.00, Description: "groceries", CreatedAt: now.Add(-72 * time.Hour)},
		{Type: model.TransactionDebit, Amount: 900.00, Description: "rent", CreatedAt: now.Add(-96 * time.Hour)},
	}

	result := f.send(t, "show me my recent transactions")
	if result.Intent != "transaction_history" {
		t.Fatalf("Intent = %q", result.Intent)
	}
	for _, want := range []string{"coffee", "lunch", "salary"} {
		if !strings.Contains(result.Response, want) {
			t.Fatalf("newest transaction %q missing: %q", want, result.Response)
		}
	}
	for _, old := range []string{"groceries", "rent"} {
		if strings.Contains(result.Response, old) {
			t.Fatalf("older transaction %q listed as recent: %q", old, result.Response)
		}
	}
}

func TestProcessMessageIgnoresClaimedCustomerID(t *testing.T) {
	f := newChatFixture(t)

	result, err := f.svc.ProcessMessage(context.Background(), ProcessInput{
		SessionID:  "sess-1",
		Message:    "What is my account balance?",
		CustomerID: "cust-1",
	})
	if err != nil {
		t.Fatalf("ProcessMessage err: %v", err)
	}
	if !result.RequiresVerification {
		t.Fatal("claimed customer id bypassed the verification gate")
	}
	if result.CustomerID != "" {
		t.Fatalf("CustomerID = %q, want empty before verification", result.CustomerID)
	}
}

func TestProcessMessageEscalation(t *testing.T) {
	f := newChatFixture(t)

	result := f.send(t, "I want to speak to a human representative")
	if result.EscalationID == "" {
		t.Fatalf("no escalation ticket: %q", result.Response)
	}
	if !strings.HasPrefix(result.EscalationID, "ESC-") {
		t.Fatalf("EscalationID = %q", result.EscalationID)
	}
	if len(f.escalation.created) != 1 {
		t.Fatalf("escalations persisted = %d", len(f.escalation.created))
	}
}

func TestProcessMessageExpiredSession(t *testing.T) {
	f := newChatFixture(t)
	f.states.states["sess-1"].LastActivityAt = time.Now().Add(-time.Hour)

	result := f.send(t, "hello")
	if !result.RequiresNewSession {
		t.Fatalf("expected new session prompt, got: %q", result.Response)
	}
	if f.sessions.sessions["sess-1"].Status != model.SessionStatusExpired {
		t.Fatalf("session status = %q", f.sessions.sessions["sess-1"].Status)
	}
}

func TestProcessMessageLLMFallback(t *testing.T) {
	f := newChatFixture(t)
	f.llm.err = errors.New("model offline")

	result := f.send(t, "tell me something interesting")
	if result.Intent != "general_inquiry" {
		t.Fatalf("Intent = %q", result.Intent)
	}
	if !strings.Contains(result.Response, "Bank Of AI") {
		t.Fatalf("fallback response missing: %q", result.Response)
	}
}

func TestProcessMessagePublishFailure(t *testing.T) {
	f := newChatFixture(t)
	f.publisher.err = errors.New("broker down")

	_, err := f.svc.ProcessMessage(context.Background(), ProcessInput{
		SessionID: "sess-1",
		Message:   "hello",
	})
	if !errors.Is(err, ErrMessageEnqueue) {
		t.Fatalf("err = %v, want ErrMessageEnqueue", err)
	}
}

func TestProcessMessageRejectsEmptyAfterSanitize(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.ProcessMessage(context.Background(), ProcessInput{
		SessionID: "sess-1",
		Message:   `<>"'&`,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestProcessMessageUnknownSession(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.ProcessMessage(context.Background(), ProcessInput{
		SessionID: "sess-missing",
		Message:   "hello",
	})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestGetHistoryBypassesCacheWhileDirty(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	f.messages.messages = []model.Message{{SessionID: "sess-1", Role: model.RoleUser, Content: "from db"}}
	f.history.histories["sess-1"] = []model.Message{{SessionID: "sess-1", Role: model.RoleUser, Content: "stale cache"}}
	f.history.dirty["sess-1"] = true

	history, err := f.svc.GetHistory(ctx, "sess-1", 10)
	if err != nil {
		t.Fatalf("GetHistory err: %v", err)
	}
	if len(history) != 1 || history[0].Content != "from db" {
		t.Fatalf("history = %+v, want database copy", history)
	}
}

func TestGetHistoryReadsNewestWindowFromDatabase(t *testing.T) {
	f := newChatFixture(t)
	f.history.dirty["sess-1"] = true
	f.messages.messages = []model.Message{{SessionID: "sess-1", Role: model.RoleUser, Content: "from db"}}

	history, err := f.svc.GetHistory(context.Background(), "sess-1", 5)
	if err != nil {
		t.Fatalf("GetHistory err: %v", err)
	}
	if len(history) != 1 || history[0].Content != "from db" {
		t.Fatalf("history = %+v", history)
	}
	// The database fallback reads the same newest window the cache serves.
	if len(f.messages.recentLimits) != 1 || f.messages.recentLimits[0] != 5 {
		t.Fatalf("recent window requests = %v, want [5]", f.messages.recentLimits)
	}
}

func TestGetHistoryUsesCacheWhenClean(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	f.history.histories["sess-1"] = []model.Message{{SessionID: "sess-1", Role: model.RoleUser, Content: "cached"}}

	history, err := f.svc.GetHistory(ctx, "sess-1", 10)
	if err != nil {
		t.Fatalf("GetHistory err: %v", err)
	}
	if len(history) != 1 || history[0].Content != "cached" {
		t.Fatalf("history = %+v, want cached copy", history)
	}
}

func TestStreamMessageSingleChunkForToolIntents(t *testing.T) {
	f := newChatFixture(t)

	var chunks []string
	result, err := f.svc.StreamMessage(context.Background(), ProcessInput{
		SessionID: "sess-1",
		Message:   "Hello!",
	}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamMessage err: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if chunks[0] != result.Response {
		t.Fatalf("chunk %q != response %q", chunks[0], result.Response)
	}
}

func TestStreamMessageStreamsOpenEnded(t *testing.T) {
	f := newChatFixture(t)

	var chunks []string
	result, err := f.svc.StreamMessage(context.Background(), ProcessInput{
		SessionID: "sess-1",
		Message:   "tell me a story about dragons",
	}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamMessage err: %v", err)
	}
	if result.Intent != "general_inquiry" {
		t.Fatalf("Intent = %q", result.Intent)
	}
	if strings.Join(chunks, "") != "Happy to help with that." {
		t.Fatalf("streamed = %q", strings.Join(chunks, ""))
	}
}
