package app

import (
	"context"
	"strings"
	"time"

	"nano-banking/internal/ai"
	"nano-banking/internal/cache"
	"nano-banking/internal/model"
)

type fakePublisher struct {
	published []interface{}
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, payload interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, payload)
	return nil
}

func (p *fakePublisher) auditActions() []string {
	var actions []string
	for _, payload := range p.published {
		if entry, ok := payload.(model.AuditLog); ok {
			actions = append(actions, entry.Action)
		}
	}
	return actions
}

type fakeCustomerStore struct {
	customers map[string]*model.Customer
	updateErr error
	updated   map[string]interface{}
}

func newFakeCustomerStore(customers ...*model.Customer) *fakeCustomerStore {
	store := &fakeCustomerStore{customers: map[string]*model.Customer{}}
	for _, c := range customers {
		store.customers[c.CustomerID] = c
	}
	return store
}

func (s *fakeCustomerStore) GetByCustomerID(customerID string) (*model.Customer, error) {
	return s.customers[customerID], nil
}

func (s *fakeCustomerStore) FindByAccountAndName(accountNumber, fullName string) (*model.Customer, error) {
	for _, c := range s.customers {
		if c.AccountNumber == accountNumber &&
			strings.Contains(strings.ToLower(c.FullName), strings.ToLower(fullName)) {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeCustomerStore) Update(customer *model.Customer) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *fakeCustomerStore) UpdateFields(customerID string, fields map[string]interface{}) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = fields
	return nil
}

type fakeSessionStore struct {
	sessions map[string]*model.Session
	verified map[string]string
}

func newFakeSessionStore(sessions ...*model.Session) *fakeSessionStore {
	store := &fakeSessionStore{
		sessions: map[string]*model.Session{},
		verified: map[string]string{},
	}
	for _, s := range sessions {
		store.sessions[s.SessionID] = s
	}
	return store
}

func (s *fakeSessionStore) Create(session *model.Session) error {
	s.sessions[session.SessionID] = session
	return nil
}

func (s *fakeSessionStore) GetBySessionID(sessionID string) (*model.Session, error) {
	return s.sessions[sessionID], nil
}

func (s *fakeSessionStore) UpdateStatus(sessionID, status string) error {
	if session, ok := s.sessions[sessionID]; ok {
		session.Status = status
	}
	return nil
}

func (s *fakeSessionStore) TouchActivity(sessionID string, at time.Time) error {
	if session, ok := s.sessions[sessionID]; ok {
		session.LastActivityAt = at
	}
	return nil
}

func (s *fakeSessionStore) MarkVerified(sessionID, customerID string) error {
	s.verified[sessionID] = customerID
	if session, ok := s.sessions[sessionID]; ok {
		session.Verified = true
		session.CustomerID = customerID
	}
	return nil
}

type fakeTransactionStore struct {
	created []model.Transaction
	recent  []model.Transaction
	last    *model.Transaction
}

func (s *fakeTransactionStore) CreateWithBalance(txn *model.Transaction, newBalance float64) error {
	s.created = append(s.created, *txn)
	return nil
}

func (s *fakeTransactionStore) ListRecentByCustomerID(customerID string, since time.Time, limit int) ([]model.Transaction, error) {
	return s.recent, nil
}

func (s *fakeTransactionStore) LastByCustomerID(customerID string) (*model.Transaction, error) {
	return s.last, nil
}

type fakeDocumentStore struct {
	docs      map[string]*model.Document
	createErr error
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{docs: map[string]*model.Document{}}
}

func (s *fakeDocumentStore) Create(doc *model.Document) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.docs[doc.DocumentID] = doc
	return nil
}

func (s *fakeDocumentStore) GetByIDAndCustomerID(documentID, customerID string) (*model.Document, error) {
	doc, ok := s.docs[documentID]
	if !ok || doc.CustomerID != customerID {
		return nil, nil
	}
	return doc, nil
}

func (s *fakeDocumentStore) ListActiveByCustomerID(customerID string) ([]model.Document, error) {
	var docs []model.Document
	for _, doc := range s.docs {
		if doc.CustomerID == customerID && doc.Status == model.DocumentStatusActive {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (s *fakeDocumentStore) UpdateStatus(documentID, status string) error {
	if doc, ok := s.docs[documentID]; ok {
		doc.Status = status
	}
	return nil
}

type fakeEscalationStore struct {
	created []model.Escalation
}

func (s *fakeEscalationStore) Create(escalation *model.Escalation) error {
	s.created = append(s.created, *escalation)
	return nil
}

func (s *fakeEscalationStore) ListByStatus(status string, limit int) ([]model.Escalation, error) {
	var out []model.Escalation
	for _, e := range s.created {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAuditStore struct {
	logs []model.AuditLog
}

func (s *fakeAuditStore) ListBySessionID(sessionID string) ([]model.AuditLog, error) {
	var out []model.AuditLog
	for _, entry := range s.logs {
		if entry.SessionID == sessionID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeMessageStore struct {
	messages     []model.Message
	recentLimits []int
}

func (s *fakeMessageStore) ListRecentBySessionID(sessionID string, limit int) ([]model.Message, error) {
	s.recentLimits = append(s.recentLimits, limit)
	return s.messages, nil
}

type fakeHistoryCache struct {
	histories map[string][]model.Message
	dirty     map[string]bool
}

func newFakeHistoryCache() *fakeHistoryCache {
	return &fakeHistoryCache{
		histories: map[string][]model.Message{},
		dirty:     map[string]bool{},
	}
}

func (c *fakeHistoryCache) GetHistory(_ context.Context, sessionID string) ([]model.Message, bool, error) {
	messages, ok := c.histories[sessionID]
	return messages, ok, nil
}

func (c *fakeHistoryCache) SetHistory(_ context.Context, sessionID string, messages []model.Message) error {
	c.histories[sessionID] = messages
	return nil
}

func (c *fakeHistoryCache) DeleteHistory(_ context.Context, sessionID string) error {
	delete(c.histories, sessionID)
	return nil
}

func (c *fakeHistoryCache) MarkDirty(_ context.Context, sessionID string) error {
	c.dirty[sessionID] = true
	return nil
}

func (c *fakeHistoryCache) IsDirty(_ context.Context, sessionID string) (bool, error) {
	return c.dirty[sessionID], nil
}

type fakeStateCache struct {
	states map[string]*cache.SessionState
}

func newFakeStateCache() *fakeStateCache {
	return &fakeStateCache{states: map[string]*cache.SessionState{}}
}

func (c *fakeStateCache) Get(_ context.Context, sessionID string) (*cache.SessionState, bool, error) {
	state, ok := c.states[sessionID]
	return state, ok, nil
}

func (c *fakeStateCache) Set(_ context.Context, sessionID string, state *cache.SessionState) error {
	c.states[sessionID] = state
	return nil
}

func (c *fakeStateCache) Delete(_ context.Context, sessionID string) error {
	delete(c.states, sessionID)
	return nil
}

type fakeLLM struct {
	response string
	err      error
}

func (l *fakeLLM) Complete(_ context.Context, _ ai.ChatConfig, _ []ai.ChatMessage) (string, error) {
	if l.err != nil {
		return "", l.err
	}
	return l.response, nil
}

func (l *fakeLLM) StreamComplete(_ context.Context, _ ai.ChatConfig, _ []ai.ChatMessage, onChunk func(chunk string) error) (string, error) {
	if l.err != nil {
		return "", l.err
	}
	if err := onChunk(l.response); err != nil {
		return "", err
	}
	return l.response, nil
}
