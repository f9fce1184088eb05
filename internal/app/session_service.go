package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"nano-banking/internal/cache"
	"nano-banking/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// SessionStateCache holds hot per-session conversation state with the session
// timeout as TTL.
type SessionStateCache interface {
	Get(ctx context.Context, sessionID string) (*cache.SessionState, bool, error)
	Set(ctx context.Context, sessionID string, state *cache.SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

// SessionService owns the session lifecycle: create, restore, touch,
// terminate, and the idle timeout.
type SessionService struct {
	sessions SessionStore
	cache    SessionStateCache
	auditor  *Auditor
	timeout  time.Duration
}

func NewSessionService(sessions SessionStore, stateCache SessionStateCache, auditor *Auditor, timeout time.Duration) *SessionService {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &SessionService{
		sessions: sessions,
		cache:    stateCache,
		auditor:  auditor,
		timeout:  timeout,
	}
}

func (s *SessionService) Create(ctx context.Context, customerID string) (*model.Session, error) {
	now := time.Now()
	session := &model.Session{
		SessionID:      uuid.NewString(),
		CustomerID:     customerID,
		Status:         model.SessionStatusActive,
		LastActivityAt: now,
		CreatedAt:      now,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}

	state := &cache.SessionState{
		CustomerID:     customerID,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, session.SessionID, state)
	}

	s.auditor.Record(ctx, session.SessionID, customerID, "create_session",
		"new session created", model.AuditStatusSuccess)
	return session, nil
}

// Resolve returns the live state for a session, restoring it from the
// database when the cache entry is gone but the session is still within its
// idle window.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (*cache.SessionState, error) {
	if s.cache != nil {
		state, hit, err := s.cache.Get(ctx, sessionID)
		if err == nil && hit {
			if time.Since(state.LastActivityAt) > s.timeout {
				_ = s.cache.Delete(ctx, sessionID)
				_ = s.sessions.UpdateStatus(sessionID, model.SessionStatusExpired)
				return nil, ErrSessionExpired
			}
			return state, nil
		}
	}

	session, err := s.sessions.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Status != model.SessionStatusActive {
		return nil, ErrSessionNotFound
	}
	if time.Since(session.LastActivityAt) > s.timeout {
		_ = s.sessions.UpdateStatus(sessionID, model.SessionStatusExpired)
		return nil, ErrSessionExpired
	}

	state := &cache.SessionState{
		CustomerID:     session.CustomerID,
		Verified:       session.Verified,
		CreatedAt:      session.CreatedAt,
		LastActivityAt: session.LastActivityAt,
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, sessionID, state)
	}
	return state, nil
}

// Touch refreshes the idle window and writes the state back to the cache.
func (s *SessionService) Touch(ctx context.Context, sessionID string, state *cache.SessionState) error {
	state.LastActivityAt = time.Now()
	if s.cache != nil {
		if err := s.cache.Set(ctx, sessionID, state); err != nil {
			return err
		}
	}
	return s.sessions.TouchActivity(sessionID, state.LastActivityAt)
}

func (s *SessionService) Terminate(ctx context.Context, sessionID string) error {
	session, err := s.sessions.GetBySessionID(sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	if err := s.sessions.UpdateStatus(sessionID, model.SessionStatusTerminated); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, sessionID)
	}

	s.auditor.Record(ctx, sessionID, session.CustomerID, "end_session",
		"session terminated", model.AuditStatusSuccess)
	return nil
}

func (s *SessionService) Timeout() time.Duration {
	return s.timeout
}
