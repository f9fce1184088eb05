package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// SessionState is the hot per-session conversation state. The Redis TTL is the
// session timeout, so an expired key means the session timed out.
type SessionState struct {
	CustomerID             string    `json:"customer_id,omitempty"`
	Verified               bool      `json:"verified"`
	AwaitingCredentials    bool      `json:"awaiting_credentials,omitempty"`
	AwaitingSecurityAnswer bool      `json:"awaiting_security_answer,omitempty"`
	PendingCustomerID      string    `json:"pending_customer_id,omitempty"`
	PendingName            string    `json:"pending_name,omitempty"`
	PendingAccount         string    `json:"pending_account,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	LastActivityAt         time.Time `json:"last_activity_at"`
}

type SessionCache struct {
	client     *redisv9.Client
	sessionTTL time.Duration
}

func NewSessionCache(client *redisv9.Client, sessionTTL time.Duration) *SessionCache {
	if sessionTTL <= 0 {
		sessionTTL = 30 * time.Minute
	}
	return &SessionCache{
		client:     client,
		sessionTTL: sessionTTL,
	}
}

func (c *SessionCache) Get(ctx context.Context, sessionID string) (*SessionState, bool, error) {
	raw, err := c.client.Get(ctx, c.stateKey(sessionID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get session state failed: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, false, fmt.Errorf("unmarshal session state failed: %w", err)
	}
	return &state, true, nil
}

func (c *SessionCache) Set(ctx context.Context, sessionID string, state *SessionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state failed: %w", err)
	}
	if err := c.client.Set(ctx, c.stateKey(sessionID), payload, c.sessionTTL).Err(); err != nil {
		return fmt.Errorf("redis set session state failed: %w", err)
	}
	return nil
}

func (c *SessionCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, c.stateKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete session state failed: %w", err)
	}
	return nil
}

func (c *SessionCache) stateKey(sessionID string) string {
	return "chat:session:" + sessionID
}
