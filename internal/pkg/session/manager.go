// internal/pkg/session/manager.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	xerrors "alamin-service/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// Data is what we keep in redis for each live login.
type Data struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	LoginAt  time.Time `json:"login_at"`
}

// Manager stores one session entry per issued token, keyed by username and
// jti. Logout deletes the entry; token validation requires it to exist, so a
// revoked token fails even before it expires.
type Manager struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewManager(rdb *redis.Client, ttl time.Duration) *Manager {
	return &Manager{rdb: rdb, ttl: ttl}
}

func sessionKey(username, jti string) string {
	return fmt.Sprintf("session:%s:%s", strings.ToLower(username), jti)
}

// Create registers a new session with the token's lifetime.
func (m *Manager) Create(ctx context.Context, username, jti string, data Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := m.rdb.Set(ctx, sessionKey(username, jti), payload, m.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get returns the session for a token, or ErrSessionExpired when it has been
// revoked or has aged out.
func (m *Manager) Get(ctx context.Context, username, jti string) (*Data, error) {
	payload, err := m.rdb.Get(ctx, sessionKey(username, jti)).Bytes()
	if err == redis.Nil {
		return nil, xerrors.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &data, nil
}

// Delete revokes a single session.
func (m *Manager) Delete(ctx context.Context, username, jti string) error {
	if err := m.rdb.Del(ctx, sessionKey(username, jti)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteAll revokes every session belonging to a user.
func (m *Manager) DeleteAll(ctx context.Context, username string) error {
	pattern := sessionKey(username, "*")
	iter := m.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := m.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan sessions: %w", err)
	}
	return nil
}
