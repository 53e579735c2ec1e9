package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

// AdminSessionStore keeps opaque admin sessions in Redis.
// Key format: admin_session:<session_id>, value is the JSON session, TTL set
// to the session expiry so the store itself enforces it.
type AdminSessionStore struct {
	client *redis.Client
}

func NewAdminSessionStore(client *redis.Client) *AdminSessionStore {
	return &AdminSessionStore{client: client}
}

func (s *AdminSessionStore) Put(ctx context.Context, session *domain.AdminSession) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.key(session.SessionID), raw, ttl).Err()
}

func (s *AdminSessionStore) Get(ctx context.Context, sessionID string) (*domain.AdminSession, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var session domain.AdminSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes the session. Deleting an absent key is not an error.
func (s *AdminSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}

func (s *AdminSessionStore) key(sessionID string) string {
	return "admin_session:" + sessionID
}
