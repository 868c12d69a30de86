package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"tripsmith/pkg/cache"
)

var ErrSessionNotFound = errors.New("session not found")

// Session mirrors a verified login in redis so any instance can resolve it.
// The oauth2 token set rides along for providers that need refresh later.
type Session struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	Email        string        `json:"email,omitempty"`
	Token        *oauth2.Token `json:"token,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	LastAccessed time.Time     `json:"last_accessed"`
}

type SessionStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewSessionStore(c cache.Cache, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: c, ttl: ttl}
}

func (s *SessionStore) Create(ctx context.Context, identity *Identity, token *oauth2.Token) (*Session, error) {
	id, err := randomID(32)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &Session{
		ID:           id,
		UserID:       identity.Subject,
		Email:        identity.Email,
		Token:        token,
		CreatedAt:    now,
		LastAccessed: now,
	}
	if err := s.put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session and refreshes its TTL, a sliding expiry
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := s.cache.Get(ctx, sessionKey(sessionID))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	session.LastAccessed = time.Now().UTC()
	if err := s.put(ctx, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Del(ctx, sessionKey(sessionID))
}

func (s *SessionStore) put(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.cache.Set(ctx, sessionKey(session.ID), string(payload), s.ttl)
}

func sessionKey(id string) string {
	return "auth:session:" + id
}

func randomID(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
