package memory

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/baechuer/skillmarket/internal/domain"
)

type tokenEntry struct {
	userID    string
	expiresAt time.Time
}

// SessionStore keeps refresh tokens in process memory. Used when Redis is absent.
type SessionStore struct {
	mu     sync.Mutex
	tokens map[string]tokenEntry
	now    func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{tokens: make(map[string]tokenEntry), now: time.Now}
}

func (s *SessionStore) CreateRefreshToken(_ context.Context, userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", domain.ErrMissingField("user_id")
	}
	tok, err := newOpaqueToken(32)
	if err != nil {
		return "", domain.ErrRandomFailed(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tok] = tokenEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return tok, nil
}

func (s *SessionStore) GetUserIDByRefreshToken(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(token)
}

// RotateRefreshToken consumes oldToken and issues a new one for the same user.
func (s *SessionStore) RotateRefreshToken(_ context.Context, oldToken string, ttl time.Duration) (string, error) {
	tok, err := newOpaqueToken(32)
	if err != nil {
		return "", domain.ErrRandomFailed(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uid, err := s.lookupLocked(oldToken)
	if err != nil {
		return "", err
	}
	delete(s.tokens, oldToken)
	s.tokens[tok] = tokenEntry{userID: uid, expiresAt: s.now().Add(ttl)}
	return tok, nil
}

func (s *SessionStore) RevokeRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *SessionStore) lookupLocked(token string) (string, error) {
	e, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrRefreshTokenInvalid()
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.tokens, token)
		return "", domain.ErrRefreshTokenInvalid()
	}
	return e.userID, nil
}

func newOpaqueToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
