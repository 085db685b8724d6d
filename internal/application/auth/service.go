package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/baechuer/skillmarket/internal/domain"
)

type Service struct {
	identity Identity
	signer   TokenSigner
	sessions SessionStore
	pub      EventPublisher
	log      zerolog.Logger

	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
	audit      func(action string, fields map[string]string)
}

type Config struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewService(identity Identity, signer TokenSigner, sessions SessionStore, pub EventPublisher, cfg Config) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		identity:   identity,
		signer:     signer,
		sessions:   sessions,
		pub:        pub,
		log:        zerolog.Nop(),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
		audit:      func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

func (s *Service) WithLogger(lg zerolog.Logger) *Service {
	s.log = lg
	return s
}

// AuthTokens is the common token output for handlers/DTO mapping.
type AuthTokens struct {
	AccessToken  string
	RefreshToken string // the handler moves this into an HttpOnly cookie
	ExpiresIn    int64  // seconds
	TokenType    string // "Bearer"
}

// Result is returned by every flow that authenticates a user.
type Result struct {
	User   domain.PublicUser
	Tokens AuthTokens
}

func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Service) issueTokens(ctx context.Context, userID string) (AuthTokens, error) {
	access, err := s.signer.SignAccessToken(userID, s.accessTTL)
	if err != nil {
		return AuthTokens{}, domain.ErrTokenSignFailed(err)
	}
	refresh, err := s.sessions.CreateRefreshToken(ctx, userID, s.refreshTTL)
	if err != nil {
		return AuthTokens{}, err
	}
	return s.tokens(access, refresh), nil
}

func (s *Service) tokens(access, refresh string) AuthTokens {
	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}
}
