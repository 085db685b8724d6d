package auth

import (
	"context"
	"time"

	"github.com/baechuer/skillmarket/internal/domain"
)

/*
Identity
--------
The subset of the identity store the auth flow needs.
*/
type Identity interface {
	Create(ctx context.Context, email, password string, fields domain.ProfileFields) (domain.PublicUser, error)
	FindByID(ctx context.Context, id string) (domain.PublicUser, error)
	VerifyCredentials(ctx context.Context, email, password string) (domain.PublicUser, error)
}

/*
TokenSigner
-----------
Issues and verifies access tokens (JWT).
Used by the service and the auth middleware.
*/
type TokenSigner interface {
	SignAccessToken(userID string, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (domain.AccessClaims, error)
}

/*
SessionStore
------------
Opaque refresh tokens. Backed by Redis, or memory in dev.
*/
type SessionStore interface {
	CreateRefreshToken(ctx context.Context, userID string, ttl time.Duration) (string, error)
	GetUserIDByRefreshToken(ctx context.Context, token string) (string, error)
	RotateRefreshToken(ctx context.Context, oldToken string, ttl time.Duration) (string, error)
	RevokeRefreshToken(ctx context.Context, token string) error
}

type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, evt domain.UserRegisteredEvent) error
}
