package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/baechuer/skillmarket/internal/domain"
)

// Refresh rotates a refresh token and issues a new access token.
// The old refresh token is invalid once used successfully.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Result, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return Result{}, domain.ErrRefreshTokenInvalid()
	}

	userID, err := s.sessions.GetUserIDByRefreshToken(ctx, refreshToken)
	if err != nil {
		return Result{}, sessionErr(err)
	}

	// a session outliving its user is just an invalid session
	u, err := s.identity.FindByID(ctx, userID)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			_ = s.sessions.RevokeRefreshToken(ctx, refreshToken)
			return Result{}, domain.ErrRefreshTokenInvalid()
		}
		return Result{}, err
	}

	newRefresh, err := s.sessions.RotateRefreshToken(ctx, refreshToken, s.refreshTTL)
	if err != nil {
		return Result{}, sessionErr(err)
	}

	access, err := s.signer.SignAccessToken(u.ID, s.accessTTL)
	if err != nil {
		return Result{}, domain.ErrTokenSignFailed(err)
	}

	return Result{User: u, Tokens: s.tokens(access, newRefresh)}, nil
}

// sessionErr keeps backend failures as they are so callers do not mistake an
// outage for a bad token.
func sessionErr(err error) error {
	var de *domain.Error
	if !errors.As(err, &de) {
		return domain.ErrInternal(err)
	}
	if de.Kind == domain.KindAuth {
		return domain.ErrRefreshTokenInvalid()
	}
	return err
}
