package auth

import (
	"context"
	"strings"
)

// Logout revokes the current refresh token. Missing tokens are a no-op.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}
	return s.sessions.RevokeRefreshToken(ctx, refreshToken)
}
