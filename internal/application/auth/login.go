package auth

import (
	"context"
)

// Login authenticates a user and issues tokens.
// Every mismatch surfaces as invalid_credentials.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	u, err := s.identity.VerifyCredentials(ctx, email, password)
	if err != nil {
		return Result{}, err
	}

	toks, err := s.issueTokens(ctx, u.ID)
	if err != nil {
		return Result{}, err
	}

	s.audit("user_logged_in", map[string]string{"user_id": u.ID})
	return Result{User: u, Tokens: toks}, nil
}
