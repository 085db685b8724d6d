package auth

import (
	"context"

	"github.com/baechuer/skillmarket/internal/domain"
)

// Register creates the account, signs the user in and announces it.
// A failed announcement is logged and does not fail the registration.
func (s *Service) Register(ctx context.Context, email, password string, fields domain.ProfileFields) (Result, error) {
	u, err := s.identity.Create(ctx, email, password, fields)
	if err != nil {
		return Result{}, err
	}

	toks, err := s.issueTokens(ctx, u.ID)
	if err != nil {
		return Result{}, err
	}

	evt := domain.UserRegisteredEvent{UserID: u.ID, Email: u.Email, OccurredAt: s.now().UTC()}
	if err := s.pub.PublishUserRegistered(ctx, evt); err != nil {
		s.log.Warn().Err(err).Str("user_id", u.ID).Msg("publish user.registered failed")
	}
	s.audit("user_registered", map[string]string{"user_id": u.ID})

	return Result{User: u, Tokens: toks}, nil
}
