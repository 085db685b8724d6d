package identity

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/baechuer/skillmarket/internal/domain"
)

// DevUser matches the profile the mock client backend hands out, so both
// modes show the same account.
var DevUser = struct {
	Email    string
	Password string
	Fields   domain.ProfileFields
}{
	Email:    "user@example.com",
	Password: "UserPassword123!",
	Fields: domain.ProfileFields{
		FullName:  "Test User",
		Specialty: "Full Stack Development",
		Location:  "Remote",
		Phone:     "+1 (555) 123-4567",
	},
}

// SeedDev creates DevUser unless it already exists. Safe to call on every boot.
func (s *Store) SeedDev(ctx context.Context, lg zerolog.Logger) {
	_, err := s.Create(ctx, DevUser.Email, DevUser.Password, DevUser.Fields)
	switch {
	case err == nil:
		lg.Info().Str("email", DevUser.Email).Msg("seeded dev user")
	case domain.Is(err, "email_already_exists"):
		lg.Debug().Str("email", DevUser.Email).Msg("dev user already present")
	default:
		lg.Warn().Err(err).Msg("seed dev user failed")
	}
}
