package identity

import (
	"context"

	"github.com/baechuer/skillmarket/internal/domain"
)

// UserRepo is the persistence port for users.
// Implementations return domain.ErrUserNotFound for missing rows and
// domain.ErrEmailAlreadyExists on a unique email violation.
type UserRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, u domain.User) (domain.User, error)
}

// PasswordHasher abstracts bcrypt.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}
