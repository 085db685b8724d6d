package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/baechuer/skillmarket/internal/domain"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

// Store owns the User record. Every write goes through prepareForPersist
// and every read strips the credential.
type Store struct {
	users  UserRepo
	hasher PasswordHasher
	check  *validator.Validate

	now   func() time.Time
	newID func() string
}

func NewStore(users UserRepo, hasher PasswordHasher) *Store {
	return &Store{
		users:  users,
		hasher: hasher,
		check:  validator.New(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create validates, hashes and persists a new user.
func (s *Store) Create(ctx context.Context, email, password string, fields domain.ProfileFields) (domain.PublicUser, error) {
	u := domain.User{
		ID:        s.newID(),
		Email:     email,
		FullName:  strings.TrimSpace(fields.FullName),
		Specialty: strings.TrimSpace(fields.Specialty),
		Location:  strings.TrimSpace(fields.Location),
		Phone:     strings.TrimSpace(fields.Phone),
		ImageURL:  strings.TrimSpace(fields.ImageURL),
	}
	if err := s.prepareForPersist(&u, &password); err != nil {
		return domain.PublicUser{}, err
	}
	u.CreatedAt = u.UpdatedAt

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return created.Public(), nil
}

func (s *Store) FindByID(ctx context.Context, id string) (domain.PublicUser, error) {
	if strings.TrimSpace(id) == "" {
		return domain.PublicUser{}, domain.ErrUserNotFound()
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (domain.PublicUser, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return domain.PublicUser{}, domain.ErrUserNotFound()
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return u.Public(), nil
}

// Update merges patch into the stored record for id. A password in the
// patch is re-hashed; an empty patch returns the current record untouched.
func (s *Store) Update(ctx context.Context, id string, patch domain.ProfilePatch) (domain.PublicUser, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.PublicUser{}, err
	}
	if patch.IsEmpty() {
		return u.Public(), nil
	}

	patch.ApplyTo(&u)
	if err := s.prepareForPersist(&u, patch.Password); err != nil {
		return domain.PublicUser{}, err
	}

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return updated.Public(), nil
}

// VerifyCredentials returns the user when password matches the stored hash.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Store) VerifyCredentials(ctx context.Context, email, password string) (domain.PublicUser, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.PublicUser{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.PublicUser{}, domain.ErrInvalidCredentials()
		}
		return domain.PublicUser{}, err
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return domain.PublicUser{}, domain.ErrInvalidCredentials()
	}
	return u.Public(), nil
}

// prepareForPersist runs on every write path before the repo is called.
// It normalizes and validates the email, hashes newPassword when non-nil,
// and stamps UpdatedAt.
func (s *Store) prepareForPersist(u *domain.User, newPassword *string) error {
	u.Email = NormalizeEmail(u.Email)
	if u.Email == "" {
		return domain.ErrMissingField("email")
	}
	if err := s.check.Var(u.Email, "email"); err != nil {
		return domain.ErrInvalidField("email", "format")
	}

	if newPassword != nil {
		pw := *newPassword
		if pw == "" {
			return domain.ErrMissingField("password")
		}
		if len(pw) > maxPasswordBytes {
			return domain.ErrWeakPassword("password must be at most 72 bytes")
		}
		hash, err := s.hasher.Hash(pw)
		if err != nil {
			var de *domain.Error
			if errors.As(err, &de) {
				return err
			}
			return domain.ErrHashFailed(err)
		}
		u.PasswordHash = hash
	}
	if u.PasswordHash == "" {
		return domain.ErrMissingField("password")
	}

	u.UpdatedAt = s.now()
	return nil
}
