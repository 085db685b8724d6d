package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baechuer/skillmarket/internal/domain"
)

const (
	pgUniqueViolation           = "23505"
	pgInvalidTextRepresentation = "22P02"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// mapErr turns driver errors into domain errors.
func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound()
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.ErrEmailAlreadyExists()
		case pgInvalidTextRepresentation:
			// malformed uuid in a lookup; no such row can exist
			return domain.ErrUserNotFound()
		}
	}
	return domain.ErrStorage(err)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return ur.toDomain(), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, domain.ErrUserNotFound()
	}

	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return ur.toDomain(), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	switch {
	case u.ID == "":
		return domain.User{}, domain.ErrMissingField("id")
	case u.Email == "":
		return domain.User{}, domain.ErrMissingField("email")
	case u.PasswordHash == "":
		return domain.User{}, domain.ErrMissingField("password_hash")
	}

	q := `
INSERT INTO users (id, email, password_hash, full_name, specialty, location, phone, image_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + userColumns

	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.PasswordHash,
		u.FullName, u.Specialty, u.Location, u.Phone, u.ImageURL,
		u.CreatedAt, u.UpdatedAt,
	))
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return ur.toDomain(), nil
}

// Update writes every mutable column of u. The caller has already merged
// the patch and hashed any new password.
func (r *UserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if strings.TrimSpace(u.ID) == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if _, err := uuid.Parse(u.ID); err != nil {
		return domain.User{}, domain.ErrUserNotFound()
	}

	q := `
UPDATE users
SET email = $2, password_hash = $3, full_name = $4, specialty = $5,
    location = $6, phone = $7, image_url = $8, updated_at = $9
WHERE id = $1
RETURNING ` + userColumns

	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.PasswordHash,
		u.FullName, u.Specialty, u.Location, u.Phone, u.ImageURL,
		u.UpdatedAt,
	))
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return ur.toDomain(), nil
}
