package postgres

import (
	"database/sql"
	"time"

	"github.com/baechuer/skillmarket/internal/domain"
)

const userColumns = `id, email, password_hash, full_name, specialty, location, phone, image_url, created_at, updated_at`

type userRow struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Specialty    string
	Location     string
	Phone        string
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.PasswordHash,
		&ur.FullName,
		&ur.Specialty,
		&ur.Location,
		&ur.Phone,
		&ur.ImageURL,
		&ur.CreatedAt,
		&ur.UpdatedAt,
	)
	return ur, err
}

func (ur userRow) toDomain() domain.User {
	return domain.User{
		ID:           ur.ID,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash,
		FullName:     ur.FullName,
		Specialty:    ur.Specialty,
		Location:     ur.Location,
		Phone:        ur.Phone,
		ImageURL:     ur.ImageURL,
		CreatedAt:    ur.CreatedAt,
		UpdatedAt:    ur.UpdatedAt,
	}
}
