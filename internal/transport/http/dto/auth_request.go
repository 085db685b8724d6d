package dto

import (
	"strings"

	"github.com/baechuer/skillmarket/internal/domain"
	"github.com/baechuer/skillmarket/internal/transport/http/validate"
)

// -------- Core auth --------

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`

	FullName  string `json:"fullName,omitempty" validate:"max=200"`
	Specialty string `json:"specialty,omitempty" validate:"max=200"`
	Location  string `json:"location,omitempty" validate:"max=200"`
	Phone     string `json:"phone,omitempty" validate:"max=50"`
	ImageURL  string `json:"imageUrl,omitempty" validate:"max=2048"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validate.Struct(r)
}

func (r RegisterRequest) Fields() domain.ProfileFields {
	return domain.ProfileFields{
		FullName:  strings.TrimSpace(r.FullName),
		Specialty: strings.TrimSpace(r.Specialty),
		Location:  strings.TrimSpace(r.Location),
		Phone:     strings.TrimSpace(r.Phone),
		ImageURL:  strings.TrimSpace(r.ImageURL),
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validate.Struct(r)
}
