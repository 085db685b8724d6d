package dto

import (
	"strings"

	"github.com/baechuer/skillmarket/internal/domain"
	"github.com/baechuer/skillmarket/internal/transport/http/validate"
)

// ProfilePatchRequest is the PATCH /api/users/profile body. Absent keys
// stay nil and leave the stored value alone. There is no id field, so a
// body carrying one fails decoding.
type ProfilePatchRequest struct {
	Email    *string `json:"email" validate:"omitnil,email,max=254"`
	Password *string `json:"password" validate:"omitnil,min=8,max=72"`

	FullName  *string `json:"fullName" validate:"omitnil,max=200"`
	Specialty *string `json:"specialty" validate:"omitnil,max=200"`
	Location  *string `json:"location" validate:"omitnil,max=200"`
	Phone     *string `json:"phone" validate:"omitnil,max=50"`
	ImageURL  *string `json:"imageUrl" validate:"omitnil,max=2048"`
}

func (r *ProfilePatchRequest) Validate() error {
	r.Email = trimPtr(r.Email)
	r.FullName = trimPtr(r.FullName)
	r.Specialty = trimPtr(r.Specialty)
	r.Location = trimPtr(r.Location)
	r.Phone = trimPtr(r.Phone)
	r.ImageURL = trimPtr(r.ImageURL)
	return validate.Struct(r)
}

func (r ProfilePatchRequest) Patch() domain.ProfilePatch {
	return domain.ProfilePatch{
		Email:     r.Email,
		Password:  r.Password,
		FullName:  r.FullName,
		Specialty: r.Specialty,
		Location:  r.Location,
		Phone:     r.Phone,
		ImageURL:  r.ImageURL,
	}
}

type AvatarRequest struct {
	ContentType string `json:"contentType" validate:"required"`
}

func (r *AvatarRequest) Validate() error {
	r.ContentType = strings.ToLower(strings.TrimSpace(r.ContentType))
	return validate.Struct(r)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
