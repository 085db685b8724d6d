package dto

import (
	"time"

	"github.com/baechuer/skillmarket/internal/application/auth"
	"github.com/baechuer/skillmarket/internal/application/profile"
	"github.com/baechuer/skillmarket/internal/domain"
)

// UserView is the public user payload. It has no password field at all.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Specialty string    `json:"specialty"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserView(u domain.PublicUser) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Specialty: u.Specialty,
		Location:  u.Location,
		Phone:     u.Phone,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// TokensView is the access token payload.
// (Refresh token is stored in HttpOnly cookie, so we never return it in JSON.)
type TokensView struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// AuthData is returned by register, login and refresh.
type AuthData struct {
	User   UserView   `json:"user"`
	Tokens TokensView `json:"tokens"`
}

func NewAuthData(res auth.Result) AuthData {
	return AuthData{
		User: NewUserView(res.User),
		Tokens: TokensView{
			AccessToken: res.Tokens.AccessToken,
			TokenType:   res.Tokens.TokenType,
			ExpiresIn:   res.Tokens.ExpiresIn,
		},
	}
}

type AvatarView struct {
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
	ExpiresIn int64  `json:"expiresIn"`
}

func NewAvatarView(a profile.AvatarUpload) AvatarView {
	return AvatarView{UploadURL: a.UploadURL, ImageURL: a.ImageURL, ExpiresIn: a.ExpiresIn}
}

type WorkView struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Duration           string    `json:"duration"`
	Budget             string    `json:"budget"`
	Location           string    `json:"location"`
	ExperienceYears    int       `json:"experienceYears"`
	RequiresReferences bool      `json:"requiresReferences"`
	Skills             []string  `json:"skills"`
	ImageURL           string    `json:"imageUrl,omitempty"`
	PostedBy           string    `json:"postedBy"`
	CreatedAt          time.Time `json:"createdAt"`
}

func NewWorkView(w domain.WorkListing) WorkView {
	return WorkView{
		ID:                 w.ID,
		Title:              w.Title,
		Description:        w.Description,
		Duration:           w.Duration,
		Budget:             w.Budget,
		Location:           w.Location,
		ExperienceYears:    w.ExperienceYears,
		RequiresReferences: w.RequiresReferences,
		Skills:             nonNil(w.Skills),
		ImageURL:           w.ImageURL,
		PostedBy:           w.PostedBy,
		CreatedAt:          w.CreatedAt,
	}
}

type CandidateView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Specialty string    `json:"specialty"`
	Location  string    `json:"location"`
	Bio       string    `json:"bio,omitempty"`
	Skills    []string  `json:"skills"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	PostedBy  string    `json:"postedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewCandidateView(c domain.Candidate) CandidateView {
	return CandidateView{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Specialty: c.Specialty,
		Location:  c.Location,
		Bio:       c.Bio,
		Skills:    nonNil(c.Skills),
		ImageURL:  c.ImageURL,
		PostedBy:  c.PostedBy,
		CreatedAt: c.CreatedAt,
	}
}

// ListView wraps a filtered collection.
type ListView[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewListView[S, T any](in []S, conv func(S) T) ListView[T] {
	items := make([]T, 0, len(in))
	for _, v := range in {
		items = append(items, conv(v))
	}
	return ListView[T]{Items: items, Total: len(items)}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
