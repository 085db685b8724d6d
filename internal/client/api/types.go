// Package api talks to the skillmarket REST API on behalf of client programs.
// It also ships a Mock backend for offline development.
package api

import (
	"context"
	"strings"
)

// User is the public profile returned by the server.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Location  string `json:"location,omitempty"`
	Phone     string `json:"phone,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	FullName  *string `json:"fullName,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Location  *string `json:"location,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	ImageURL  *string `json:"imageUrl,omitempty"`
}

func (p ProfilePatch) Empty() bool {
	return p.Email == nil && p.Password == nil && p.FullName == nil &&
		p.Specialty == nil && p.Location == nil && p.Phone == nil && p.ImageURL == nil
}

// Apply returns u with every non-nil field of p merged in.
// Password is never part of the public profile and is ignored here.
func (p ProfilePatch) Apply(u User) User {
	if p.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Specialty != nil {
		u.Specialty = *p.Specialty
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.ImageURL != nil {
		u.ImageURL = *p.ImageURL
	}
	return u
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Backend is the set of remote operations the session store depends on.
// *Client and *Mock both implement it.
type Backend interface {
	Login(ctx context.Context, email, password string) (User, error)
	Register(ctx context.Context, email, password string) (User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (User, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (User, error)
}
