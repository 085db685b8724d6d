package domain

import "time"

// User is the persisted identity record. PasswordHash never leaves the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string

	FullName  string
	Specialty string
	Location  string
	Phone     string
	ImageURL  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is a User with the credential stripped.
type PublicUser struct {
	ID        string
	Email     string
	FullName  string
	Specialty string
	Location  string
	Phone     string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) Public() PublicUser {
	return PublicUser{
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

// ProfileFields are the optional free-text fields accepted at registration.
type ProfileFields struct {
	FullName  string
	Specialty string
	Location  string
	Phone     string
	ImageURL  string
}

// ProfilePatch is a partial update. nil means "leave unchanged".
type ProfilePatch struct {
	Email    *string
	Password *string

	FullName  *string
	Specialty *string
	Location  *string
	Phone     *string
	ImageURL  *string
}

func (p ProfilePatch) IsEmpty() bool {
	return p.Email == nil && p.Password == nil &&
		p.FullName == nil && p.Specialty == nil && p.Location == nil &&
		p.Phone == nil && p.ImageURL == nil
}

// ApplyTo merges every non-credential field into u.
// Password is deliberately skipped: it must go through the hashing step.
func (p ProfilePatch) ApplyTo(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
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
}

// ChangedFields lists the JSON names of the fields present in the patch.
func (p ProfilePatch) ChangedFields() []string {
	var out []string
	add := func(ok bool, name string) {
		if ok {
			out = append(out, name)
		}
	}
	add(p.Email != nil, "email")
	add(p.Password != nil, "password")
	add(p.FullName != nil, "fullName")
	add(p.Specialty != nil, "specialty")
	add(p.Location != nil, "location")
	add(p.Phone != nil, "phone")
	add(p.ImageURL != nil, "imageUrl")
	return out
}

// AccessClaims is what a verified access token asserts about its bearer.
type AccessClaims struct {
	UserID    string
	ExpiresAt time.Time
}
