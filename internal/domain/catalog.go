package domain

import "time"

// WorkListing is a job posted by a hiring user.
type WorkListing struct {
	ID                 string
	Title              string
	Description        string
	Duration           string
	Budget             string
	Location           string
	ExperienceYears    int
	RequiresReferences bool
	Skills             []string
	ImageURL           string
	PostedBy           string
	CreatedAt          time.Time
}

// Candidate is a service provider advertising their skills.
type Candidate struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Specialty string
	Location  string
	Bio       string
	Skills    []string
	ImageURL  string
	PostedBy  string
	CreatedAt time.Time
}
