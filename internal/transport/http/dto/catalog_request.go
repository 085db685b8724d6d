package dto

import (
	"github.com/baechuer/skillmarket/internal/application/catalog"
	"github.com/baechuer/skillmarket/internal/transport/http/validate"
)

type WorkRequest struct {
	Title              string   `json:"title" validate:"notblank,max=200"`
	Description        string   `json:"description" validate:"notblank,max=5000"`
	Duration           string   `json:"duration" validate:"max=100"`
	Budget             string   `json:"budget" validate:"max=100"`
	Location           string   `json:"location" validate:"notblank,max=200"`
	ExperienceYears    int      `json:"experienceYears" validate:"min=0,max=80"`
	RequiresReferences bool     `json:"requiresReferences"`
	Skills             []string `json:"skills" validate:"max=50,dive,max=100"`
	ImageURL           string   `json:"imageUrl" validate:"max=2048"`
}

func (r *WorkRequest) Validate() error { return validate.Struct(r) }

func (r WorkRequest) Draft() catalog.WorkDraft {
	return catalog.WorkDraft{
		Title:              r.Title,
		Description:        r.Description,
		Duration:           r.Duration,
		Budget:             r.Budget,
		Location:           r.Location,
		ExperienceYears:    r.ExperienceYears,
		RequiresReferences: r.RequiresReferences,
		Skills:             r.Skills,
		ImageURL:           r.ImageURL,
	}
}

type CandidateRequest struct {
	Name      string   `json:"name" validate:"notblank,max=200"`
	Email     string   `json:"email" validate:"required,email,max=254"`
	Phone     string   `json:"phone" validate:"max=50"`
	Specialty string   `json:"specialty" validate:"notblank,max=200"`
	Location  string   `json:"location" validate:"notblank,max=200"`
	Bio       string   `json:"bio" validate:"max=5000"`
	Skills    []string `json:"skills" validate:"max=50,dive,max=100"`
	ImageURL  string   `json:"imageUrl" validate:"max=2048"`
}

func (r *CandidateRequest) Validate() error { return validate.Struct(r) }

func (r CandidateRequest) Draft() catalog.CandidateDraft {
	return catalog.CandidateDraft{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Specialty: r.Specialty,
		Location:  r.Location,
		Bio:       r.Bio,
		Skills:    r.Skills,
		ImageURL:  r.ImageURL,
	}
}
