package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/baechuer/skillmarket/internal/domain"
)

// Query filters a listing. Empty fields match everything.
type Query struct {
	Text     string
	Location string
}

type WorkDraft struct {
	Title              string
	Description        string
	Duration           string
	Budget             string
	Location           string
	ExperienceYears    int
	RequiresReferences bool
	Skills             []string
	ImageURL           string
}

type CandidateDraft struct {
	Name      string
	Email     string
	Phone     string
	Specialty string
	Location  string
	Bio       string
	Skills    []string
	ImageURL  string
}

type Service struct {
	repo  Repo
	check *validator.Validate
	now   func() time.Time
	newID func() string
}

func NewService(repo Repo) *Service {
	return &Service{
		repo:  repo,
		check: validator.New(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// ListWork matches Text against title, description and skills, and
// Location against location. Both are case-insensitive substrings.
func (s *Service) ListWork(ctx context.Context, q Query) ([]domain.WorkListing, error) {
	all, err := s.repo.ListWork(ctx)
	if err != nil {
		return nil, err
	}
	text, loc := fold(q.Text), fold(q.Location)

	out := make([]domain.WorkListing, 0, len(all))
	for _, w := range all {
		hit := contains(w.Title, text) || contains(w.Description, text) || anyContains(w.Skills, text)
		if hit && contains(w.Location, loc) {
			out = append(out, w)
		}
	}
	return out, nil
}

// ListCandidates matches Text against name, specialty, email and skills.
func (s *Service) ListCandidates(ctx context.Context, q Query) ([]domain.Candidate, error) {
	all, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	text, loc := fold(q.Text), fold(q.Location)

	out := make([]domain.Candidate, 0, len(all))
	for _, c := range all {
		hit := contains(c.Name, text) || contains(c.Specialty, text) || contains(c.Email, text) || anyContains(c.Skills, text)
		if hit && contains(c.Location, loc) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) PostWork(ctx context.Context, callerID string, d WorkDraft) (domain.WorkListing, error) {
	if callerID == "" {
		return domain.WorkListing{}, domain.ErrTokenMissing()
	}
	w := domain.WorkListing{
		Title:              strings.TrimSpace(d.Title),
		Description:        strings.TrimSpace(d.Description),
		Duration:           strings.TrimSpace(d.Duration),
		Budget:             strings.TrimSpace(d.Budget),
		Location:           strings.TrimSpace(d.Location),
		ExperienceYears:    d.ExperienceYears,
		RequiresReferences: d.RequiresReferences,
		Skills:             NormalizeSkills(d.Skills),
		ImageURL:           strings.TrimSpace(d.ImageURL),
	}
	switch {
	case w.Title == "":
		return domain.WorkListing{}, domain.ErrMissingField("title")
	case w.Description == "":
		return domain.WorkListing{}, domain.ErrMissingField("description")
	case w.Location == "":
		return domain.WorkListing{}, domain.ErrMissingField("location")
	case w.ExperienceYears < 0:
		return domain.WorkListing{}, domain.ErrInvalidField("experienceYears", "negative")
	}

	w.ID = s.newID()
	w.PostedBy = callerID
	w.CreatedAt = s.now()
	if err := s.repo.PrependWork(ctx, w); err != nil {
		return domain.WorkListing{}, err
	}
	return w, nil
}

func (s *Service) PostCandidate(ctx context.Context, callerID string, d CandidateDraft) (domain.Candidate, error) {
	if callerID == "" {
		return domain.Candidate{}, domain.ErrTokenMissing()
	}
	c := domain.Candidate{
		Name:      strings.TrimSpace(d.Name),
		Email:     strings.ToLower(strings.TrimSpace(d.Email)),
		Phone:     strings.TrimSpace(d.Phone),
		Specialty: strings.TrimSpace(d.Specialty),
		Location:  strings.TrimSpace(d.Location),
		Bio:       strings.TrimSpace(d.Bio),
		Skills:    NormalizeSkills(d.Skills),
		ImageURL:  strings.TrimSpace(d.ImageURL),
	}
	switch {
	case c.Name == "":
		return domain.Candidate{}, domain.ErrMissingField("name")
	case c.Email == "":
		return domain.Candidate{}, domain.ErrMissingField("email")
	case s.check.Var(c.Email, "email") != nil:
		return domain.Candidate{}, domain.ErrInvalidField("email", "format")
	case c.Specialty == "":
		return domain.Candidate{}, domain.ErrMissingField("specialty")
	case c.Location == "":
		return domain.Candidate{}, domain.ErrMissingField("location")
	}

	c.ID = s.newID()
	c.PostedBy = callerID
	c.CreatedAt = s.now()
	if err := s.repo.PrependCandidate(ctx, c); err != nil {
		return domain.Candidate{}, err
	}
	return c, nil
}

// NormalizeSkills trims entries, drops blanks and removes duplicates
// (case-insensitive), keeping the first spelling seen.
func NormalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := fold(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// needle must already be folded.
func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), needle)
}

func anyContains(items []string, needle string) bool {
	if needle == "" {
		return true
	}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it), needle) {
			return true
		}
	}
	return false
}
