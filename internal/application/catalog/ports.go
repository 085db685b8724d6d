package catalog

import (
	"context"

	"github.com/baechuer/skillmarket/internal/domain"
)

// Repo stores listings and candidates newest first.
// List methods return a snapshot the caller may not mutate.
type Repo interface {
	ListWork(ctx context.Context) ([]domain.WorkListing, error)
	PrependWork(ctx context.Context, w domain.WorkListing) error
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
	PrependCandidate(ctx context.Context, c domain.Candidate) error
}
