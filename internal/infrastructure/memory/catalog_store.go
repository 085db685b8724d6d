package memory

import (
	"context"
	"sync"

	"github.com/baechuer/skillmarket/internal/domain"
)

// CatalogStore holds work listings and candidates, newest first.
// Nothing survives a restart.
type CatalogStore struct {
	mu         sync.RWMutex
	work       []domain.WorkListing
	candidates []domain.Candidate
}

func NewCatalogStore(work []domain.WorkListing, candidates []domain.Candidate) *CatalogStore {
	s := &CatalogStore{}
	for _, w := range work {
		s.work = append(s.work, cloneWork(w))
	}
	for _, c := range candidates {
		s.candidates = append(s.candidates, cloneCandidate(c))
	}
	return s
}

func (s *CatalogStore) ListWork(context.Context) ([]domain.WorkListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.WorkListing, len(s.work))
	for i, w := range s.work {
		out[i] = cloneWork(w)
	}
	return out, nil
}

func (s *CatalogStore) PrependWork(_ context.Context, w domain.WorkListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.work = append([]domain.WorkListing{cloneWork(w)}, s.work...)
	return nil
}

func (s *CatalogStore) ListCandidates(context.Context) ([]domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Candidate, len(s.candidates))
	for i, c := range s.candidates {
		out[i] = cloneCandidate(c)
	}
	return out, nil
}

func (s *CatalogStore) PrependCandidate(_ context.Context, c domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.candidates = append([]domain.Candidate{cloneCandidate(c)}, s.candidates...)
	return nil
}

func cloneWork(w domain.WorkListing) domain.WorkListing {
	w.Skills = append([]string(nil), w.Skills...)
	return w
}

func cloneCandidate(c domain.Candidate) domain.Candidate {
	c.Skills = append([]string(nil), c.Skills...)
	return c
}
