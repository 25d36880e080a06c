package library

import (
	"context"

	"github.com/lumahealth/authoring/internal/model"
	"github.com/lumahealth/authoring/internal/repository"
)

// dbSearcher serves library searches from the local database.
type dbSearcher struct {
	repo repository.LibraryRepository
}

func NewDBSearcher(repo repository.LibraryRepository) Searcher {
	return &dbSearcher{repo: repo}
}

func (s *dbSearcher) Search(_ context.Context, q Query) ([]Candidate, error) {
	items, err := s.repo.Search(q.Text, model.LibraryContentType(q.Type), q.ScopeID, q.Limit)
	if err != nil {
		return nil, err
	}
	normalized := Normalize(q.Text)
	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		candidate := Candidate{
			ID:         item.ID,
			Label:      item.Label,
			ExactMatch: Normalize(item.Label) == normalized,
		}
		if item.MasterID != nil {
			candidate.MasterID = *item.MasterID
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
