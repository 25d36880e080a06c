package service

import (
	"context"

	"github.com/jinzhu/copier"

	"github.com/lumahealth/authoring/internal/dto"
	"github.com/lumahealth/authoring/internal/library"
	"github.com/lumahealth/authoring/internal/session"
)

// LibraryService serves typeahead lookups. Session-scoped searches route
// through the session's debounced search slots; direct searches hit the
// matcher immediately.
type LibraryService interface {
	Search(ctx context.Context, contentType string, scopeID uint, text string) ([]dto.CandidateView, error)
	SessionSearch(sessionID string, req dto.SearchRequest) (*dto.SearchResponse, error)
	SessionResults(sessionID, slot string) (*dto.SearchResponse, error)
}

type libraryService struct {
	manager *session.Manager
	matcher *library.Matcher
}

func NewLibraryService(manager *session.Manager, matcher *library.Matcher) LibraryService {
	return &libraryService{manager: manager, matcher: matcher}
}

func (s *libraryService) Search(ctx context.Context, contentType string, scopeID uint, text string) ([]dto.CandidateView, error) {
	candidates, err := s.matcher.Search(ctx, library.Query{
		Text:    text,
		Type:    library.ContentType(contentType),
		ScopeID: scopeID,
		Limit:   20,
	})
	if err != nil {
		return nil, err
	}
	var views []dto.CandidateView
	copier.Copy(&views, &candidates)
	return views, nil
}

// SessionSearch registers the slot's new query; the actual lookup is
// debounced and folds in asynchronously. The response reflects whatever the
// slot currently holds.
func (s *libraryService) SessionSearch(sessionID string, req dto.SearchRequest) (*dto.SearchResponse, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	var state *session.State
	if req.Text == "" {
		state = sess.Dispatch(session.SearchCleared{Slot: session.SearchSlot(req.Slot)})
	} else {
		state = sess.Dispatch(session.SearchChanged{
			Slot:    session.SearchSlot(req.Slot),
			Type:    library.ContentType(req.Type),
			ScopeID: req.ScopeID,
			Text:    req.Text,
		})
	}
	return buildSearchResponse(req.Slot, state), nil
}

func (s *libraryService) SessionResults(sessionID, slot string) (*dto.SearchResponse, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return buildSearchResponse(slot, sess.State()), nil
}

func buildSearchResponse(slot string, state *session.State) *dto.SearchResponse {
	resp := &dto.SearchResponse{Slot: slot}
	if results, ok := state.Results[session.SearchSlot(slot)]; ok {
		copier.Copy(&resp.Candidates, &results)
	}
	return resp
}
