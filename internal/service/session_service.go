package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumahealth/authoring/internal/dto"
	"github.com/lumahealth/authoring/internal/model"
	"github.com/lumahealth/authoring/internal/session"
)

var ErrNotFound = errors.New("not found")

// SessionService exposes the edit-session engine to the API layer. Every
// mutating call dispatches through the session's reducer and returns the
// snapshot the dispatch produced; validation failures surface as messages
// inside that snapshot, not as errors.
type SessionService interface {
	Open(ctx context.Context, assessmentID uint) (*dto.SessionResponse, error)
	Snapshot(sessionID string) (*dto.SessionResponse, error)
	Close(sessionID string) error

	CreateSection(sessionID string, req dto.CreateSectionRequest) (*dto.SessionResponse, error)
	UpdateSection(sessionID, ref string, req dto.UpdateSectionRequest) (*dto.SessionResponse, error)
	CreateQuestion(sessionID string, req dto.CreateQuestionRequest) (*dto.SessionResponse, error)
	UpdateQuestion(sessionID, ref string, req dto.UpdateQuestionRequest) (*dto.SessionResponse, error)
	CreateAnswer(sessionID string, req dto.CreateAnswerRequest) (*dto.SessionResponse, error)
	UpdateAnswer(sessionID, ref string, req dto.UpdateAnswerRequest) (*dto.SessionResponse, error)

	Save(sessionID string, kind session.EntityKind, ref string) (*dto.SessionResponse, error)
	MoveQuestion(sessionID, ref string, req dto.MoveQuestionRequest) (*dto.SessionResponse, error)
	Delete(sessionID string, kind session.EntityKind, ref string) (*dto.SessionResponse, error)
	Discard(sessionID, ref string) (*dto.SessionResponse, error)
	Reorder(sessionID string, req dto.ReorderRequest) (*dto.SessionResponse, error)
}

type sessionService struct {
	manager *session.Manager
}

func NewSessionService(manager *session.Manager) SessionService {
	return &sessionService{manager: manager}
}

func (s *sessionService) Open(ctx context.Context, assessmentID uint) (*dto.SessionResponse, error) {
	sess, err := s.manager.Open(ctx, assessmentID)
	if err != nil {
		log.Error().Err(err).Uint("assessmentID", assessmentID).Msg("Failed to open edit session")
		return nil, err
	}
	log.Info().Str("sessionID", sess.ID).Uint("assessmentID", assessmentID).Msg("Edit session opened")
	return buildSessionResponse(sess.ID, sess.State(), ""), nil
}

func (s *sessionService) Snapshot(sessionID string) (*dto.SessionResponse, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return buildSessionResponse(sessionID, sess.State(), ""), nil
}

func (s *sessionService) Close(sessionID string) error {
	if _, err := s.manager.Get(sessionID); err != nil {
		return err
	}
	s.manager.Close(sessionID)
	log.Info().Str("sessionID", sessionID).Msg("Edit session closed")
	return nil
}

func (s *sessionService) dispatch(sessionID string, action session.Action, newRef string) (*dto.SessionResponse, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state := sess.Dispatch(action)
	return buildSessionResponse(sessionID, state, newRef), nil
}

func (s *sessionService) CreateSection(sessionID string, req dto.CreateSectionRequest) (*dto.SessionResponse, error) {
	ref := uuid.NewString()
	return s.dispatch(sessionID, session.AddSection{
		Ref:       ref,
		ParentRef: req.ParentRef,
		Label:     req.Label,
	}, ref)
}

func (s *sessionService) UpdateSection(sessionID, ref string, req dto.UpdateSectionRequest) (*dto.SessionResponse, error) {
	if err := s.requireRef(sessionID, ref); err != nil {
		return nil, err
	}
	return s.dispatch(sessionID, session.EditSection{Ref: ref, Label: req.Label}, "")
}

func (s *sessionService) CreateQuestion(sessionID string, req dto.CreateQuestionRequest) (*dto.SessionResponse, error) {
	ref := uuid.NewString()
	return s.dispatch(sessionID, session.AddQuestion{
		Ref:        ref,
		SectionRef: req.SectionRef,
		Label:      req.Label,
		Type:       model.QuestionType(req.Type),
		Required:   req.Required,
		Tooltip:    req.Tooltip,
		Voice:      req.Voice,
	}, ref)
}

func (s *sessionService) UpdateQuestion(sessionID, ref string, req dto.UpdateQuestionRequest) (*dto.SessionResponse, error) {
	if err := s.requireRef(sessionID, ref); err != nil {
		return nil, err
	}
	return s.dispatch(sessionID, session.EditQuestion{
		Ref:      ref,
		Label:    req.Label,
		Required: req.Required,
		Tooltip:  req.Tooltip,
		Voice:    req.Voice,
	}, "")
}

func (s *sessionService) CreateAnswer(sessionID string, req dto.CreateAnswerRequest) (*dto.SessionResponse, error) {
	ref := uuid.NewString()
	return s.dispatch(sessionID, session.AddAnswer{
		Ref:                ref,
		QuestionRef:        req.QuestionRef,
		Label:              req.Label,
		SecondaryInputType: req.SecondaryInputType,
		MutuallyExclusive:  req.MutuallyExclusive,
		Tooltip:            req.Tooltip,
	}, ref)
}

func (s *sessionService) UpdateAnswer(sessionID, ref string, req dto.UpdateAnswerRequest) (*dto.SessionResponse, error) {
	if err := s.requireRef(sessionID, ref); err != nil {
		return nil, err
	}
	return s.dispatch(sessionID, session.EditAnswer{
		Ref:                ref,
		Label:              req.Label,
		SecondaryInputType: req.SecondaryInputType,
		MutuallyExclusive:  req.MutuallyExclusive,
		Tooltip:            req.Tooltip,
	}, "")
}

func (s *sessionService) Save(sessionID string, kind session.EntityKind, ref string) (*dto.SessionResponse, error) {
	if err := s.requireRef(sessionID, ref); err != nil {
		return nil, err
	}
	return s.dispatch(sessionID, session.SaveEntity{Kind: kind, Ref: ref}, "")
}

func (s *sessionService) MoveQuestion(sessionID, ref string, req dto.MoveQuestionRequest) (*dto.SessionResponse, error) {
	if err := s.requireRef(sessionID, ref); err != nil {
		return nil, err
	}
	return s.dispatch(sessionID, session.MoveQuestion{Ref: ref, TargetSectionRef: req.TargetSectionRef}, "")
}

func (s *sessionService) Delete(sessionID string, kind session.EntityKind, ref string) (*dto.SessionResponse, error) {
	if err := s.requireRef(sessionID, ref); err != nil {
		return nil, err
	}
	return s.dispatch(sessionID, session.DeleteEntity{Kind: kind, Ref: ref}, "")
}

func (s *sessionService) Discard(sessionID, ref string) (*dto.SessionResponse, error) {
	if err := s.requireRef(sessionID, ref); err != nil {
		return nil, err
	}
	return s.dispatch(sessionID, session.DiscardEdits{Ref: ref}, "")
}

func (s *sessionService) Reorder(sessionID string, req dto.ReorderRequest) (*dto.SessionResponse, error) {
	return s.dispatch(sessionID, session.Reorder{
		Kind:        session.EntityKind(req.Kind),
		ParentRef:   req.ParentRef,
		OrderedRefs: req.OrderedRefs,
	}, "")
}

// requireRef turns an unknown ref into a proper 404 instead of a silent
// reducer no-op.
func (s *sessionService) requireRef(sessionID, ref string) error {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return err
	}
	state := sess.State()
	if _, ok := state.Sections[ref]; ok {
		return nil
	}
	if _, ok := state.Questions[ref]; ok {
		return nil
	}
	if _, ok := state.Answers[ref]; ok {
		return nil
	}
	return ErrNotFound
}

func buildSessionResponse(sessionID string, state *session.State, newRef string) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		SessionID:    sessionID,
		AssessmentID: state.AssessmentID,
		Title:        state.Title,
		Status:       string(state.Status),
		HasPending:   state.Tracker.HasPending(),
		Ref:          newRef,
	}
	for _, parentRef := range state.SubsectionRefs("") {
		parent := sectionView(state, parentRef)
		for _, subRef := range state.SubsectionRefs(parentRef) {
			parent.Subsections = append(parent.Subsections, sectionView(state, subRef))
		}
		resp.Sections = append(resp.Sections, parent)
	}
	for _, m := range state.Messages {
		resp.Messages = append(resp.Messages, dto.MessageView{
			Time:     m.Time,
			Severity: string(m.Severity),
			Text:     m.Text,
			Stage:    m.Stage,
		})
	}
	return resp
}

func sectionView(state *session.State, ref string) dto.SectionView {
	node := state.Sections[ref]
	view := dto.SectionView{
		Ref:       node.Ref,
		ID:        state.IDOf(ref),
		Label:     node.Label,
		SortOrder: node.SortOrder,
		LibraryID: node.LibraryID,
		IsUnsaved: node.Unsaved,
		IsDeleted: node.Deleted,
	}
	for _, qRef := range state.QuestionRefs(ref) {
		view.Questions = append(view.Questions, questionView(state, qRef))
	}
	return view
}

func questionView(state *session.State, ref string) dto.QuestionView {
	node := state.Questions[ref]
	view := dto.QuestionView{
		Ref:       node.Ref,
		ID:        state.IDOf(ref),
		Label:     node.Label,
		Type:      string(node.Type),
		Required:  node.Required,
		Tooltip:   node.Tooltip,
		Voice:     node.Voice,
		SortOrder: node.SortOrder,
		LibraryID: node.LibraryID,
		IsUnsaved: node.Unsaved,
		IsDeleted: node.Deleted,
	}
	for _, aRef := range node.AnswerRefs {
		answer, ok := state.Answers[aRef]
		if !ok {
			continue
		}
		view.Answers = append(view.Answers, dto.AnswerView{
			Ref:                answer.Ref,
			ID:                 state.IDOf(aRef),
			Label:              answer.Label,
			SortOrder:          answer.SortOrder,
			SecondaryInputType: answer.SecondaryInputType,
			MutuallyExclusive:  answer.MutuallyExclusive,
			Tooltip:            answer.Tooltip,
			LibraryID:          answer.LibraryID,
			IsUnsaved:          answer.Unsaved,
			IsDeleted:          answer.Deleted,
		})
	}
	return view
}
