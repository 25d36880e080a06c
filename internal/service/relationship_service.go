package service

import (
	"github.com/jinzhu/copier"

	"github.com/lumahealth/authoring/internal/dto"
	"github.com/lumahealth/authoring/internal/model"
	"github.com/lumahealth/authoring/internal/session"
)

// RelationshipService drives the per-answer relationship graph inside an
// edit session: lazy loading of each level, expansion toggles, and link
// mutations that refetch the whole bundle on success.
type RelationshipService interface {
	Load(sessionID, answerRef string) (*dto.RelationshipResponse, error)
	LoadGoals(sessionID, answerRef string, req dto.LoadGoalsRequest) (*dto.RelationshipResponse, error)
	LoadInterventions(sessionID, answerRef string, req dto.LoadInterventionsRequest) (*dto.RelationshipResponse, error)
	Toggle(sessionID, answerRef string, req dto.ToggleRequest) (*dto.RelationshipResponse, error)
	AddLink(sessionID, answerRef string, req dto.RelationshipRequest) (*dto.RelationshipResponse, error)
	RemoveLink(sessionID, answerRef string, req dto.RelationshipRequest) (*dto.RelationshipResponse, error)
}

type relationshipService struct {
	manager *session.Manager
}

func NewRelationshipService(manager *session.Manager) RelationshipService {
	return &relationshipService{manager: manager}
}

func (s *relationshipService) dispatch(sessionID, answerRef string, action session.Action) (*dto.RelationshipResponse, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := sess.State().Answers[answerRef]; !ok {
		return nil, ErrNotFound
	}
	state := sess.Dispatch(action)
	return buildRelationshipResponse(answerRef, state), nil
}

func (s *relationshipService) Load(sessionID, answerRef string) (*dto.RelationshipResponse, error) {
	return s.dispatch(sessionID, answerRef, session.LoadRelationships{AnswerRef: answerRef})
}

func (s *relationshipService) LoadGoals(sessionID, answerRef string, req dto.LoadGoalsRequest) (*dto.RelationshipResponse, error) {
	return s.dispatch(sessionID, answerRef, session.LoadGoals{AnswerRef: answerRef, ProblemID: req.ProblemID})
}

func (s *relationshipService) LoadInterventions(sessionID, answerRef string, req dto.LoadInterventionsRequest) (*dto.RelationshipResponse, error) {
	return s.dispatch(sessionID, answerRef, session.LoadInterventions{
		AnswerRef: answerRef,
		ProblemID: req.ProblemID,
		GoalID:    req.GoalID,
	})
}

func (s *relationshipService) Toggle(sessionID, answerRef string, req dto.ToggleRequest) (*dto.RelationshipResponse, error) {
	if req.GoalID != nil {
		return s.dispatch(sessionID, answerRef, session.ToggleGoal{
			AnswerRef: answerRef,
			ProblemID: req.ProblemID,
			GoalID:    *req.GoalID,
		})
	}
	return s.dispatch(sessionID, answerRef, session.ToggleProblem{AnswerRef: answerRef, ProblemID: req.ProblemID})
}

func (s *relationshipService) AddLink(sessionID, answerRef string, req dto.RelationshipRequest) (*dto.RelationshipResponse, error) {
	return s.dispatch(sessionID, answerRef, session.AddLink{
		AnswerRef: answerRef,
		Type:      model.RelationshipType(req.Type),
		TargetID:  req.TargetID,
	})
}

func (s *relationshipService) RemoveLink(sessionID, answerRef string, req dto.RelationshipRequest) (*dto.RelationshipResponse, error) {
	return s.dispatch(sessionID, answerRef, session.RemoveLink{
		AnswerRef: answerRef,
		Type:      model.RelationshipType(req.Type),
		TargetID:  req.TargetID,
	})
}

func buildRelationshipResponse(answerRef string, state *session.State) *dto.RelationshipResponse {
	resp := &dto.RelationshipResponse{
		AnswerRef: answerRef,
		State:     string(session.LoadUnloaded),
	}
	set, ok := state.Relationships[answerRef]
	if !ok {
		return resp
	}
	resp.State = string(set.State)
	resp.Summary = dto.RelationshipSummaryView{
		Guidelines:         set.Summary.Guidelines,
		TriggeredQuestions: set.Summary.TriggeredQuestions,
		Problems:           set.Summary.Problems,
		Barriers:           set.Summary.Barriers,
	}
	copier.Copy(&resp.Guidelines, &set.Guidelines)
	copier.Copy(&resp.TriggeredQuestions, &set.TriggeredQuestions)
	copier.Copy(&resp.Barriers, &set.Barriers)

	for _, p := range set.Problems {
		problem := dto.ProblemView{
			ID:                 p.ID,
			Label:              p.Label,
			Tooltip:            p.Tooltip,
			AlternativeWording: p.AlternativeWording,
			Expanded:           p.Expanded,
			GoalsState:         string(p.GoalsState),
		}
		for _, g := range p.Goals {
			goal := dto.GoalView{
				ID:                 g.ID,
				Label:              g.Label,
				Tooltip:            g.Tooltip,
				AlternativeWording: g.AlternativeWording,
				Expanded:           g.Expanded,
				InterventionsState: string(g.InterventionsState),
			}
			copier.Copy(&goal.Interventions, &g.Interventions)
			problem.Goals = append(problem.Goals, goal)
		}
		resp.Problems = append(resp.Problems, problem)
	}
	return resp
}
