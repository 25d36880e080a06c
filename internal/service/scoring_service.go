package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/lumahealth/authoring/internal/contentapi"
	"github.com/lumahealth/authoring/internal/dto"
	"github.com/lumahealth/authoring/internal/session"
)

// ScoringService manages scoring models and per-answer score entry. Model
// CRUD goes straight to the content backend; score entry routes through the
// session so the single-active-model rule is enforced there.
type ScoringService interface {
	CreateModel(ctx context.Context, req dto.ScoringModelRequest) (*dto.ScoringModelResponse, error)
	UpdateModel(ctx context.Context, id uint, req dto.ScoringModelRequest) (*dto.ScoringModelResponse, error)
	Activate(sessionID string, req dto.ActivateModelRequest) error
	SetScore(sessionID, answerRef string, req dto.SetScoreRequest) ([]dto.ScoreView, error)
}

type scoringService struct {
	manager *session.Manager
	client  contentapi.Client
}

func NewScoringService(manager *session.Manager, client contentapi.Client) ScoringService {
	return &scoringService{manager: manager, client: client}
}

func (s *scoringService) CreateModel(ctx context.Context, req dto.ScoringModelRequest) (*dto.ScoringModelResponse, error) {
	id, err := s.client.CreateScoringModel(ctx, contentapi.ScoringModelCreate{
		Label:       req.Label,
		ScoringType: req.ScoringType,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create scoring model")
		return nil, err
	}
	return &dto.ScoringModelResponse{ID: id, Label: req.Label, ScoringType: req.ScoringType}, nil
}

func (s *scoringService) UpdateModel(ctx context.Context, id uint, req dto.ScoringModelRequest) (*dto.ScoringModelResponse, error) {
	err := s.client.UpdateScoringModel(ctx, id, contentapi.ScoringModelUpdate{
		Label:       req.Label,
		ScoringType: req.ScoringType,
	})
	if err != nil {
		log.Error().Err(err).Uint("modelID", id).Msg("Failed to update scoring model")
		return nil, err
	}
	return &dto.ScoringModelResponse{ID: id, Label: req.Label, ScoringType: req.ScoringType}, nil
}

func (s *scoringService) Activate(sessionID string, req dto.ActivateModelRequest) error {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return err
	}
	sess.Dispatch(session.ActivateScoringModel{ModelID: req.ModelID})
	return nil
}

func (s *scoringService) SetScore(sessionID, answerRef string, req dto.SetScoreRequest) ([]dto.ScoreView, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if _, ok := sess.State().Answers[answerRef]; !ok {
		return nil, ErrNotFound
	}
	state := sess.Dispatch(session.SetScore{AnswerRef: answerRef, Value: req.Value})

	var views []dto.ScoreView
	for key, value := range state.Scores {
		if key.AnswerRef != answerRef {
			continue
		}
		views = append(views, dto.ScoreView{
			AnswerRef: key.AnswerRef,
			ModelID:   key.ModelID,
			Value:     value,
		})
	}
	return views, nil
}
