package repository

import (
	"errors"

	"github.com/lumahealth/authoring/internal/model"
	"gorm.io/gorm"
)

// ErrLinkExists is returned when an answer is already linked to the target.
var ErrLinkExists = errors.New("relationship already exists")

type RelationshipRepository interface {
	LinksForAnswer(answerID uint) ([]model.RelationshipLink, error)
	Add(link *model.RelationshipLink) error
	Remove(answerID uint, relType model.RelationshipType, targetID uint) error

	GuidelinesByIDs(ids []uint) ([]model.Guideline, error)
	BarriersByIDs(ids []uint) ([]model.Barrier, error)
	ProblemsByIDs(ids []uint) ([]model.Problem, error)
	QuestionsByIDs(ids []uint) ([]model.Question, error)
	GoalsByProblem(problemID uint) ([]model.Goal, error)
	InterventionsByGoal(goalID uint) ([]model.Intervention, error)
}

type relationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

func (r *relationshipRepository) LinksForAnswer(answerID uint) ([]model.RelationshipLink, error) {
	var links []model.RelationshipLink
	if err := r.db.Where("answer_id = ?", answerID).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (r *relationshipRepository) Add(link *model.RelationshipLink) error {
	var count int64
	err := r.db.Model(&model.RelationshipLink{}).
		Where("answer_id = ? AND type = ? AND target_id = ?", link.AnswerID, link.Type, link.TargetID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrLinkExists
	}
	return r.db.Create(link).Error
}

func (r *relationshipRepository) Remove(answerID uint, relType model.RelationshipType, targetID uint) error {
	return r.db.
		Where("answer_id = ? AND type = ? AND target_id = ?", answerID, relType, targetID).
		Delete(&model.RelationshipLink{}).Error
}

func (r *relationshipRepository) GuidelinesByIDs(ids []uint) ([]model.Guideline, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var guidelines []model.Guideline
	if err := r.db.Where("id IN ?", ids).Find(&guidelines).Error; err != nil {
		return nil, err
	}
	return guidelines, nil
}

func (r *relationshipRepository) BarriersByIDs(ids []uint) ([]model.Barrier, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var barriers []model.Barrier
	if err := r.db.Where("id IN ?", ids).Find(&barriers).Error; err != nil {
		return nil, err
	}
	return barriers, nil
}

func (r *relationshipRepository) ProblemsByIDs(ids []uint) ([]model.Problem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var problems []model.Problem
	if err := r.db.Where("id IN ?", ids).Find(&problems).Error; err != nil {
		return nil, err
	}
	return problems, nil
}

func (r *relationshipRepository) QuestionsByIDs(ids []uint) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []model.Question
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *relationshipRepository) GoalsByProblem(problemID uint) ([]model.Goal, error) {
	var goals []model.Goal
	if err := r.db.Where("problem_id = ?", problemID).Order("label ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *relationshipRepository) InterventionsByGoal(goalID uint) ([]model.Intervention, error) {
	var interventions []model.Intervention
	if err := r.db.Where("goal_id = ?", goalID).Order("label ASC").Find(&interventions).Error; err != nil {
		return nil, err
	}
	return interventions, nil
}
