package repository

import (
	"github.com/lumahealth/authoring/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoringRepository interface {
	CreateModel(scoringModel *model.ScoringModel) error
	UpdateModel(scoringModel *model.ScoringModel) error
	FindModelByID(id uint) (*model.ScoringModel, error)
	// UpsertScore writes one (answer, model) score cell.
	UpsertScore(score *model.AnswerScore) error
	ScoresByModel(modelID uint) ([]model.AnswerScore, error)
}

type scoringRepository struct {
	db *gorm.DB
}

func NewScoringRepository(db *gorm.DB) ScoringRepository {
	return &scoringRepository{db: db}
}

func (r *scoringRepository) CreateModel(scoringModel *model.ScoringModel) error {
	return r.db.Create(scoringModel).Error
}

func (r *scoringRepository) UpdateModel(scoringModel *model.ScoringModel) error {
	return r.db.Save(scoringModel).Error
}

func (r *scoringRepository) FindModelByID(id uint) (*model.ScoringModel, error) {
	var scoringModel model.ScoringModel
	if err := r.db.First(&scoringModel, id).Error; err != nil {
		return nil, err
	}
	return &scoringModel, nil
}

func (r *scoringRepository) UpsertScore(score *model.AnswerScore) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_id"}, {Name: "answer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(score).Error
}

func (r *scoringRepository) ScoresByModel(modelID uint) ([]model.AnswerScore, error) {
	var scores []model.AnswerScore
	if err := r.db.Where("model_id = ?", modelID).Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
