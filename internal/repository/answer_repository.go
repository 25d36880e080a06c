package repository

import (
	"github.com/lumahealth/authoring/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	CreateBatch(answers []model.Answer) ([]model.Answer, error)
	FindByID(id uint) (*model.Answer, error)
	FindByQuestion(questionID uint) ([]model.Answer, error)
	Update(answer *model.Answer) error
	Delete(id uint) error
	UpdateSortOrders(updates map[uint]int) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) CreateBatch(answers []model.Answer) ([]model.Answer, error) {
	if err := r.db.Create(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) FindByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindByQuestion(questionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	if err := r.db.Where("question_id = ?", questionID).Order("sort_order ASC").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) Update(answer *model.Answer) error {
	return r.db.Save(answer).Error
}

func (r *answerRepository) Delete(id uint) error {
	return r.db.Delete(&model.Answer{}, id).Error
}

func (r *answerRepository) UpdateSortOrders(updates map[uint]int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for id, order := range updates {
			if err := tx.Model(&model.Answer{}).Where("id = ?", id).Update("sort_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
