package repository

import (
	"strings"

	"github.com/lumahealth/authoring/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDWithAnswers(id uint) (*model.Question, error)
	FindBySection(sectionID uint) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
	SiblingLabelExists(sectionID uint, label string, excludeID uint) (bool, error)
	UpdateSortOrders(updates map[uint]int) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDWithAnswers(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("answers.sort_order ASC")
	}).First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindBySection(sectionID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("section_id = ?", sectionID).Order("sort_order ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}

func (r *questionRepository) SiblingLabelExists(sectionID uint, label string, excludeID uint) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	query := r.db.Model(&model.Question{}).
		Where("section_id = ?", sectionID).
		Where("LOWER(TRIM(label)) = ?", normalized)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *questionRepository) UpdateSortOrders(updates map[uint]int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for id, order := range updates {
			if err := tx.Model(&model.Question{}).Where("id = ?", id).Update("sort_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
