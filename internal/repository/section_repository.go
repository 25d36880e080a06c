package repository

import (
	"strings"

	"github.com/lumahealth/authoring/internal/model"
	"gorm.io/gorm"
)

type SectionRepository interface {
	Create(section *model.Section) error
	FindByID(id uint) (*model.Section, error)
	Update(section *model.Section) error
	Delete(id uint) error
	// SiblingLabelExists reports a case-insensitive, trimmed label collision
	// among siblings of the same parent (parentID nil = top-level sections).
	SiblingLabelExists(assessmentID uint, parentID *uint, label string, excludeID uint) (bool, error)
	UpdateSortOrders(updates map[uint]int) error
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(section *model.Section) error {
	return r.db.Create(section).Error
}

func (r *sectionRepository) FindByID(id uint) (*model.Section, error) {
	var section model.Section
	if err := r.db.First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) Update(section *model.Section) error {
	return r.db.Save(section).Error
}

func (r *sectionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Section{}, id).Error
}

func (r *sectionRepository) SiblingLabelExists(assessmentID uint, parentID *uint, label string, excludeID uint) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	query := r.db.Model(&model.Section{}).
		Where("assessment_id = ?", assessmentID).
		Where("LOWER(TRIM(label)) = ?", normalized)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *sectionRepository) UpdateSortOrders(updates map[uint]int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for id, order := range updates {
			if err := tx.Model(&model.Section{}).Where("id = ?", id).Update("sort_order", order).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
