package repository

import (
	"strings"

	"github.com/lumahealth/authoring/internal/model"
	"gorm.io/gorm"
)

type LibraryRepository interface {
	// Search matches items by label substring, most recent first.
	Search(text string, contentType model.LibraryContentType, scopeID uint, limit int) ([]model.LibraryItem, error)
	FindByID(id uint) (*model.LibraryItem, error)
	// PublishBundle stores a master item with its member items pointing back
	// at it.
	PublishBundle(master *model.LibraryItem, members []model.LibraryItem) error
}

type libraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) Search(text string, contentType model.LibraryContentType, scopeID uint, limit int) ([]model.LibraryItem, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.TrimSpace(text) + "%"
	query := r.db.Model(&model.LibraryItem{}).
		Where("content_type = ?", contentType).
		Where("label ILIKE ?", pattern)
	if scopeID != 0 {
		query = query.Where("scope_id = ? OR scope_id IS NULL", scopeID)
	}
	var items []model.LibraryItem
	if err := query.Order("updated_at DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *libraryRepository) FindByID(id uint) (*model.LibraryItem, error) {
	var item model.LibraryItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *libraryRepository) PublishBundle(master *model.LibraryItem, members []model.LibraryItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(master).Error; err != nil {
			return err
		}
		for i := range members {
			members[i].MasterID = &master.ID
		}
		if len(members) == 0 {
			return nil
		}
		return tx.Create(&members).Error
	})
}
